package osconf

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Format identifies a document encoding.
type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

// DetectFormat maps a file extension to its document format. The
// conventional document is config.toml; YAML is accepted for tooling
// that generates documents.
func DetectFormat(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unsupported document format %q (want .toml, .yaml, or .yml)", filepath.Ext(path))
	}
}

// Load reads and decodes the configuration document at path. The format
// is chosen by file extension. Failures wrap into a LoadError that keeps
// the underlying cause reachable, so callers can distinguish a missing
// file (fs.ErrNotExist) from a malformed one.
func Load(path string) (*Document, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return nil, &LoadError{Path: path, cause: err}
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, &LoadError{Path: path, cause: err}
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, &LoadError{Path: path, cause: err}
	}
	if info.Size() > MaxDocumentSize {
		return nil, &LoadError{
			Path:  path,
			cause: fmt.Errorf("%w: %d bytes (limit %d)", ErrDocumentTooLarge, info.Size(), MaxDocumentSize),
		}
	}

	doc, err := LoadReader(f, format)
	if err != nil {
		return nil, &LoadError{Path: path, cause: err}
	}
	doc.Source = path
	return doc, nil
}

// LoadReader decodes a document from r in the given format.
func LoadReader(r io.Reader, format Format) (*Document, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxDocumentSize+1))
	if err != nil {
		return nil, fmt.Errorf("read document: %w", err)
	}
	if len(data) > MaxDocumentSize {
		return nil, fmt.Errorf("%w: limit %d bytes", ErrDocumentTooLarge, MaxDocumentSize)
	}

	raw := make(map[string]any)
	switch format {
	case FormatTOML:
		if err := toml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("parse TOML document: %w", err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("parse YAML document: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported document format %q", format)
	}

	return fromRaw(raw)
}

// fromRaw shapes decoded top-level data into a Document. Every present
// top-level value must be a table of fields; unknown names survive here
// untouched so the validator's strict mode can report them.
func fromRaw(raw map[string]any) (*Document, error) {
	doc := &Document{Sections: make(map[string]map[string]any, len(raw))}
	for name, value := range raw {
		if value == nil {
			// An empty section heading decodes as nil.
			doc.Sections[name] = make(map[string]any)
			continue
		}
		fields, ok := value.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("section %q: expected a table of fields, got %T", name, value)
		}
		doc.Sections[name] = fields
	}
	return doc, nil
}
