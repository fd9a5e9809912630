package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
)

// OutputFormat represents the output format for command results.
type OutputFormat string

const (
	// FormatText is plain text output (default).
	FormatText OutputFormat = "text"
	// FormatTable is aligned-column output for listings.
	FormatTable OutputFormat = "table"
	// FormatJSON is JSON output.
	FormatJSON OutputFormat = "json"
	// FormatCSV is CSV output.
	FormatCSV OutputFormat = "csv"
)

// ParseFormat validates a format flag value against the formats a
// command accepts.
func ParseFormat(s string, accepted ...OutputFormat) (OutputFormat, error) {
	format := OutputFormat(s)
	for _, a := range accepted {
		if format == a {
			return format, nil
		}
	}
	return "", fmt.Errorf("unsupported format %q (want one of %v)", s, accepted)
}

// Status line glyphs. Part of the console output contract.
const (
	glyphOK   = "✓"
	glyphFail = "✗"
)

// Successf writes a ✓ status line.
func Successf(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, glyphOK+" "+format+"\n", args...)
}

// Failuref writes a ✗ status line.
func Failuref(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, glyphFail+" "+format+"\n", args...)
}

// WriteJSON writes data as indented JSON followed by a newline.
func WriteJSON(w io.Writer, data any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

// Table renders aligned columns for terminal listings.
type Table struct {
	w *tabwriter.Writer
}

// NewTable creates a table and writes the header row.
func NewTable(w io.Writer, headers ...string) *Table {
	t := &Table{w: tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)}
	t.Row(headers...)
	return t
}

// Row writes one table row.
func (t *Table) Row(cells ...string) {
	for i, cell := range cells {
		if i > 0 {
			fmt.Fprint(t.w, "\t")
		}
		fmt.Fprint(t.w, cell)
	}
	fmt.Fprintln(t.w)
}

// Flush aligns and writes the buffered rows.
func (t *Table) Flush() error {
	return t.w.Flush()
}
