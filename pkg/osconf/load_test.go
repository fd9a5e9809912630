package osconf

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

const tomlDocument = `[memory]
heap_size = "4MB"
dma_size = "2MB"
stack_size = "64KB"

[network]
buffer_size = 4096
rx_buffers = 512
tx_buffers = 128

[display]
width = 132
height = 50
default_color = "White"
default_bg = "Blue"

[build]
version = "0.2.0"
target = "aarch64-rustrial_os"
`

const yamlDocument = `memory:
  heap_size: "4MB"
  dma_size: "2MB"
  stack_size: "64KB"
network:
  buffer_size: 4096
  rx_buffers: 512
  tx_buffers: 128
display:
  width: 132
  height: 50
  default_color: White
  default_bg: Blue
build:
  version: "0.2.0"
  target: aarch64-rustrial_os
`

func writeDocument(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
	return path
}

func TestLoadTOML(t *testing.T) {
	path := writeDocument(t, "config.toml", tomlDocument)

	doc, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if doc.Source != path {
		t.Errorf("doc.Source = %q, want %q", doc.Source, path)
	}

	rc, err := Validate(doc)
	if err != nil {
		t.Fatalf("Validate returned error: %v", err)
	}
	if got := uint64(rc.Memory.HeapSize); got != 4194304 {
		t.Errorf("Memory.HeapSize = %d, want 4194304", got)
	}
	if got := uint64(rc.Memory.StackSize); got != 65536 {
		t.Errorf("Memory.StackSize = %d, want 65536", got)
	}
	if rc.Network.RXBuffers != 512 {
		t.Errorf("Network.RXBuffers = %d, want 512", rc.Network.RXBuffers)
	}
	if rc.Display.Width != 132 {
		t.Errorf("Display.Width = %d, want 132", rc.Display.Width)
	}
	if rc.Build.Target != "aarch64-rustrial_os" {
		t.Errorf("Build.Target = %q, want aarch64-rustrial_os", rc.Build.Target)
	}
}

// The same document must resolve identically whichever encoding carried
// it.
func TestLoadFormatEquivalence(t *testing.T) {
	tomlDoc, err := Load(writeDocument(t, "config.toml", tomlDocument))
	if err != nil {
		t.Fatalf("Load(toml) returned error: %v", err)
	}
	yamlDoc, err := Load(writeDocument(t, "config.yaml", yamlDocument))
	if err != nil {
		t.Fatalf("Load(yaml) returned error: %v", err)
	}

	fromTOML, err := Validate(tomlDoc)
	if err != nil {
		t.Fatalf("Validate(toml) returned error: %v", err)
	}
	fromYAML, err := Validate(yamlDoc)
	if err != nil {
		t.Fatalf("Validate(yaml) returned error: %v", err)
	}

	if !reflect.DeepEqual(fromTOML, fromYAML) {
		t.Errorf("resolved configs differ:\ntoml: %+v\nyaml: %+v", fromTOML, fromYAML)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "config.toml"))
	if err == nil {
		t.Fatal("Load succeeded on a missing file")
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("errors.Is(err, fs.ErrNotExist) = false, err = %v", err)
	}
	var lerr *LoadError
	if !errors.As(err, &lerr) {
		t.Errorf("error = %T, want *LoadError", err)
	}
}

func TestLoadUnsupportedExtension(t *testing.T) {
	path := writeDocument(t, "config.json", `{"memory":{}}`)
	if _, err := Load(path); err == nil {
		t.Fatal("Load accepted a .json document")
	}
}

func TestLoadMalformedTOML(t *testing.T) {
	path := writeDocument(t, "config.toml", "[memory\nheap_size = ")
	if _, err := Load(path); err == nil {
		t.Fatal("Load accepted a malformed document")
	}
}

func TestLoadScalarSection(t *testing.T) {
	path := writeDocument(t, "config.yaml", "memory: 5\n")
	_, err := Load(path)
	if err == nil {
		t.Fatal("Load accepted a scalar where a section belongs")
	}
	if !strings.Contains(err.Error(), "memory") {
		t.Errorf("error does not name the offending section: %v", err)
	}
}

func TestLoadTooLarge(t *testing.T) {
	content := "# padding\n" + strings.Repeat("#", MaxDocumentSize)
	path := writeDocument(t, "config.toml", content)

	_, err := Load(path)
	if !errors.Is(err, ErrDocumentTooLarge) {
		t.Errorf("errors.Is(err, ErrDocumentTooLarge) = false, err = %v", err)
	}
}

func TestLoadReaderEmptySection(t *testing.T) {
	doc, err := LoadReader(strings.NewReader("memory:\n"), FormatYAML)
	if err != nil {
		t.Fatalf("LoadReader returned error: %v", err)
	}
	if _, ok := doc.Sections["memory"]; !ok {
		t.Error("empty section heading was dropped")
	}
	if _, ok := doc.Lookup("memory", "heap_size"); ok {
		t.Error("Lookup found a field in an empty section")
	}
}
