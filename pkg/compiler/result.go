package compiler

import (
	"fmt"
	"strings"
	"time"

	"rustrial-os/confgen/pkg/osconf"
	"rustrial-os/confgen/pkg/render"
)

// Result holds the outcome of a successful run.
type Result struct {
	// RunID is the history ledger record ID, empty when history is
	// disabled.
	RunID string

	// Config is the validated typed configuration.
	Config *osconf.ResolvedConfig

	// Document is the source document the run resolved. For defaults
	// runs this is the built-in document.
	Document *osconf.Document

	// Target is the render target the run used.
	Target render.Target

	// OutputPath is the written file, empty for render-only runs.
	OutputPath string

	// Bytes is the rendered output.
	Bytes []byte

	// UsedDefaults reports whether built-in defaults stood in for a
	// source document.
	UsedDefaults bool

	// Duration is the end-to-end run time.
	Duration time.Duration
}

// RenderedFields returns the number of constants in the output.
func (r *Result) RenderedFields() int {
	if r.Config == nil {
		return 0
	}
	n := 0
	for _, fv := range r.Config.Fields() {
		if fv.Spec.Rendered {
			n++
		}
	}
	return n
}

// Summary formats the post-run console lines. Sizes and counts echo the
// raw document values as the user wrote them, not the resolved byte
// counts, so "2MB" stays "2MB".
func (r *Result) Summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Generating configuration header: %s\n", r.OutputPath)
	b.WriteString("✓ Configuration generated successfully\n")
	fmt.Fprintf(&b, "  Heap Size: %s\n", r.rawValue("memory", "heap_size"))
	fmt.Fprintf(&b, "  DMA Size: %s\n", r.rawValue("memory", "dma_size"))
	fmt.Fprintf(&b, "  Network Buffers: %s RX / %s TX\n",
		r.rawValue("network", "rx_buffers"), r.rawValue("network", "tx_buffers"))
	return b.String()
}

// rawValue echoes a document value as written.
func (r *Result) rawValue(section, field string) string {
	if r.Document == nil {
		return ""
	}
	v, ok := r.Document.Lookup(section, field)
	if !ok {
		return ""
	}
	return fmt.Sprintf("%v", v)
}
