package osconf

// DefaultDocument returns the built-in configuration document,
// materialized from the schema defaults. It always validates cleanly and
// matches the values the kernel build ships with:
//
//	memory:  heap_size "2MB", dma_size "1MB", stack_size "80KB"
//	network: buffer_size 2048, rx_buffers 256, tx_buffers 256
//	display: width 80, height 25, default_color "LightGray", default_bg "Black"
//	build:   version "0.1.0", target "x86_64-rustrial_os"
func DefaultDocument() *Document {
	doc := NewDocument()
	for _, spec := range schema {
		doc.Set(spec.Section, spec.Name, spec.Default)
	}
	return doc
}
