package osconf

import "rustrial-os/confgen/pkg/size"

// MemoryConfig holds the resolved memory sizing values, in bytes.
type MemoryConfig struct {
	HeapSize  size.Value
	DMASize   size.Value
	StackSize size.Value
}

// NetworkConfig holds the resolved network buffer values.
type NetworkConfig struct {
	BufferSize uint64
	RXBuffers  uint64
	TXBuffers  uint64
}

// DisplayConfig holds the resolved display values. The color fields are
// validated but not rendered; see the schema table.
type DisplayConfig struct {
	Width        uint64
	Height       uint64
	DefaultColor string
	DefaultBG    string
}

// BuildConfig holds the resolved build metadata.
type BuildConfig struct {
	Version string
	Target  string
}

// ResolvedConfig is the fully validated, typed configuration. It is
// created once per compile run by Validate and never mutated afterwards.
type ResolvedConfig struct {
	Memory  MemoryConfig
	Network NetworkConfig
	Display DisplayConfig
	Build   BuildConfig
}

// FieldValue pairs a schema entry with its resolved value. Exactly one of
// Uint and Str carries the value, depending on the field kind.
type FieldValue struct {
	Spec FieldSpec
	Uint uint64
	Str  string
}

// IsString reports whether the value is textual.
func (fv FieldValue) IsString() bool {
	return fv.Spec.Kind == KindText || fv.Spec.Kind == KindColor
}

// Fields returns every schema field paired with its resolved value, in
// render order. The switch below is kept in lockstep with the schema
// table; TestFieldsCoverSchema guards the pairing.
func (rc *ResolvedConfig) Fields() []FieldValue {
	out := make([]FieldValue, 0, len(schema))
	for _, spec := range schema {
		fv := FieldValue{Spec: spec}
		switch spec.Path() {
		case "memory.heap_size":
			fv.Uint = uint64(rc.Memory.HeapSize)
		case "memory.dma_size":
			fv.Uint = uint64(rc.Memory.DMASize)
		case "memory.stack_size":
			fv.Uint = uint64(rc.Memory.StackSize)
		case "network.buffer_size":
			fv.Uint = rc.Network.BufferSize
		case "network.rx_buffers":
			fv.Uint = rc.Network.RXBuffers
		case "network.tx_buffers":
			fv.Uint = rc.Network.TXBuffers
		case "display.width":
			fv.Uint = rc.Display.Width
		case "display.height":
			fv.Uint = rc.Display.Height
		case "display.default_color":
			fv.Str = rc.Display.DefaultColor
		case "display.default_bg":
			fv.Str = rc.Display.DefaultBG
		case "build.version":
			fv.Str = rc.Build.Version
		case "build.target":
			fv.Str = rc.Build.Target
		}
		out = append(out, fv)
	}
	return out
}
