package osconf

// Section names of the configuration document.
const (
	SectionMemory  = "memory"
	SectionNetwork = "network"
	SectionDisplay = "display"
	SectionBuild   = "build"
)

// FieldKind is the semantic type a schema field validates as.
type FieldKind string

const (
	KindSize      FieldKind = "size"      // byte quantity: integer or size literal like "2MB"
	KindCount     FieldKind = "count"     // non-negative integer
	KindDimension FieldKind = "dimension" // positive integer
	KindText      FieldKind = "text"      // non-empty string
	KindColor     FieldKind = "color"     // VGA palette color name
)

// FieldSpec declares one schema field: where it lives in the document,
// how it validates, its default value, and how it renders.
type FieldSpec struct {
	Section   string
	Name      string
	Kind      FieldKind
	Default   any
	ConstName string // generated constant name; empty when Rendered is false
	Rendered  bool
}

// Path returns the dotted "section.field" form.
func (f FieldSpec) Path() string { return f.Section + "." + f.Name }

// schema is the fixed field table, in render order. The ConstName column
// is an output-compatibility contract with the kernel build and must not
// change. The two color fields are consumed through the kernel's own
// palette type and are deliberately absent from generated output.
var schema = []FieldSpec{
	{Section: SectionMemory, Name: "heap_size", Kind: KindSize, Default: "2MB", ConstName: "HEAP_SIZE", Rendered: true},
	{Section: SectionMemory, Name: "dma_size", Kind: KindSize, Default: "1MB", ConstName: "DMA_SIZE", Rendered: true},
	{Section: SectionMemory, Name: "stack_size", Kind: KindSize, Default: "80KB", ConstName: "STACK_SIZE", Rendered: true},
	{Section: SectionNetwork, Name: "buffer_size", Kind: KindCount, Default: 2048, ConstName: "NETWORK_BUFFER_SIZE", Rendered: true},
	{Section: SectionNetwork, Name: "rx_buffers", Kind: KindCount, Default: 256, ConstName: "RX_BUFFER_COUNT", Rendered: true},
	{Section: SectionNetwork, Name: "tx_buffers", Kind: KindCount, Default: 256, ConstName: "TX_BUFFER_COUNT", Rendered: true},
	{Section: SectionDisplay, Name: "width", Kind: KindDimension, Default: 80, ConstName: "DISPLAY_WIDTH", Rendered: true},
	{Section: SectionDisplay, Name: "height", Kind: KindDimension, Default: 25, ConstName: "DISPLAY_HEIGHT", Rendered: true},
	{Section: SectionDisplay, Name: "default_color", Kind: KindColor, Default: "LightGray"},
	{Section: SectionDisplay, Name: "default_bg", Kind: KindColor, Default: "Black"},
	{Section: SectionBuild, Name: "version", Kind: KindText, Default: "0.1.0", ConstName: "OS_VERSION", Rendered: true},
	{Section: SectionBuild, Name: "target", Kind: KindText, Default: "x86_64-rustrial_os", ConstName: "BUILD_TARGET", Rendered: true},
}

// sectionLabels are the group comment labels emitted above each section's
// constants. Part of the output contract.
var sectionLabels = map[string]string{
	SectionMemory:  "Memory Configuration",
	SectionNetwork: "Network Configuration",
	SectionDisplay: "Display Configuration",
	SectionBuild:   "Build Information",
}

// Schema returns a copy of the field table in render order.
func Schema() []FieldSpec {
	return append([]FieldSpec(nil), schema...)
}

// FindField returns the schema entry at section.field.
func FindField(section, field string) (FieldSpec, bool) {
	for _, spec := range schema {
		if spec.Section == section && spec.Name == field {
			return spec, true
		}
	}
	return FieldSpec{}, false
}

// SectionLabel returns the group label for a section, falling back to the
// section name itself.
func SectionLabel(section string) string {
	if label, ok := sectionLabels[section]; ok {
		return label
	}
	return section
}

// VGAColors lists the 16 palette color names the display color fields
// accept, in hardware attribute order.
var VGAColors = []string{
	"Black", "Blue", "Green", "Cyan",
	"Red", "Magenta", "Brown", "LightGray",
	"DarkGray", "LightBlue", "LightGreen", "LightCyan",
	"LightRed", "Pink", "Yellow", "White",
}

// IsVGAColor reports whether name is a palette color. Matching is exact:
// the kernel's palette type derives variant names from these spellings.
func IsVGAColor(name string) bool {
	for _, c := range VGAColors {
		if name == c {
			return true
		}
	}
	return false
}
