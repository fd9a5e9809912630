package render

import (
	"fmt"
	"strings"

	"rustrial-os/confgen/pkg/osconf"
)

// renderRust emits the src/config.rs body. The exact shape, down to the
// group labels and blank lines, is an output-compatibility contract with
// the kernel build.
func renderRust(cfg *osconf.ResolvedConfig, meta Metadata) string {
	var sb strings.Builder

	sb.WriteString("// Auto-generated configuration\n")
	fmt.Fprintf(&sb, "// Generated: %s\n", meta.GeneratedAt.Format(TimestampLayout))
	sb.WriteString("// DO NOT EDIT MANUALLY\n\n")
	sb.WriteString("#![allow(dead_code)]\n")

	section := ""
	for _, fv := range cfg.Fields() {
		if !fv.Spec.Rendered {
			continue
		}
		if fv.Spec.Section != section {
			section = fv.Spec.Section
			fmt.Fprintf(&sb, "\n// %s\n", osconf.SectionLabel(section))
		}
		if fv.IsString() {
			fmt.Fprintf(&sb, "pub const %s: &str = %s;\n", fv.Spec.ConstName, quote(fv.Str))
		} else {
			fmt.Fprintf(&sb, "pub const %s: usize = %d;\n", fv.Spec.ConstName, fv.Uint)
		}
	}

	return sb.String()
}
