package render

import (
	"fmt"
	"strings"

	"rustrial-os/confgen/pkg/osconf"
)

// cheaderGuard is the include guard, following the convention of the
// headers under src/native/include.
const cheaderGuard = "CONFIG_H"

// renderCHeader emits a #define header mirroring the Rust output.
func renderCHeader(cfg *osconf.ResolvedConfig, meta Metadata) string {
	var sb strings.Builder

	sb.WriteString("/**\n")
	sb.WriteString(" * Auto-generated configuration\n")
	if meta.ToolVersion != "" {
		fmt.Fprintf(&sb, " * Generated: %s by confgen %s\n", meta.GeneratedAt.Format(TimestampLayout), meta.ToolVersion)
	} else {
		fmt.Fprintf(&sb, " * Generated: %s\n", meta.GeneratedAt.Format(TimestampLayout))
	}
	sb.WriteString(" * DO NOT EDIT MANUALLY\n")
	sb.WriteString(" */\n\n")
	fmt.Fprintf(&sb, "#ifndef %s\n#define %s\n", cheaderGuard, cheaderGuard)

	section := ""
	for _, fv := range cfg.Fields() {
		if !fv.Spec.Rendered {
			continue
		}
		if fv.Spec.Section != section {
			section = fv.Spec.Section
			fmt.Fprintf(&sb, "\n/* %s */\n", osconf.SectionLabel(section))
		}
		if fv.IsString() {
			fmt.Fprintf(&sb, "#define %s %s\n", fv.Spec.ConstName, quote(fv.Str))
		} else {
			fmt.Fprintf(&sb, "#define %s %d\n", fv.Spec.ConstName, fv.Uint)
		}
	}

	fmt.Fprintf(&sb, "\n#endif /* %s */\n", cheaderGuard)
	return sb.String()
}
