// Package render turns a resolved configuration into constant-declaration
// source text for a chosen target language.
//
// Rendering is a pure function of (config, target, metadata). The caller
// injects the timestamp through Metadata, so a frozen clock yields
// byte-identical output.
package render

import (
	"fmt"
	"strings"
	"time"

	"rustrial-os/confgen/pkg/osconf"
)

// Target selects the output language.
type Target string

const (
	// TargetRust is the native output the kernel build consumes.
	TargetRust Target = "rust"

	// TargetCHeader emits a #define header for the C side of the tree.
	TargetCHeader Target = "c-header"
)

// TimestampLayout is the header timestamp format.
const TimestampLayout = "2006-01-02T15:04:05.000000"

// ParseTarget resolves a target name, case-insensitively.
func ParseTarget(s string) (Target, error) {
	switch Target(strings.ToLower(strings.TrimSpace(s))) {
	case TargetRust:
		return TargetRust, nil
	case TargetCHeader:
		return TargetCHeader, nil
	case "":
		return "", fmt.Errorf("empty render target (want %q or %q)", TargetRust, TargetCHeader)
	default:
		return "", fmt.Errorf("unknown render target %q (want %q or %q)", s, TargetRust, TargetCHeader)
	}
}

// DefaultOutputPath returns the conventional output location for a
// target, relative to the kernel repository root.
func DefaultOutputPath(target Target) string {
	if target == TargetCHeader {
		return "src/native/include/config.h"
	}
	return "src/config.rs"
}

// Metadata is the informational header content. The timestamp line is
// excluded from golden comparisons by every consumer; nothing else in
// the output may depend on the clock.
type Metadata struct {
	GeneratedAt time.Time
	ToolVersion string
}

// Render produces the constant-declaration text for cfg.
func Render(cfg *osconf.ResolvedConfig, target Target, meta Metadata) (string, error) {
	switch target {
	case TargetRust:
		return renderRust(cfg, meta), nil
	case TargetCHeader:
		return renderCHeader(cfg, meta), nil
	default:
		return "", fmt.Errorf("unknown render target %q", target)
	}
}

// stringEscaper covers the escapes shared by Rust and C string literals.
var stringEscaper = strings.NewReplacer(
	`\`, `\\`,
	`"`, `\"`,
	"\n", `\n`,
	"\r", `\r`,
	"\t", `\t`,
)

// quote renders s as a double-quoted literal valid in both targets.
func quote(s string) string {
	return `"` + stringEscaper.Replace(s) + `"`
}
