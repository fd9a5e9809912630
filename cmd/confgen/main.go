// Confgen is the build-time configuration compiler for rustrial_os.
//
// It reads a TOML or YAML configuration document, validates every field
// against the kernel schema, and emits the constants the build consumes
// as src/config.rs or a C header. Outputs are written atomically, so a
// broken document never clobbers a good generated file.
//
// Usage:
//
//	# Compile config.toml into src/config.rs
//	confgen
//
//	# Validate the document without writing anything
//	confgen check
//
//	# Regenerate on every document change
//	confgen watch
//
//	# Inspect past generation runs
//	confgen history list
//
//	# Show version information
//	confgen version
package main

func main() {
	Execute()
}
