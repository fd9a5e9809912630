// Package settings loads the tool's own runtime settings.
//
// These are confgen's knobs, not the configuration document it
// compiles. Settings come from three layers, later layers winning:
//
//  1. Built-in defaults (the Default* constants)
//  2. A confgen.yaml file, searched in the working directory or named
//     explicitly with --settings
//  3. CONFGEN_* environment variables (CONFGEN_LOG_LEVEL,
//     CONFGEN_HISTORY_ENABLED, ...)
//
// Command-line flags override all three; the CLI applies them after
// Load.
package settings
