// Package logging configures the process-wide structured logger.
//
// # Overview
//
// The logging package wraps Go's standard log/slog package to provide:
//   - Text and JSON output formats
//   - Configurable log levels (debug, info, warn, error)
//   - Optional source locations for debugging
//
// Log output goes to stderr. Stdout is reserved for rendered
// configuration text, so piping generated output stays safe at any log
// level.
//
// # Usage
//
//	// Install the process logger once, in main
//	logger, err := logging.Setup(logging.Config{
//	    Level:  "info",
//	    Format: "text",
//	})
//
//	// Packages derive component loggers from the installed default
//	logger := slog.Default().With("component", "compiler")
package logging
