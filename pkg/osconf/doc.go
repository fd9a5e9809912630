// Package osconf models the rustrial_os configuration document: the four
// sections (memory, network, display, build) the kernel build compiles
// into generated constants.
//
// The package owns the document lifecycle up to a typed result. It
// declares the field schema, materializes the built-in defaults, loads
// TOML and YAML documents, and validates raw documents into an immutable
// ResolvedConfig. Turning a ResolvedConfig into output text is
// pkg/render's concern.
//
// Validation is all-or-nothing: every finding across the document is
// accumulated into a single ValidationError, and a ResolvedConfig is
// produced only when there are none.
package osconf
