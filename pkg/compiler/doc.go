// Package compiler orchestrates a configuration generation run: load
// the source document, validate it against the schema, render the
// constant file, and write it atomically.
//
// The pipeline is strictly staged. Validation must succeed before any
// rendering happens, and rendering must succeed before any byte reaches
// the output path, so a failed run never leaves a partial or stale-mixed
// generated file behind.
//
// A Compiler is cheap and safe to reuse across runs; watch mode keeps
// one instance for the whole session.
package compiler
