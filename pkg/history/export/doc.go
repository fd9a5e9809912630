// Package export provides exporters that write run records to external
// formats. JSON preserves the full record structure; CSV flattens
// records into one row per run for spreadsheet tooling.
//
// Both exporters satisfy the history.Exporter interface.
package export
