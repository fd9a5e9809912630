package history

import (
	"context"
	"io"
	"time"
)

// Record captures the outcome of a single configuration generation run.
// Records are append-only; nothing in the tool mutates a record after it
// has been stored.
type Record struct {
	// Identity
	ID string `json:"id"` // UUID v4

	// Timestamps
	RunTime time.Time `json:"run_time"` // When the run started

	// Source document
	ConfigPath string `json:"config_path"` // Source path, empty when built-in defaults were used
	ConfigHash string `json:"config_hash"` // SHA-256 of the source document

	// Generated output
	OutputPath string `json:"output_path"` // Written file path, empty for stdout runs
	OutputHash string `json:"output_hash"` // SHA-256 of the rendered output
	Target     string `json:"target"`      // Render target ("rust", "c-header")

	// Outcome
	Status   string        `json:"status"`          // "success" or "failure"
	Error    string        `json:"error,omitempty"` // Failure detail, empty on success
	Fields   int           `json:"fields"`          // Number of constants rendered
	Duration time.Duration `json:"duration"`        // End-to-end run time

	// Tool info
	ToolVersion string `json:"tool_version"` // Version of the tool that produced the run
}

// Run status values.
const (
	StatusSuccess = "success"
	StatusFailure = "failure"
)

// Query defines filter parameters for querying run records.
type Query struct {
	// Time range
	StartTime *time.Time `json:"start_time,omitempty"` // Inclusive start time
	EndTime   *time.Time `json:"end_time,omitempty"`   // Inclusive end time

	// Filters
	Status     string `json:"status,omitempty"`      // "success" or "failure"
	Target     string `json:"target,omitempty"`      // Render target
	ConfigPath string `json:"config_path,omitempty"` // Source document path

	// Pagination
	Limit  int `json:"limit,omitempty"`  // Max records to return, 0 means all
	Offset int `json:"offset,omitempty"` // Skip N records
}

// Storage defines the interface for run ledger backends.
// Implementations must be safe for concurrent use.
type Storage interface {
	// Store persists a run record.
	// Returns an error if the record cannot be written.
	Store(ctx context.Context, record *Record) error

	// Query retrieves run records matching the query filters, newest
	// first. Returns an empty slice if no records match.
	Query(ctx context.Context, query *Query) ([]*Record, error)

	// Count returns the number of run records matching the query filters.
	Count(ctx context.Context, query *Query) (int64, error)

	// Delete removes run records matching the query filters.
	// Returns the number of records deleted.
	// Used for retention policy enforcement.
	Delete(ctx context.Context, query *Query) (int64, error)

	// Close releases any resources held by the storage backend.
	Close() error
}

// Exporter defines the interface for exporting run records to various formats.
type Exporter interface {
	// Export writes run records to the provided writer in the exporter's format.
	// Returns an error if the export fails.
	Export(ctx context.Context, records []*Record, w io.Writer) error
}
