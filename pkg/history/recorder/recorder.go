// Package recorder appends generation run records to the ledger.
package recorder

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"rustrial-os/confgen/pkg/history"
)

// Config contains configuration for the run recorder.
type Config struct {
	// Enabled controls whether runs are recorded at all.
	Enabled bool

	// ToolVersion is stamped onto every record that does not carry one.
	ToolVersion string
}

// Recorder appends run records to a history.Storage backend.
//
// A nil Recorder is valid and records nothing, so callers do not need to
// guard every call site on whether history is enabled.
type Recorder struct {
	storage history.Storage
	config  *Config
	logger  *slog.Logger
	now     func() time.Time
}

// NewRecorder creates a new run recorder backed by storage.
func NewRecorder(storage history.Storage, config *Config) *Recorder {
	if config == nil {
		config = &Config{Enabled: true}
	}

	return &Recorder{
		storage: storage,
		config:  config,
		logger:  slog.Default().With("component", "history.recorder"),
		now:     time.Now,
	}
}

// Enabled reports whether runs will actually be recorded.
func (r *Recorder) Enabled() bool {
	return r != nil && r.config.Enabled && r.storage != nil
}

// Record appends a run record to the ledger. Missing identity fields
// (ID, RunTime, ToolVersion) are filled in before storing.
func (r *Recorder) Record(ctx context.Context, record *history.Record) error {
	if !r.Enabled() {
		return nil
	}

	if record.ID == "" {
		record.ID = uuid.New().String()
	}
	if record.RunTime.IsZero() {
		record.RunTime = r.now()
	}
	if record.ToolVersion == "" {
		record.ToolVersion = r.config.ToolVersion
	}

	if err := r.storage.Store(ctx, record); err != nil {
		return history.NewRecorderError(record.ID, err)
	}

	r.logger.Debug("run recorded",
		"record_id", record.ID,
		"status", record.Status,
		"target", record.Target,
	)

	return nil
}

// Close releases the underlying storage.
func (r *Recorder) Close() error {
	if r == nil || r.storage == nil {
		return nil
	}
	return r.storage.Close()
}
