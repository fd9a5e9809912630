package retention

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"rustrial-os/confgen/pkg/history"
	"rustrial-os/confgen/pkg/history/export"
)

// Config contains configuration for the retention pruner.
type Config struct {
	// RetentionDays is the number of days to retain run records.
	// 0 means keep records forever (no age-based pruning).
	RetentionDays int

	// MaxRecords is the maximum number of records to keep.
	// 0 means unlimited.
	MaxRecords int64

	// PruneSchedule is a cron expression for scheduling pruning.
	// Example: "@daily" or "0 3 * * *" (daily at 3 AM).
	PruneSchedule string

	// ArchiveBeforeDelete enables archiving records before deletion.
	ArchiveBeforeDelete bool

	// ArchivePath is the directory to store archived records.
	ArchivePath string
}

// DefaultConfig returns the default retention configuration.
func DefaultConfig() *Config {
	return &Config{
		RetentionDays:       90,
		MaxRecords:          1000,
		PruneSchedule:       "@daily",
		ArchiveBeforeDelete: false,
		ArchivePath:         ".confgen/archive",
	}
}

// Pruner enforces retention policies on run records.
type Pruner struct {
	storage   history.Storage
	config    *Config
	logger    *slog.Logger
	scheduler *Scheduler
}

// NewPruner creates a new retention pruner.
func NewPruner(storage history.Storage, config *Config) *Pruner {
	if config == nil {
		config = DefaultConfig()
	}

	pruner := &Pruner{
		storage: storage,
		config:  config,
		logger:  slog.Default().With("component", "history.retention"),
	}
	pruner.scheduler = NewScheduler(pruner)

	return pruner
}

// Prune deletes run records older than the retention period or
// exceeding the max record count.
//
// Pruning happens in two phases:
//  1. Age-based: delete records older than RetentionDays
//  2. Count-based: if total records > MaxRecords, delete oldest
//
// Returns the total number of records deleted.
func (p *Pruner) Prune(ctx context.Context) (int64, error) {
	var totalDeleted int64

	if p.config.RetentionDays > 0 {
		deleted, err := p.pruneByAge(ctx)
		if err != nil {
			return totalDeleted, fmt.Errorf("prune by age failed: %w", err)
		}
		totalDeleted += deleted
	}

	if p.config.MaxRecords > 0 {
		deleted, err := p.pruneByCount(ctx)
		if err != nil {
			return totalDeleted, fmt.Errorf("prune by count failed: %w", err)
		}
		totalDeleted += deleted
	}

	if totalDeleted > 0 {
		p.logger.Info("run ledger pruned",
			"total_deleted", totalDeleted,
			"retention_days", p.config.RetentionDays,
			"max_records", p.config.MaxRecords,
		)
	} else {
		p.logger.Debug("no records pruned",
			"retention_days", p.config.RetentionDays,
			"max_records", p.config.MaxRecords,
		)
	}

	return totalDeleted, nil
}

// pruneByAge deletes records older than the retention period.
func (p *Pruner) pruneByAge(ctx context.Context) (int64, error) {
	cutoff := time.Now().AddDate(0, 0, -p.config.RetentionDays)

	query := &history.Query{
		EndTime: &cutoff,
	}

	if p.config.ArchiveBeforeDelete {
		if err := p.archiveQuery(ctx, query, "age"); err != nil {
			return 0, history.NewRetentionError(p.config.RetentionDays, err)
		}
	}

	deleted, err := p.storage.Delete(ctx, query)
	if err != nil {
		return 0, history.NewRetentionError(p.config.RetentionDays, err)
	}

	return deleted, nil
}

// pruneByCount deletes the oldest records if the total count exceeds
// MaxRecords.
func (p *Pruner) pruneByCount(ctx context.Context) (int64, error) {
	count, err := p.storage.Count(ctx, &history.Query{})
	if err != nil {
		return 0, fmt.Errorf("failed to count records: %w", err)
	}
	if count <= p.config.MaxRecords {
		return 0, nil
	}

	// Query returns newest first, so everything past MaxRecords is prunable
	records, err := p.storage.Query(ctx, &history.Query{})
	if err != nil {
		return 0, fmt.Errorf("failed to query records: %w", err)
	}
	if int64(len(records)) <= p.config.MaxRecords {
		return 0, nil
	}

	victims := records[p.config.MaxRecords:]

	// Delete everything at or before the newest victim's run time
	cutoff := victims[0].RunTime
	deleteQuery := &history.Query{
		EndTime: &cutoff,
	}

	if p.config.ArchiveBeforeDelete {
		if err := p.archiveRecords(ctx, victims, "count"); err != nil {
			return 0, fmt.Errorf("archive failed: %w", err)
		}
	}

	deleted, err := p.storage.Delete(ctx, deleteQuery)
	if err != nil {
		return 0, fmt.Errorf("delete failed: %w", err)
	}

	return deleted, nil
}

// archiveQuery exports the records matched by query to a JSON archive file.
func (p *Pruner) archiveQuery(ctx context.Context, query *history.Query, reason string) error {
	records, err := p.storage.Query(ctx, query)
	if err != nil {
		return fmt.Errorf("failed to query records for archiving: %w", err)
	}
	return p.archiveRecords(ctx, records, reason)
}

// archiveRecords exports a list of run records to JSON before deletion.
func (p *Pruner) archiveRecords(ctx context.Context, records []*history.Record, reason string) error {
	if len(records) == 0 {
		return nil
	}

	if err := os.MkdirAll(p.config.ArchivePath, 0755); err != nil {
		return fmt.Errorf("failed to create archive directory: %w", err)
	}

	archiveFile := filepath.Join(p.config.ArchivePath,
		fmt.Sprintf("runs-%s-%s.json", reason, time.Now().Format("2006-01-02-150405")))
	f, err := os.Create(archiveFile)
	if err != nil {
		return fmt.Errorf("failed to create archive file: %w", err)
	}
	defer f.Close()

	exporter := export.NewJSONExporter(true)
	if err := exporter.Export(ctx, records, f); err != nil {
		return fmt.Errorf("failed to export records to archive: %w", err)
	}

	p.logger.Info("run records archived",
		"archive_file", archiveFile,
		"record_count", len(records),
	)

	return nil
}

// Start starts the automatic pruning scheduler.
// Call this when starting a long-lived session such as watch mode.
func (p *Pruner) Start(ctx context.Context) error {
	return p.scheduler.Start(ctx)
}

// Stop stops the automatic pruning scheduler.
// Call this during graceful shutdown.
func (p *Pruner) Stop() {
	p.scheduler.Stop()
}

// NextPruning returns the time of the next scheduled pruning.
func (p *Pruner) NextPruning() *time.Time {
	return p.scheduler.NextRun()
}
