// Package retention enforces retention policies on the run ledger.
//
// The Pruner deletes run records in two phases: first by age (records
// older than RetentionDays), then by count (oldest records beyond
// MaxRecords). Pruned records can optionally be archived to JSON files
// before deletion.
//
// The Scheduler runs the pruner on a cron schedule so long-lived watch
// sessions keep the ledger bounded without operator intervention.
package retention
