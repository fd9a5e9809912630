// Package history provides an append-only ledger of configuration
// generation runs. Every run records what was generated, from which
// source document, and whether it succeeded, so a generated file found
// in a source tree can always be traced back to its inputs.
//
// # Architecture
//
// The history system consists of three layers:
//
//  1. Run Recorder - Appends run records after each generation
//  2. Storage Backend - Persists run records (SQLite, in-memory)
//  3. Query Layer - Retrieves and filters run records
//
// # Run Records
//
// Each run record captures:
//   - Source document path and SHA-256 hash
//   - Generated output path and SHA-256 hash
//   - Render target and rendered constant count
//   - Outcome (success or failure, with failure detail)
//   - Timestamps and run duration
//   - Tool version that produced the run
//
// # Basic Usage
//
//	// Open the run ledger
//	store, err := storage.NewSQLiteStorage(&storage.SQLiteConfig{
//	    Path: ".confgen/history.db",
//	    WALMode: true,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer store.Close()
//
//	// Create a run recorder
//	rec := recorder.NewRecorder(store, &recorder.Config{
//	    Enabled: true,
//	    ToolVersion: "1.2.0",
//	})
//
//	// Append a run record
//	rec.Record(ctx, &history.Record{
//	    ConfigPath: "config.toml",
//	    OutputPath: "src/config.rs",
//	    Target:     "rust",
//	    Status:     history.StatusSuccess,
//	})
//
// # Querying Runs
//
//	query := &history.Query{
//	    Status: history.StatusFailure,
//	    Limit:  20,
//	}
//	records, err := store.Query(ctx, query)
//
// Records come back newest first. Exporters in the export subpackage
// write query results as JSON or CSV.
//
// # Retention
//
// Old run records can be pruned by age and by total count:
//
//	pruner := retention.NewPruner(store, &retention.Config{
//	    RetentionDays: 90,
//	    MaxRecords:    1000,
//	    PruneSchedule: "@daily",
//	})
//	pruner.Start(ctx)
//	defer pruner.Stop()
package history
