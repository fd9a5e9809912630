package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"rustrial-os/confgen/pkg/cli"
	"rustrial-os/confgen/pkg/history"
	"rustrial-os/confgen/pkg/history/export"
	"rustrial-os/confgen/pkg/history/retention"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect the generation run ledger",
	Long: `Inspect, export and prune the generation run ledger.

Every generate run appends a record with the document hash, output
hash, render target and outcome, so a build break can be traced to the
exact configuration change that caused it.`,
}

var historyListFlags struct {
	limit  int
	status string
	target string
	format string
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent generation runs",
	Long: `List recent generation runs, newest first.

Examples:
  # The last 20 runs
  confgen history list

  # Failed runs only
  confgen history list --status failure

  # Full records as JSON
  confgen history list --limit 5 --format json`,
	Args: cobra.NoArgs,
	RunE: runHistoryList,
}

var historyExportFlags struct {
	format string
	output string
}

var historyExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the run ledger",
	Long: `Export every run record as JSON or CSV.

Examples:
  # Full ledger to stdout
  confgen history export

  # CSV for spreadsheet tooling
  confgen history export --format csv --output runs.csv`,
	Args: cobra.NoArgs,
	RunE: runHistoryExport,
}

var historyPruneFlags struct {
	olderThan int
	keep      int64
	dryRun    bool
	archive   string
}

var historyPruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete old run records",
	Long: `Delete run records past the retention period or over the record cap.

Pruning runs in two phases: records older than the retention period are
deleted first, then the oldest records beyond the cap. Defaults come
from the history settings.

Examples:
  # Apply the configured retention policy
  confgen history prune

  # Keep two weeks and at most 200 records
  confgen history prune --older-than 14 --keep 200

  # See what would be deleted
  confgen history prune --dry-run

  # Archive records as JSON before deleting them
  confgen history prune --archive .confgen/archive`,
	Args: cobra.NoArgs,
	RunE: runHistoryPrune,
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyExportCmd)
	historyCmd.AddCommand(historyPruneCmd)

	historyListCmd.Flags().IntVar(&historyListFlags.limit, "limit", 20, "maximum runs to list, 0 for all")
	historyListCmd.Flags().StringVar(&historyListFlags.status, "status", "", "filter by status: success, failure")
	historyListCmd.Flags().StringVar(&historyListFlags.target, "target", "", "filter by render target: rust, c-header")
	historyListCmd.Flags().StringVar(&historyListFlags.format, "format", "table", "output format: table, json")

	historyExportCmd.Flags().StringVar(&historyExportFlags.format, "format", "json", "export format: json, csv")
	historyExportCmd.Flags().StringVar(&historyExportFlags.output, "output", "", "export file path (default: stdout)")

	historyPruneCmd.Flags().IntVar(&historyPruneFlags.olderThan, "older-than", 0, "delete records older than this many days (default from settings)")
	historyPruneCmd.Flags().Int64Var(&historyPruneFlags.keep, "keep", 0, "keep at most this many records (default from settings)")
	historyPruneCmd.Flags().BoolVar(&historyPruneFlags.dryRun, "dry-run", false, "report what would be deleted without deleting")
	historyPruneCmd.Flags().StringVar(&historyPruneFlags.archive, "archive", "", "archive records to this directory before deleting")
}

func runHistoryList(cmd *cobra.Command, args []string) error {
	s, err := loadSettings()
	if err != nil {
		return err
	}

	format, err := cli.ParseFormat(historyListFlags.format, cli.FormatTable, cli.FormatJSON)
	if err != nil {
		return err
	}
	if err := validateStatusFilter(historyListFlags.status); err != nil {
		return err
	}

	store, err := openLedger(s)
	if err != nil {
		return err
	}
	defer store.Close()

	records, err := store.Query(cmd.Context(), &history.Query{
		Status: historyListFlags.status,
		Target: historyListFlags.target,
		Limit:  historyListFlags.limit,
	})
	if err != nil {
		return fmt.Errorf("failed to query run ledger: %w", err)
	}

	if format == cli.FormatJSON {
		return cli.WriteJSON(os.Stdout, map[string]interface{}{
			"total_records": len(records),
			"records":       records,
		})
	}

	return writeRunTable(os.Stdout, records)
}

func validateStatusFilter(status string) error {
	switch status {
	case "", history.StatusSuccess, history.StatusFailure:
		return nil
	default:
		return fmt.Errorf("invalid status %q (accepted: success, failure)", status)
	}
}

// writeRunTable renders records as an aligned console table.
func writeRunTable(w io.Writer, records []*history.Record) error {
	if len(records) == 0 {
		fmt.Fprintln(w, "No runs recorded.")
		return nil
	}

	table := cli.NewTable(w, "TIME", "STATUS", "TARGET", "FIELDS", "DURATION", "CONFIG")
	for _, r := range records {
		config := r.ConfigPath
		if config == "" {
			config = "(built-in defaults)"
		}
		table.Row(
			r.RunTime.Format(time.RFC3339),
			r.Status,
			r.Target,
			strconv.Itoa(r.Fields),
			r.Duration.Round(time.Millisecond).String(),
			config,
		)
	}
	return table.Flush()
}

func runHistoryExport(cmd *cobra.Command, args []string) error {
	s, err := loadSettings()
	if err != nil {
		return err
	}

	format, err := cli.ParseFormat(historyExportFlags.format, cli.FormatJSON, cli.FormatCSV)
	if err != nil {
		return err
	}

	store, err := openLedger(s)
	if err != nil {
		return err
	}
	defer store.Close()

	records, err := store.Query(cmd.Context(), &history.Query{})
	if err != nil {
		return fmt.Errorf("failed to query run ledger: %w", err)
	}

	out := io.Writer(os.Stdout)
	if historyExportFlags.output != "" {
		f, err := os.Create(historyExportFlags.output)
		if err != nil {
			return fmt.Errorf("failed to create export file: %w", err)
		}
		defer f.Close()
		out = f
	}

	var exporter history.Exporter
	switch format {
	case cli.FormatCSV:
		exporter = export.NewCSVExporter(true)
	default:
		exporter = export.NewJSONExporter(true)
	}

	if err := exporter.Export(cmd.Context(), records, out); err != nil {
		return fmt.Errorf("failed to export runs: %w", err)
	}

	if historyExportFlags.output != "" {
		fmt.Printf("Exported %d run(s) to %s\n", len(records), historyExportFlags.output)
	}
	return nil
}

func runHistoryPrune(cmd *cobra.Command, args []string) error {
	s, err := loadSettings()
	if err != nil {
		return err
	}

	olderThan := s.History.RetentionDays
	if cmd.Flags().Changed("older-than") {
		olderThan = historyPruneFlags.olderThan
	}
	keep := s.History.MaxRecords
	if cmd.Flags().Changed("keep") {
		keep = historyPruneFlags.keep
	}

	store, err := openLedger(s)
	if err != nil {
		return err
	}
	defer store.Close()

	if historyPruneFlags.dryRun {
		return reportPruneEstimate(cmd.Context(), os.Stdout, store, olderThan, keep)
	}

	cfg := &retention.Config{
		RetentionDays: olderThan,
		MaxRecords:    keep,
	}
	if historyPruneFlags.archive != "" {
		cfg.ArchiveBeforeDelete = true
		cfg.ArchivePath = historyPruneFlags.archive
	}

	pruner := retention.NewPruner(store, cfg)
	deleted, err := pruner.Prune(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to prune run ledger: %w", err)
	}

	fmt.Printf("Pruned %d run(s)\n", deleted)
	return nil
}

// reportPruneEstimate counts what a prune with these limits would
// delete, phase by phase, without deleting anything.
func reportPruneEstimate(ctx context.Context, w io.Writer, store history.Storage, olderThan int, keep int64) error {
	var byAge int64
	if olderThan > 0 {
		cutoff := time.Now().AddDate(0, 0, -olderThan)
		n, err := store.Count(ctx, &history.Query{EndTime: &cutoff})
		if err != nil {
			return fmt.Errorf("failed to count runs: %w", err)
		}
		byAge = n
	}

	var byCount int64
	if keep > 0 {
		total, err := store.Count(ctx, &history.Query{})
		if err != nil {
			return fmt.Errorf("failed to count runs: %w", err)
		}
		if remaining := total - byAge; remaining > keep {
			byCount = remaining - keep
		}
	}

	fmt.Fprintf(w, "Would delete %d run(s): %d past retention, %d over the record cap\n",
		byAge+byCount, byAge, byCount)
	return nil
}
