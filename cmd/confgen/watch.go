package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"rustrial-os/confgen/pkg/cli"
	"rustrial-os/confgen/pkg/compiler"
	"rustrial-os/confgen/pkg/history"
	"rustrial-os/confgen/pkg/history/recorder"
	"rustrial-os/confgen/pkg/history/retention"
	"rustrial-os/confgen/pkg/telemetry/health"
	"rustrial-os/confgen/pkg/telemetry/metrics"
	"rustrial-os/confgen/pkg/watch"
)

var watchFlags struct {
	config      string
	output      string
	target      string
	strict      bool
	debounce    time.Duration
	metricsAddr string
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch the document and regenerate on change",
	Long: `Watch the configuration document and regenerate the output
whenever the document changes.

Rapid bursts of writes are debounced into a single regeneration, and a
broken edit never stops the watcher: the previous output stays in place
until the document validates again.

With a metrics address set, an HTTP listener exposes Prometheus metrics
on /metrics plus /health, /ready and /version probes.

Examples:
  # Watch config.toml, regenerate src/config.rs
  confgen watch

  # Shorter debounce and a metrics listener
  confgen watch --debounce 200ms --metrics-addr 127.0.0.1:9464

  # Watch a board-specific document
  confgen watch --config boards/qemu.toml --target c-header`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().StringVarP(&watchFlags.config, "config", "c", "", "configuration document path")
	watchCmd.Flags().StringVarP(&watchFlags.output, "output", "o", "", "generated file path (default: the target's conventional location)")
	watchCmd.Flags().StringVarP(&watchFlags.target, "target", "t", "", "output language: rust, c-header")
	watchCmd.Flags().BoolVar(&watchFlags.strict, "strict", false, "reject unknown document sections and fields")
	watchCmd.Flags().DurationVar(&watchFlags.debounce, "debounce", 0, "quiet period before regenerating (default from settings)")
	watchCmd.Flags().StringVar(&watchFlags.metricsAddr, "metrics-addr", "", "metrics listener address, e.g. 127.0.0.1:9464 (default from settings)")
}

func runWatch(cmd *cobra.Command, args []string) error {
	s, err := loadSettings()
	if err != nil {
		return err
	}

	req, err := buildRequest(s, watchFlags.config, cmd.Flags().Changed("config"),
		watchFlags.output, watchFlags.target, watchFlags.strict)
	if err != nil {
		return err
	}

	debounce := s.Watch.Debounce
	if watchFlags.debounce > 0 {
		debounce = watchFlags.debounce
	}
	metricsAddr := s.Watch.MetricsAddr
	if cmd.Flags().Changed("metrics-addr") {
		metricsAddr = watchFlags.metricsAddr
	}

	ctx := cli.SetupSignalHandler()

	var rec *recorder.Recorder
	var store history.Storage
	if s.History.Enabled {
		store, err = openLedger(s)
		if err != nil {
			return err
		}
		rec = recorder.NewRecorder(store, &recorder.Config{
			Enabled:     true,
			ToolVersion: Version,
		})
		defer rec.Close()

		if s.Watch.PruneSchedule != "" {
			pruner := retention.NewPruner(store, &retention.Config{
				RetentionDays: s.History.RetentionDays,
				MaxRecords:    s.History.MaxRecords,
				PruneSchedule: s.Watch.PruneSchedule,
			})
			if err := pruner.Start(ctx); err != nil {
				return fmt.Errorf("failed to start retention pruning: %w", err)
			}
			defer pruner.Stop()
		}
	}

	var collector *metrics.Collector
	if metricsAddr != "" {
		collector = metrics.NewCollector(nil, nil)

		server := watch.NewServer(metricsAddr, collector, newWatchChecker(req.ConfigPath, store),
			Version, GitCommit, BuildDate)
		if err := server.Start(); err != nil {
			return fmt.Errorf("failed to start metrics listener: %w", err)
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := server.Shutdown(shutdownCtx); err != nil {
				slog.Error("metrics listener shutdown failed", "error", err)
			}
		}()
	}

	comp := compiler.New(&compiler.Config{
		ToolVersion: Version,
		Recorder:    rec,
		Metrics:     collector,
	})

	w, err := watch.New(comp, req, &watch.Config{
		DebounceInterval: debounce,
		Metrics:          collector,
		OnResult: func(res *compiler.Result, err error) {
			if err != nil {
				cli.Failuref(os.Stdout, "regeneration failed: %v", err)
				return
			}
			fmt.Print(res.Summary())
		},
	})
	if err != nil {
		return err
	}
	defer w.Stop()

	return w.Run(ctx)
}

// newWatchChecker builds the readiness checker for the watch listener.
// The document check tolerates a missing file because the watcher
// compiles built-in defaults until the document appears.
func newWatchChecker(configPath string, store history.Storage) *health.Checker {
	checker := health.New(0)

	checker.RegisterCheck("document", func(ctx context.Context) error {
		if _, err := os.Stat(configPath); err != nil && !os.IsNotExist(err) {
			return err
		}
		return nil
	})

	if store != nil {
		checker.RegisterCheck("ledger", func(ctx context.Context) error {
			_, err := store.Count(ctx, &history.Query{})
			return err
		})
	}

	return checker
}
