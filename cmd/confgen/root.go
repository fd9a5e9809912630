package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"rustrial-os/confgen/pkg/history"
	"rustrial-os/confgen/pkg/history/recorder"
	"rustrial-os/confgen/pkg/history/storage"
	"rustrial-os/confgen/pkg/settings"
	"rustrial-os/confgen/pkg/telemetry/logging"
)

var (
	// Global flags
	settingsFile string
	verbose      bool
)

var rootCmd = &cobra.Command{
	Use:   "confgen",
	Short: "Build-time configuration compiler for rustrial_os",
	Long: `Confgen compiles a TOML or YAML configuration document into the
constants the rustrial_os build consumes.

It reads config.toml from the working directory, validates every field
against the kernel schema, and writes src/config.rs (or a C header)
atomically. When the conventional document is absent the built-in
defaults are compiled instead, so a fresh checkout builds without any
configuration on disk.

Running confgen with no arguments performs a full generation cycle.`,
	Version: Version,
	Args:    cobra.NoArgs,
	RunE:    runGenerate,

	// Execute reports errors once on stderr.
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Global persistent flags (available to all subcommands)
	rootCmd.PersistentFlags().StringVar(&settingsFile, "settings", "", "tool settings file (default: confgen.yaml in the working directory)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	// Disable default completion command (we'll add our own)
	rootCmd.CompletionOptions.DisableDefaultCmd = true
}

// loadSettings reads the tool settings and installs the process logger.
// Every command handler calls this first.
func loadSettings() (*settings.Settings, error) {
	s, err := settings.Load(settingsFile)
	if err != nil {
		return nil, err
	}

	level := s.Log.Level
	if verbose {
		level = "debug"
	}
	if _, err := logging.Setup(logging.Config{
		Level:  level,
		Format: s.Log.Format,
	}); err != nil {
		return nil, err
	}

	return s, nil
}

// openLedger opens the run ledger database named by the settings. The
// ledger is opened regardless of whether history recording is enabled;
// the enabled flag only governs whether new runs are appended.
func openLedger(s *settings.Settings) (history.Storage, error) {
	store, err := storage.NewSQLiteStorage(&storage.SQLiteConfig{
		Path:        s.History.Path,
		WALMode:     true,
		BusyTimeout: 5 * time.Second,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open run ledger: %w", err)
	}
	return store, nil
}

// newRecorder wires the run ledger into a recorder. History disabled in
// the settings yields a nil recorder, which records nothing.
func newRecorder(s *settings.Settings) (*recorder.Recorder, error) {
	if !s.History.Enabled {
		return nil, nil
	}

	store, err := openLedger(s)
	if err != nil {
		return nil, err
	}

	return recorder.NewRecorder(store, &recorder.Config{
		Enabled:     true,
		ToolVersion: Version,
	}), nil
}
