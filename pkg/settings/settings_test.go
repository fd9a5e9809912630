package settings

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	s, err := Load("")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if s.Config != DefaultConfigPath {
		t.Errorf("Config = %q, want %q", s.Config, DefaultConfigPath)
	}
	if s.Output != DefaultOutputPath {
		t.Errorf("Output = %q, want %q", s.Output, DefaultOutputPath)
	}
	if s.Target != DefaultTarget {
		t.Errorf("Target = %q, want %q", s.Target, DefaultTarget)
	}
	if s.Strict {
		t.Error("Strict = true by default")
	}
	if s.Log.Level != DefaultLogLevel || s.Log.Format != DefaultLogFormat {
		t.Errorf("Log = %+v", s.Log)
	}
	if !s.History.Enabled {
		t.Error("History.Enabled = false by default")
	}
	if s.History.Path != DefaultHistoryPath {
		t.Errorf("History.Path = %q", s.History.Path)
	}
	if s.History.RetentionDays != DefaultHistoryRetentionDays {
		t.Errorf("History.RetentionDays = %d", s.History.RetentionDays)
	}
	if s.History.MaxRecords != DefaultHistoryMaxRecords {
		t.Errorf("History.MaxRecords = %d", s.History.MaxRecords)
	}
	if s.Watch.Debounce != DefaultWatchDebounce {
		t.Errorf("Watch.Debounce = %v", s.Watch.Debounce)
	}
	if s.Watch.MetricsAddr != "" {
		t.Errorf("Watch.MetricsAddr = %q, want disabled", s.Watch.MetricsAddr)
	}
	if s.Watch.PruneSchedule != DefaultWatchPruneSchedule {
		t.Errorf("Watch.PruneSchedule = %q", s.Watch.PruneSchedule)
	}
}

func TestDefault_Validates(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Errorf("Default() does not validate: %v", err)
	}
}

func TestLoad_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "confgen.yaml")
	content := `target: c-header
output: src/native/include/config.h
log:
  level: debug
history:
  enabled: false
  retention_days: 30
watch:
  debounce: 250ms
  metrics_addr: "127.0.0.1:9090"
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if s.Target != "c-header" {
		t.Errorf("Target = %q", s.Target)
	}
	if s.Output != "src/native/include/config.h" {
		t.Errorf("Output = %q", s.Output)
	}
	if s.Log.Level != "debug" {
		t.Errorf("Log.Level = %q", s.Log.Level)
	}
	if s.History.Enabled {
		t.Error("History.Enabled = true, file disables it")
	}
	if s.History.RetentionDays != 30 {
		t.Errorf("History.RetentionDays = %d", s.History.RetentionDays)
	}
	if s.Watch.Debounce != 250*time.Millisecond {
		t.Errorf("Watch.Debounce = %v", s.Watch.Debounce)
	}
	if s.Watch.MetricsAddr != "127.0.0.1:9090" {
		t.Errorf("Watch.MetricsAddr = %q", s.Watch.MetricsAddr)
	}

	// Untouched keys keep their defaults
	if s.History.Path != DefaultHistoryPath {
		t.Errorf("History.Path = %q, want default", s.History.Path)
	}
	if s.Log.Format != DefaultLogFormat {
		t.Errorf("Log.Format = %q, want default", s.Log.Format)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("CONFGEN_TARGET", "c-header")
	t.Setenv("CONFGEN_LOG_LEVEL", "debug")
	t.Setenv("CONFGEN_HISTORY_MAX_RECORDS", "50")
	t.Setenv("CONFGEN_WATCH_DEBOUNCE", "100ms")

	s, err := Load("")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if s.Target != "c-header" {
		t.Errorf("Target = %q", s.Target)
	}
	if s.Log.Level != "debug" {
		t.Errorf("Log.Level = %q", s.Log.Level)
	}
	if s.History.MaxRecords != 50 {
		t.Errorf("History.MaxRecords = %d", s.History.MaxRecords)
	}
	if s.Watch.Debounce != 100*time.Millisecond {
		t.Errorf("Watch.Debounce = %v", s.Watch.Debounce)
	}
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("Load() with a missing explicit file succeeded")
	}
}

func TestLoad_MalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "confgen.yaml")
	if err := os.WriteFile(path, []byte("target: [broken\n"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Error("Load() with a malformed file succeeded")
	}
}

func TestLoad_InvalidSettings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "confgen.yaml")
	content := `target: cobol
log:
  level: loud
watch:
  debounce: 0s
  prune_schedule: "not cron"
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := Load(path)
	var verr ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("Load() error = %v, want ValidationError", err)
	}
	if len(verr.Errors) != 4 {
		t.Errorf("findings = %d, want 4:\n%v", len(verr.Errors), verr)
	}

	fields := make(map[string]bool)
	for _, fe := range verr.Errors {
		fields[fe.Field] = true
	}
	for _, want := range []string{"target", "log.level", "watch.debounce", "watch.prune_schedule"} {
		if !fields[want] {
			t.Errorf("no finding for %s", want)
		}
	}
}

func TestValidate_MetricsAddr(t *testing.T) {
	tests := []struct {
		addr    string
		wantErr bool
	}{
		{"", false},
		{":9090", false},
		{"127.0.0.1:9090", false},
		{"localhost", true},
		{"9090", true},
	}

	for _, tt := range tests {
		s := Default()
		s.Watch.MetricsAddr = tt.addr
		err := s.Validate()
		if (err != nil) != tt.wantErr {
			t.Errorf("Validate() with addr %q error = %v, wantErr %v", tt.addr, err, tt.wantErr)
		}
	}
}

func TestValidate_NegativeRetention(t *testing.T) {
	s := Default()
	s.History.RetentionDays = -1
	s.History.MaxRecords = -5

	err := s.Validate()
	var verr ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("Validate() error = %v, want ValidationError", err)
	}
	if len(verr.Errors) != 2 {
		t.Errorf("findings = %d, want 2", len(verr.Errors))
	}
}
