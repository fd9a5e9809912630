package settings

import (
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/robfig/cron/v3"

	"rustrial-os/confgen/pkg/render"
)

// Settings holds the tool's runtime settings.
type Settings struct {
	// Config is the source document path.
	Config string

	// Output is the generated file path. Empty means the target's
	// conventional location.
	Output string

	// Target is the output language ("rust", "c-header").
	Target string

	// Strict rejects unknown document sections and fields.
	Strict bool

	// Log configures the process logger.
	Log LogSettings

	// History configures the run ledger.
	History HistorySettings

	// Watch configures watch mode.
	Watch WatchSettings
}

// LogSettings configures the process logger.
type LogSettings struct {
	// Level is the minimum log level ("debug", "info", "warn", "error").
	Level string

	// Format is the log output format ("text", "json").
	Format string
}

// HistorySettings configures the run ledger.
type HistorySettings struct {
	// Enabled turns run recording on.
	Enabled bool

	// Path is the SQLite database file.
	Path string

	// RetentionDays is the prune age threshold. Zero disables age
	// pruning.
	RetentionDays int

	// MaxRecords is the prune count threshold. Zero disables count
	// pruning.
	MaxRecords int64
}

// WatchSettings configures watch mode.
type WatchSettings struct {
	// Debounce is the quiet period between a file event burst and the
	// recompile it triggers.
	Debounce time.Duration

	// MetricsAddr is the observability listener address. Empty
	// disables the listener.
	MetricsAddr string

	// PruneSchedule is the cron expression for scheduled history
	// pruning during watch mode. Empty disables scheduling.
	PruneSchedule string
}

// FieldError represents a validation error for a specific settings
// field.
type FieldError struct {
	// Field is the dotted path to the field (e.g., "log.level").
	Field string

	// Message is a human-readable error message.
	Message string
}

// Error returns the error message for this field error.
func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationError represents one or more validation errors in the
// settings. It implements the error interface and provides access to
// all field errors.
type ValidationError struct {
	// Errors contains all validation errors found.
	Errors []FieldError
}

// Error returns a formatted string containing all validation errors.
func (e ValidationError) Error() string {
	if len(e.Errors) == 0 {
		return "settings validation failed"
	}
	if len(e.Errors) == 1 {
		return fmt.Sprintf("settings validation failed: %s", e.Errors[0].Error())
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("settings validation failed with %d errors:\n", len(e.Errors)))
	for _, err := range e.Errors {
		sb.WriteString(fmt.Sprintf("  - %s\n", err.Error()))
	}
	return sb.String()
}

// Validate checks the settings and returns a ValidationError when any
// rule fails. All findings are collected and returned together.
func (s *Settings) Validate() error {
	var errs []FieldError

	if _, err := render.ParseTarget(s.Target); err != nil {
		errs = append(errs, FieldError{Field: "target", Message: err.Error()})
	}

	errs = append(errs, validateLog(&s.Log)...)
	errs = append(errs, validateHistory(&s.History)...)
	errs = append(errs, validateWatch(&s.Watch)...)

	if len(errs) > 0 {
		return ValidationError{Errors: errs}
	}
	return nil
}

func validateLog(s *LogSettings) []FieldError {
	var errs []FieldError

	switch strings.ToLower(s.Level) {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		errs = append(errs, FieldError{
			Field:   "log.level",
			Message: fmt.Sprintf("unknown level %q (want debug, info, warn or error)", s.Level),
		})
	}

	switch strings.ToLower(s.Format) {
	case "", "text", "json":
	default:
		errs = append(errs, FieldError{
			Field:   "log.format",
			Message: fmt.Sprintf("unknown format %q (want text or json)", s.Format),
		})
	}

	return errs
}

func validateHistory(s *HistorySettings) []FieldError {
	var errs []FieldError

	if s.Enabled && s.Path == "" {
		errs = append(errs, FieldError{Field: "history.path", Message: "must not be empty when history is enabled"})
	}
	if s.RetentionDays < 0 {
		errs = append(errs, FieldError{Field: "history.retention_days", Message: "must not be negative"})
	}
	if s.MaxRecords < 0 {
		errs = append(errs, FieldError{Field: "history.max_records", Message: "must not be negative"})
	}

	return errs
}

func validateWatch(s *WatchSettings) []FieldError {
	var errs []FieldError

	if s.Debounce <= 0 {
		errs = append(errs, FieldError{Field: "watch.debounce", Message: "must be a positive duration"})
	}
	if s.MetricsAddr != "" {
		if _, _, err := net.SplitHostPort(s.MetricsAddr); err != nil {
			errs = append(errs, FieldError{
				Field:   "watch.metrics_addr",
				Message: fmt.Sprintf("invalid listen address %q", s.MetricsAddr),
			})
		}
	}
	if s.PruneSchedule != "" {
		if _, err := cron.ParseStandard(s.PruneSchedule); err != nil {
			errs = append(errs, FieldError{
				Field:   "watch.prune_schedule",
				Message: fmt.Sprintf("invalid cron expression %q", s.PruneSchedule),
			})
		}
	}

	return errs
}
