package settings

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// settingsName is the file viper searches for when no explicit path is
// given: confgen.yaml in the working directory.
const settingsName = "confgen"

// Load reads the tool settings. path names an explicit settings file;
// empty searches the working directory. A missing searched file is
// fine, environment variables and defaults still apply; a missing
// explicit file is an error.
func Load(path string) (*Settings, error) {
	v := viper.New()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(settingsName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("CONFGEN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading settings: %w", err)
		}
	}

	s := &Settings{
		Config: v.GetString("config"),
		Output: v.GetString("output"),
		Target: v.GetString("target"),
		Strict: v.GetBool("strict"),
		Log: LogSettings{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
		},
		History: HistorySettings{
			Enabled:       v.GetBool("history.enabled"),
			Path:          v.GetString("history.path"),
			RetentionDays: v.GetInt("history.retention_days"),
			MaxRecords:    v.GetInt64("history.max_records"),
		},
		Watch: WatchSettings{
			Debounce:      v.GetDuration("watch.debounce"),
			MetricsAddr:   v.GetString("watch.metrics_addr"),
			PruneSchedule: v.GetString("watch.prune_schedule"),
		},
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Default returns settings built purely from the Default* constants.
func Default() *Settings {
	return &Settings{
		Config: DefaultConfigPath,
		Output: DefaultOutputPath,
		Target: DefaultTarget,
		Strict: DefaultStrict,
		Log: LogSettings{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
		History: HistorySettings{
			Enabled:       DefaultHistoryEnabled,
			Path:          DefaultHistoryPath,
			RetentionDays: DefaultHistoryRetentionDays,
			MaxRecords:    DefaultHistoryMaxRecords,
		},
		Watch: WatchSettings{
			Debounce:      DefaultWatchDebounce,
			MetricsAddr:   DefaultWatchMetricsAddr,
			PruneSchedule: DefaultWatchPruneSchedule,
		},
	}
}

// setDefaults seeds viper with the Default* constants so that file and
// environment layers only need to name what they change.
func setDefaults(v *viper.Viper) {
	v.SetDefault("config", DefaultConfigPath)
	v.SetDefault("output", DefaultOutputPath)
	v.SetDefault("target", DefaultTarget)
	v.SetDefault("strict", DefaultStrict)

	v.SetDefault("log.level", DefaultLogLevel)
	v.SetDefault("log.format", DefaultLogFormat)

	v.SetDefault("history.enabled", DefaultHistoryEnabled)
	v.SetDefault("history.path", DefaultHistoryPath)
	v.SetDefault("history.retention_days", DefaultHistoryRetentionDays)
	v.SetDefault("history.max_records", DefaultHistoryMaxRecords)

	v.SetDefault("watch.debounce", DefaultWatchDebounce)
	v.SetDefault("watch.metrics_addr", DefaultWatchMetricsAddr)
	v.SetDefault("watch.prune_schedule", DefaultWatchPruneSchedule)
}
