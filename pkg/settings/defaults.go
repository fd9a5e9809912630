package settings

import "time"

// Default values for tool settings.
const (
	// Generation defaults
	DefaultConfigPath = "config.toml"
	DefaultOutputPath = "" // empty means the target's conventional location
	DefaultTarget     = "rust"
	DefaultStrict     = false

	// Logging defaults
	DefaultLogLevel  = "info"
	DefaultLogFormat = "text"

	// History defaults
	DefaultHistoryEnabled       = true
	DefaultHistoryPath          = ".confgen/history.db"
	DefaultHistoryRetentionDays = 90
	DefaultHistoryMaxRecords    = int64(1000)

	// Watch defaults
	DefaultWatchDebounce      = 500 * time.Millisecond
	DefaultWatchMetricsAddr   = "" // disabled
	DefaultWatchPruneSchedule = "@daily"
)
