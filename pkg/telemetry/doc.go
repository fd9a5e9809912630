// Package telemetry provides observability for confgen.
//
// # Components
//
//   - logging: structured logging setup on log/slog
//   - metrics: Prometheus metrics for generation runs and watch mode
//   - health: liveness and readiness endpoints for watch mode
//
// # Usage
//
//	// Install the process logger
//	logger, err := logging.Setup(logging.Config{Level: "info", Format: "text"})
//
//	// Collect run metrics
//	collector := metrics.NewCollector(nil, nil)
//	collector.ObserveGeneration("success", 3*time.Millisecond, time.Now())
//
// One-shot commands carry only the logger. The metrics collector and
// health endpoints come up with the watch-mode HTTP listener, which is
// the only long-lived surface this tool has.
package telemetry
