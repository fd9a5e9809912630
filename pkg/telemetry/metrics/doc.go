// Package metrics provides Prometheus metrics for generation runs.
//
// # Metrics
//
//   - confgen_generations_total: generation run count by status
//   - confgen_generation_duration_seconds: generation duration histogram
//   - confgen_last_generation_timestamp_seconds: most recent run time
//   - confgen_watch_events_total: watch-mode file events by operation
//
// # Usage
//
//	collector := metrics.NewCollector(nil, nil)
//	collector.ObserveGeneration("success", 3*time.Millisecond, time.Now())
//
//	http.Handle("/metrics", collector.Handler())
//
// The collector owns a private registry, so repeated construction in
// tests never trips duplicate registration. A nil *Collector is valid
// and records nothing, which is how one-shot runs without a metrics
// listener operate.
package metrics
