// Package health provides liveness and readiness endpoints for the
// watch-mode HTTP listener.
//
// # Endpoints
//
//   - /health: liveness probe, answers ok while the process runs
//   - /ready: readiness probe, runs the registered component checks
//   - /version: build information
//
// # Usage
//
//	checker := health.New(0)
//	checker.RegisterCheck("storage", func(ctx context.Context) error {
//	    _, err := store.Count(ctx, &history.Query{})
//	    return err
//	})
//
//	mux := http.NewServeMux()
//	health.Mount(mux, checker, version, commit, buildTime)
//
// Readiness reports "degraded" with a 503 as soon as any check fails,
// which surfaces a deleted document directory or an unreachable history
// database without killing the watcher.
package health
