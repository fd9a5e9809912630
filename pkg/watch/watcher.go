package watch

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"rustrial-os/confgen/pkg/compiler"
	"rustrial-os/confgen/pkg/telemetry/metrics"
)

// Config contains configuration for the Watcher.
type Config struct {
	// DebounceInterval is the quiet period between the last file event
	// and the recompile it triggers.
	// Default: 500ms
	DebounceInterval time.Duration

	// Metrics counts file events. Optional.
	Metrics *metrics.Collector

	// OnResult observes every run's outcome, including the initial
	// compile. Optional; the CLI uses it to print summary lines.
	OnResult func(*compiler.Result, error)
}

// Watcher recompiles the configuration whenever the source document
// changes.
type Watcher struct {
	compiler *compiler.Compiler
	req      compiler.Request
	config   *Config
	watcher  *fsnotify.Watcher
	debounce *Debouncer
	logger   *slog.Logger

	mu      sync.RWMutex
	running bool
	stopCh  chan struct{}
	doneCh  chan struct{}
}

// New creates a watcher for the document named by req.ConfigPath.
func New(comp *compiler.Compiler, req compiler.Request, config *Config) (*Watcher, error) {
	if req.ConfigPath == "" {
		return nil, fmt.Errorf("watch mode requires a document path")
	}
	if config == nil {
		config = &Config{}
	}
	if config.DebounceInterval <= 0 {
		config.DebounceInterval = 500 * time.Millisecond
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	return &Watcher{
		compiler: comp,
		req:      req,
		config:   config,
		watcher:  fsw,
		debounce: NewDebouncer(config.DebounceInterval),
		logger:   slog.Default().With("component", "watch"),
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}, nil
}

// Run compiles once, then blocks processing file events until the
// context is cancelled or Stop is called.
func (w *Watcher) Run(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return fmt.Errorf("watcher already running")
	}
	w.running = true
	w.mu.Unlock()

	defer func() {
		w.debounce.Stop()
		w.mu.Lock()
		w.running = false
		w.mu.Unlock()
		close(w.doneCh)
	}()

	// Watching the parent directory survives rename-style saves, which
	// replace the file node a direct watch would be pinned to.
	dir := filepath.Dir(w.req.ConfigPath)
	if err := w.watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	w.logger.Info("watching document",
		"path", w.req.ConfigPath,
		"debounce_ms", w.config.DebounceInterval.Milliseconds(),
	)

	w.runOnce(ctx)

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("watcher stopped", "reason", "context cancelled")
			return nil

		case <-w.stopCh:
			w.logger.Info("watcher stopped")
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}

			if !w.shouldProcessEvent(event) {
				continue
			}

			op := strings.ToLower(event.Op.String())
			w.logger.Debug("document event", "path", event.Name, "op", op)
			w.config.Metrics.RecordWatchEvent(op)

			w.debounce.Trigger(func() {
				w.runOnce(ctx)
			})

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}

			w.logger.Error("watcher error", "error", err)
			// Keep watching
		}
	}
}

// Stop ends a running Run and releases the file watcher.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	running := w.running
	w.mu.Unlock()

	if running {
		close(w.stopCh)
		<-w.doneCh
	}

	w.debounce.Stop()

	if err := w.watcher.Close(); err != nil {
		return fmt.Errorf("failed to close watcher: %w", err)
	}
	return nil
}

// runOnce runs one compile cycle. A failure is reported and counted but
// never stops the watcher; the previous output file stays in place.
func (w *Watcher) runOnce(ctx context.Context) {
	res, err := w.compiler.Compile(ctx, w.req)
	if err != nil {
		w.logger.Error("regeneration failed", "error", err)
	}

	if w.config.OnResult != nil {
		w.config.OnResult(res, err)
	}
}

// shouldProcessEvent keeps events that concern the watched document.
// The directory watch also reports sibling files, editor temp files
// among them.
func (w *Watcher) shouldProcessEvent(event fsnotify.Event) bool {
	if event.Op&fsnotify.Chmod == fsnotify.Chmod {
		return false
	}
	return filepath.Base(event.Name) == filepath.Base(w.req.ConfigPath)
}
