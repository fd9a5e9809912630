package compiler

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"rustrial-os/confgen/pkg/history"
	"rustrial-os/confgen/pkg/history/recorder"
	"rustrial-os/confgen/pkg/osconf"
	"rustrial-os/confgen/pkg/render"
)

// MetricsObserver receives run outcomes. The telemetry collector
// satisfies this interface; a nil observer disables metrics.
type MetricsObserver interface {
	ObserveGeneration(status string, duration time.Duration, at time.Time)
}

// Config contains configuration for the Compiler.
type Config struct {
	// Clock supplies timestamps for output headers and run records.
	// Default: time.Now
	Clock func() time.Time

	// ToolVersion is embedded in output headers and run records.
	ToolVersion string

	// Recorder appends run records to the history ledger.
	// A nil recorder disables history.
	Recorder *recorder.Recorder

	// Metrics observes run outcomes. Optional.
	Metrics MetricsObserver
}

// Request describes a single generation run.
type Request struct {
	// ConfigPath is the source document path.
	// Empty means generate from built-in defaults.
	ConfigPath string

	// ConfigRequired makes a missing ConfigPath an error instead of a
	// fall back to built-in defaults. Set when the user named the path
	// explicitly rather than relying on the conventional location.
	ConfigRequired bool

	// Output is the destination path. Empty means the target's
	// conventional location.
	Output string

	// Target selects the output language. Empty means rust.
	Target render.Target

	// Strict rejects unknown document sections and fields.
	Strict bool
}

// Compiler runs the load, validate, render, write pipeline.
type Compiler struct {
	clock       func() time.Time
	toolVersion string
	recorder    *recorder.Recorder
	metrics     MetricsObserver
	logger      *slog.Logger
}

// New creates a Compiler. A nil config uses defaults.
func New(config *Config) *Compiler {
	if config == nil {
		config = &Config{}
	}

	clock := config.Clock
	if clock == nil {
		clock = time.Now
	}

	return &Compiler{
		clock:       clock,
		toolVersion: config.ToolVersion,
		recorder:    config.Recorder,
		metrics:     config.Metrics,
		logger:      slog.Default().With("component", "compiler"),
	}
}

// Compile runs the full pipeline and writes the output file. The write
// is atomic: on any failure the previous output file survives unchanged.
func (c *Compiler) Compile(ctx context.Context, req Request) (*Result, error) {
	start := c.clock()

	res, err := c.renderResult(req, start)
	if err == nil {
		res.OutputPath = req.Output
		if res.OutputPath == "" {
			res.OutputPath = render.DefaultOutputPath(res.Target)
		}
		err = writeFileAtomic(res.OutputPath, res.Bytes)
	}

	c.finish(ctx, req, res, start, err)
	if err != nil {
		return nil, err
	}

	c.logger.Info("configuration generated",
		"output", res.OutputPath,
		"target", string(res.Target),
		"fields", res.RenderedFields(),
		"defaults", res.UsedDefaults,
	)

	return res, nil
}

// Render runs the pipeline up to rendering and returns the output bytes
// without writing them. Used for stdout runs; the run is still recorded,
// with an empty output path.
func (c *Compiler) Render(ctx context.Context, req Request) (*Result, error) {
	start := c.clock()

	res, err := c.renderResult(req, start)

	c.finish(ctx, req, res, start, err)
	if err != nil {
		return nil, err
	}
	return res, nil
}

// Check loads and validates without rendering or writing. Nothing is
// recorded in the history ledger.
func (c *Compiler) Check(req Request) (*Result, error) {
	start := c.clock()

	res, err := c.resolve(req)
	if err != nil {
		return nil, err
	}
	res.Duration = c.clock().Sub(start)

	return res, nil
}

// renderResult resolves the document and renders it.
func (c *Compiler) renderResult(req Request, start time.Time) (*Result, error) {
	res, err := c.resolve(req)
	if err != nil {
		return nil, err
	}

	text, err := render.Render(res.Config, res.Target, render.Metadata{
		GeneratedAt: start,
		ToolVersion: c.toolVersion,
	})
	if err != nil {
		return nil, err
	}
	res.Bytes = []byte(text)

	return res, nil
}

// resolve loads the source document and validates it against the schema.
func (c *Compiler) resolve(req Request) (*Result, error) {
	res := &Result{Target: effectiveTarget(req.Target)}

	doc, usedDefaults, err := c.loadDocument(req)
	if err != nil {
		return nil, err
	}
	res.Document = doc
	res.UsedDefaults = usedDefaults

	cfg, err := osconf.ValidateStrict(doc, req.Strict)
	if err != nil {
		return nil, err
	}
	res.Config = cfg

	return res, nil
}

// loadDocument reads the document named by the request. With no path at
// all, or with a conventional path that does not exist, the built-in
// defaults stand in; an explicitly demanded path must exist.
func (c *Compiler) loadDocument(req Request) (*osconf.Document, bool, error) {
	if req.ConfigPath == "" {
		return osconf.DefaultDocument(), true, nil
	}

	doc, err := osconf.Load(req.ConfigPath)
	if err == nil {
		return doc, false, nil
	}

	if errors.Is(err, fs.ErrNotExist) && !req.ConfigRequired {
		c.logger.Info("no configuration file found, using defaults",
			"path", req.ConfigPath,
		)
		return osconf.DefaultDocument(), true, nil
	}

	return nil, false, err
}

// finish closes out a run: fixes the duration, feeds metrics, and
// appends a run record. History failures never fail the run itself.
func (c *Compiler) finish(ctx context.Context, req Request, res *Result, start time.Time, runErr error) {
	duration := c.clock().Sub(start)
	if res != nil {
		res.Duration = duration
	}

	status := history.StatusSuccess
	if runErr != nil {
		status = history.StatusFailure
	}

	if c.metrics != nil {
		c.metrics.ObserveGeneration(status, duration, start)
	}

	if !c.recorder.Enabled() {
		return
	}

	record := &history.Record{
		RunTime:     start,
		ConfigPath:  req.ConfigPath,
		Target:      string(effectiveTarget(req.Target)),
		Status:      status,
		Duration:    duration,
		ToolVersion: c.toolVersion,
	}
	if runErr != nil {
		record.Error = runErr.Error()
	}
	if res != nil {
		record.Fields = res.RenderedFields()
		if res.UsedDefaults {
			record.ConfigPath = ""
		}
		if runErr == nil {
			record.OutputPath = res.OutputPath
			record.OutputHash = history.HashContent(res.Bytes)
		}
	}
	if record.ConfigPath != "" {
		if hash, err := history.HashFile(record.ConfigPath); err == nil {
			record.ConfigHash = hash
		}
	}

	if err := c.recorder.Record(ctx, record); err != nil {
		c.logger.Warn("failed to record run", "error", err)
	} else if res != nil {
		res.RunID = record.ID
	}
}

// effectiveTarget applies the rust default.
func effectiveTarget(t render.Target) render.Target {
	if t == "" {
		return render.TargetRust
	}
	return t
}

// writeFileAtomic writes data to path through a temp file in the same
// directory, then renames it into place. The destination either keeps
// its previous content or holds the complete new content, never a mix.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return NewIOError("mkdir", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".confgen-*")
	if err != nil {
		return NewIOError("write", path, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return NewIOError("write", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return NewIOError("write", path, err)
	}

	// Temp files are created 0600
	if err := os.Chmod(tmpName, 0644); err != nil {
		os.Remove(tmpName)
		return NewIOError("write", path, err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return NewIOError("rename", path, err)
	}

	return nil
}
