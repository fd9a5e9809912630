package watch

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"

	"rustrial-os/confgen/pkg/compiler"
)

const watchDocument = `[memory]
heap_size = "4MB"
dma_size = "2MB"
stack_size = "64KB"

[network]
buffer_size = 4096
rx_buffers = 512
tx_buffers = 128

[display]
width = 132
height = 50
default_color = "White"
default_bg = "Blue"

[build]
version = "0.2.0"
target = "aarch64-rustrial_os"
`

// watchFixture prepares a document and a watcher feeding results into
// the returned channel.
func watchFixture(t *testing.T) (string, string, *Watcher, chan *compiler.Result, chan error) {
	t.Helper()

	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.toml")
	outputPath := filepath.Join(dir, "config.rs")
	if err := os.WriteFile(configPath, []byte(watchDocument), 0644); err != nil {
		t.Fatal(err)
	}

	results := make(chan *compiler.Result, 10)
	failures := make(chan error, 10)

	comp := compiler.New(nil)
	w, err := New(comp, compiler.Request{
		ConfigPath:     configPath,
		ConfigRequired: true,
		Output:         outputPath,
	}, &Config{
		DebounceInterval: 50 * time.Millisecond,
		OnResult: func(res *compiler.Result, err error) {
			if err != nil {
				failures <- err
				return
			}
			results <- res
		},
	})
	if err != nil {
		t.Fatal(err)
	}

	return configPath, outputPath, w, results, failures
}

func awaitResult(t *testing.T, results chan *compiler.Result) *compiler.Result {
	t.Helper()

	select {
	case res := <-results:
		return res
	case <-time.After(3 * time.Second):
		t.Fatal("no compile result before timeout")
		return nil
	}
}

func TestNew_RequiresPath(t *testing.T) {
	if _, err := New(compiler.New(nil), compiler.Request{}, nil); err == nil {
		t.Error("New() accepted an empty document path")
	}
}

func TestWatcher_RecompilesOnChange(t *testing.T) {
	configPath, outputPath, w, results, _ := watchFixture(t)
	defer func() { _ = w.Stop() }()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		_ = w.Run(ctx)
	}()

	// Initial compile fires before any file event
	first := awaitResult(t, results)
	if first.Config.Memory.HeapSize != 4*1024*1024 {
		t.Errorf("initial heap size = %d, want 4MB", first.Config.Memory.HeapSize)
	}

	// Give the directory watch time to arm
	time.Sleep(100 * time.Millisecond)

	changed := strings.Replace(watchDocument, `heap_size = "4MB"`, `heap_size = "8MB"`, 1)
	if err := os.WriteFile(configPath, []byte(changed), 0644); err != nil {
		t.Fatal(err)
	}

	second := awaitResult(t, results)
	if second.Config.Memory.HeapSize != 8*1024*1024 {
		t.Errorf("recompiled heap size = %d, want 8MB", second.Config.Memory.HeapSize)
	}

	written, err := os.ReadFile(outputPath)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	if !strings.Contains(string(written), "pub const HEAP_SIZE: usize = 8388608;") {
		t.Error("output file does not carry the new heap size")
	}
}

func TestWatcher_SurvivesBrokenEdit(t *testing.T) {
	configPath, outputPath, w, results, failures := watchFixture(t)
	defer func() { _ = w.Stop() }()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		_ = w.Run(ctx)
	}()

	awaitResult(t, results)
	goodOutput, err := os.ReadFile(outputPath)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}

	time.Sleep(100 * time.Millisecond)

	broken := strings.Replace(watchDocument, `heap_size = "4MB"`, `heap_size = "lots"`, 1)
	if err := os.WriteFile(configPath, []byte(broken), 0644); err != nil {
		t.Fatal(err)
	}

	select {
	case <-failures:
	case <-time.After(3 * time.Second):
		t.Fatal("broken edit produced no failure result")
	}

	// The previous output survives a failed run
	after, err := os.ReadFile(outputPath)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	if string(after) != string(goodOutput) {
		t.Error("failed run modified the output file")
	}

	// A corrected document resumes generation
	if err := os.WriteFile(configPath, []byte(watchDocument), 0644); err != nil {
		t.Fatal(err)
	}
	awaitResult(t, results)
}

func TestWatcher_IgnoresSiblingFiles(t *testing.T) {
	configPath, _, w, results, _ := watchFixture(t)
	defer func() { _ = w.Stop() }()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		_ = w.Run(ctx)
	}()

	awaitResult(t, results)
	time.Sleep(100 * time.Millisecond)

	// Editor temp files land in the same directory
	sibling := filepath.Join(filepath.Dir(configPath), ".config.toml.swp")
	if err := os.WriteFile(sibling, []byte("swap"), 0644); err != nil {
		t.Fatal(err)
	}

	select {
	case <-results:
		t.Error("sibling file triggered a recompile")
	case <-time.After(300 * time.Millisecond):
	}
}

func TestWatcher_ShouldProcessEvent(t *testing.T) {
	w := &Watcher{req: compiler.Request{ConfigPath: "/etc/rustrial/config.toml"}}

	tests := []struct {
		name  string
		event fsnotify.Event
		want  bool
	}{
		{"write to document", fsnotify.Event{Name: "/etc/rustrial/config.toml", Op: fsnotify.Write}, true},
		{"rename of document", fsnotify.Event{Name: "/etc/rustrial/config.toml", Op: fsnotify.Rename}, true},
		{"create of document", fsnotify.Event{Name: "/etc/rustrial/config.toml", Op: fsnotify.Create}, true},
		{"chmod only", fsnotify.Event{Name: "/etc/rustrial/config.toml", Op: fsnotify.Chmod}, false},
		{"sibling file", fsnotify.Event{Name: "/etc/rustrial/other.toml", Op: fsnotify.Write}, false},
		{"editor swap file", fsnotify.Event{Name: "/etc/rustrial/.config.toml.swp", Op: fsnotify.Write}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := w.shouldProcessEvent(tt.event); got != tt.want {
				t.Errorf("shouldProcessEvent(%v) = %v, want %v", tt.event, got, tt.want)
			}
		})
	}
}

func TestWatcher_StopWithoutRun(t *testing.T) {
	_, _, w, _, _ := watchFixture(t)

	if err := w.Stop(); err != nil {
		t.Errorf("Stop() before Run() failed: %v", err)
	}
	if err := w.Stop(); err != nil {
		t.Errorf("second Stop() failed: %v", err)
	}
}

func TestDebouncer_CollapsesBurst(t *testing.T) {
	d := NewDebouncer(50 * time.Millisecond)
	defer d.Stop()

	var count atomic.Int32
	for i := 0; i < 5; i++ {
		d.Trigger(func() { count.Add(1) })
		time.Sleep(5 * time.Millisecond)
	}

	time.Sleep(150 * time.Millisecond)

	if got := count.Load(); got != 1 {
		t.Errorf("burst produced %d callbacks, want 1", got)
	}
}

func TestDebouncer_StopCancelsPending(t *testing.T) {
	d := NewDebouncer(50 * time.Millisecond)

	var count atomic.Int32
	d.Trigger(func() { count.Add(1) })
	d.Stop()

	time.Sleep(100 * time.Millisecond)

	if got := count.Load(); got != 0 {
		t.Errorf("stopped debouncer ran %d callbacks", got)
	}

	// Second Stop is a no-op
	d.Stop()
}
