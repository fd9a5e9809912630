// Package watch regenerates configuration continuously while the source
// document changes on disk.
//
// # Behavior
//
// The watcher observes the document's parent directory rather than the
// file itself. Editors that save atomically replace the file by rename,
// which silently detaches a watch on the file; a directory watch keeps
// seeing the recreated file. Events are filtered to the document's name
// and debounced, so an editor's burst of writes triggers one recompile.
//
// A failed recompile is logged and counted but never stops the watcher.
// The previous output file survives untouched because the compiler
// writes atomically.
//
// # Usage
//
//	w, err := watch.New(comp, req, &watch.Config{
//	    DebounceInterval: 500 * time.Millisecond,
//	})
//	if err != nil {
//	    return err
//	}
//	defer w.Stop()
//	return w.Run(ctx)
//
// Run compiles once immediately, then blocks until ctx is cancelled.
// The optional metrics listener lives in Server, wired by the CLI.
package watch
