package cli

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watch re-runs run every time path is written to, until ctx is
// cancelled. Watching the containing directory rather than the file
// itself survives editors that write by rename-and-replace rather than
// in-place truncation.
func Watch(ctx context.Context, path string, diagnostics io.Writer, run func() error) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("wfi: failed to start watcher: %w", err)
	}
	defer watcher.Close()

	dir := filepath.Dir(path)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("wfi: failed to watch %s: %w", dir, err)
	}
	target := filepath.Clean(path)

	fmt.Fprintf(diagnostics, "watching %s for changes (ctrl-c to stop)\n", path)
	if err := run(); err != nil {
		FormatError(diagnostics, err, ShouldUseColor(false))
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			fmt.Fprintf(diagnostics, "\n--- %s changed, re-running ---\n", path)
			if err := run(); err != nil {
				FormatError(diagnostics, err, ShouldUseColor(false))
			}
		case watchErr, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(diagnostics, "watch error: %v\n", watchErr)
		}
	}
}

// NewInterruptContext returns a context cancelled on SIGINT/SIGTERM, so
// --watch's loop (and the process) exit cleanly on Ctrl-C.
func NewInterruptContext() (context.Context, context.CancelFunc) {
	return newSignalContext()
}
