package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

// newSignalContext cancels its context on the first SIGINT/SIGTERM, so
// Ctrl-C propagates through a blocking --watch loop instead of being
// handled only by the default terminal behavior.
func newSignalContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		select {
		case <-sigCh:
			cancel()
		case <-ctx.Done():
		}
		signal.Stop(sigCh)
	}()
	return ctx, cancel
}
