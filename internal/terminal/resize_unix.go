//go:build unix

package terminal

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

// ResizeEvents delivers a value each time the terminal is resized, until ctx
// is done. Bursts of signals collapse into one pending event.
func ResizeEvents(ctx context.Context) <-chan struct{} {
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGWINCH)

	events := make(chan struct{}, 1)
	go func() {
		defer signal.Stop(sig)
		for {
			select {
			case <-ctx.Done():
				return
			case <-sig:
				select {
				case events <- struct{}{}:
				default:
				}
			}
		}
	}()
	return events
}
