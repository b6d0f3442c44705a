//go:build !unix

package terminal

import "context"

// ResizeEvents returns a channel that never fires: there is no resize signal
// on this platform.
func ResizeEvents(ctx context.Context) <-chan struct{} {
	return nil
}
