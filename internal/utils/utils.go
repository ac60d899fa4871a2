package utils

import (
	"context"
	"time"
)

// WaitFor pauses between paged requests. It returns ctx.Err() if ctx ends
// first, and returns it immediately for a non-positive d.
func WaitFor(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
