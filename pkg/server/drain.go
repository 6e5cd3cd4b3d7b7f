package server

import (
	"context"
	"time"
)

// InProgressCounter reports the number of requests in progress.
type InProgressCounter interface {
	RestRequestsInProgress() int64
}

// WaitForDrain blocks until counter reports no requests in progress or ctx
// is done, checking every interval. It returns ctx.Err() on timeout.
// A count below zero also ends the wait.
func WaitForDrain(ctx context.Context, counter InProgressCounter, interval time.Duration) error {
	if interval <= 0 {
		interval = 100 * time.Millisecond
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		if counter.RestRequestsInProgress() <= 0 {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}
