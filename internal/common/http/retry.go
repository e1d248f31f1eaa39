package http

import (
	"context"
	"time"
)

// DefaultInitialBackoff is the delay before the first retry; each further
// retry doubles it.
const DefaultInitialBackoff = 100 * time.Millisecond

// Backoff returns the delay before retry number attempt (1-based).
func Backoff(initial time.Duration, attempt int) time.Duration {
	if attempt < 1 {
		return 0
	}
	return initial * time.Duration(1<<(attempt-1))
}

// DoWithRetry runs fn once plus up to maxRetries more times while retryable
// reports the returned error as transient. It stops early when ctx is done
// and then returns the last error from fn.
func DoWithRetry(ctx context.Context, maxRetries int, initial time.Duration, retryable func(error) bool, fn func(ctx context.Context, attempt int) error) error {
	if maxRetries < 0 {
		maxRetries = 0
	}
	if initial <= 0 {
		initial = DefaultInitialBackoff
	}

	var err error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			timer := time.NewTimer(Backoff(initial, attempt))
			select {
			case <-ctx.Done():
				timer.Stop()
				return err
			case <-timer.C:
			}
		}

		err = fn(ctx, attempt)
		if err == nil || !retryable(err) || ctx.Err() != nil {
			return err
		}
	}
	return err
}
