package retry

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/bitmap-indexer/pkg/logger"
	"github.com/gaze-network/bitmap-indexer/pkg/logger/slogx"
)

// BackoffFunc returns the delay to wait before the given attempt (1-based).
type BackoffFunc func(attempt int) time.Duration

// Fixed returns the same delay for every attempt.
func Fixed(delay time.Duration) BackoffFunc {
	return func(int) time.Duration {
		return delay
	}
}

// Policy retries an operation up to MaxAttempts times, waiting
// Backoff(attempt) between attempts.
type Policy struct {
	MaxAttempts int
	Backoff     BackoffFunc
}

// DefaultPolicy matches the historical fetch behavior: 3 attempts with a
// fixed 1s delay.
var DefaultPolicy = Policy{
	MaxAttempts: 3,
	Backoff:     Fixed(1 * time.Second),
}

type permanentError struct {
	err error
}

func (e permanentError) Error() string {
	return e.err.Error()
}

func (e permanentError) Unwrap() error {
	return e.err
}

// Permanent marks err as not retryable. Do returns it immediately without
// consuming further attempts.
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return permanentError{err: err}
}

// Do runs fn until it succeeds, attempts are exhausted, or ctx is done.
// The last error is returned with the attempt count attached.
func (p Policy) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	maxAttempts := p.MaxAttempts
	if maxAttempts < 1 {
		maxAttempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return errors.Wrap(err, "context done")
		}

		lastErr = fn(ctx)
		if lastErr == nil {
			return nil
		}

		var permanent permanentError
		if errors.As(lastErr, &permanent) {
			return permanent.err
		}

		if attempt == maxAttempts {
			break
		}

		logger.DebugContext(ctx, "Retrying operation",
			slogx.Error(lastErr),
			slogx.Int("attempt", attempt),
			slogx.Int("max_attempts", maxAttempts),
		)

		var delay time.Duration
		if p.Backoff != nil {
			delay = p.Backoff(attempt)
		}
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return errors.Wrap(ctx.Err(), "context done")
		}
	}
	return errors.Wrapf(lastErr, "gave up after %d attempts", maxAttempts)
}
