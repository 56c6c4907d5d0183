// Package retry provides the exponential backoff used for per-domain
// registrar attempts.
package retry

import (
	"context"
	"errors"
	"fmt"
	"time"
)

var (
	// ErrRetriesExhausted is returned when every allowed attempt failed.
	ErrRetriesExhausted = errors.New("retries exhausted")

	// ErrContextCancelled is returned when the context ends during a backoff wait.
	ErrContextCancelled = errors.New("context cancelled during retry")
)

// Config configures retry behavior.
type Config struct {
	// MaxRetries is the number of additional attempts after the first one.
	MaxRetries int
	// BackoffBase is the base delay; retry n waits BackoffBase * 2^n.
	BackoffBase time.Duration
	// IsRetryable decides whether an error is worth another attempt.
	// A nil hook retries everything.
	IsRetryable func(error) bool
}

// Do runs fn up to 1+MaxRetries times with exponential backoff between
// attempts. Non-retryable errors are returned immediately. When every
// attempt fails, the last error is returned wrapped in ErrRetriesExhausted.
func Do(ctx context.Context, cfg Config, fn func() error) error {
	var lastErr error

	for attempt := 0; attempt <= cfg.MaxRetries; attempt++ {
		if attempt > 0 {
			delay := cfg.BackoffBase << (attempt - 1)
			select {
			case <-ctx.Done():
				return fmt.Errorf("%w: %v", ErrContextCancelled, ctx.Err())
			case <-time.After(delay):
			}
		}

		err := fn()
		if err == nil {
			return nil
		}
		lastErr = err

		if cfg.IsRetryable != nil && !cfg.IsRetryable(err) {
			return err
		}
	}

	return fmt.Errorf("%w after %d attempts: %w", ErrRetriesExhausted, cfg.MaxRetries+1, lastErr)
}
