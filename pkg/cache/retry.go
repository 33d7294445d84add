package cache

import (
	"context"
	"errors"
	"time"
)

// ErrNetwork marks transient ephemeris service failures: connection
// errors, timeouts, and 5xx responses. Wrapping a fetch error in
// Retryable tells RetryWithBackoff the attempt is worth repeating.
var ErrNetwork = errors.New("network error")

const (
	retryAttempts     = 3
	retryInitialDelay = time.Second
)

// RetryableError wraps a transient error so callers can distinguish it
// from permanent failures like a missing chart moment.
type RetryableError struct {
	Err error
}

func (e *RetryableError) Error() string {
	return e.Err.Error()
}

func (e *RetryableError) Unwrap() error {
	return e.Err
}

// Retryable marks an error as transient.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return &RetryableError{Err: err}
}

// IsRetryable reports whether err is marked transient.
func IsRetryable(err error) bool {
	var re *RetryableError
	return errors.As(err, &re)
}

// RetryWithBackoff runs fn up to retryAttempts times, doubling the delay
// between attempts. Permanent errors and context cancellation stop the
// loop immediately; only errors marked with Retryable are repeated.
func RetryWithBackoff(ctx context.Context, fn func() error) error {
	var lastErr error
	delay := retryInitialDelay

	for attempt := 0; attempt < retryAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		lastErr = fn()
		if lastErr == nil {
			return nil
		}
		if !IsRetryable(lastErr) {
			return lastErr
		}

		if attempt < retryAttempts-1 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
				delay *= 2
			}
		}
	}

	return lastErr
}
