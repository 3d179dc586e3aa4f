package pipeline

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"go-sheet-dashboard/internal/config"
	"go-sheet-dashboard/internal/logger"
)

// errNotRetryable marks a failure that must not be attempted again.
type errNotRetryable struct{ err error }

func (e errNotRetryable) Error() string { return e.err.Error() }
func (e errNotRetryable) Unwrap() error { return e.err }

func permanent(err error) error {
	if err == nil {
		return nil
	}
	return errNotRetryable{err: err}
}

// retryOperation runs op until it succeeds, returns a permanent error,
// exhausts policy.MaxAttempts, or ctx is done. Delays follow policy.GetRetryDelay.
func retryOperation(ctx context.Context, policy config.RetryPolicy, log *logger.Logger, op func(attempt int) error) error {
	attempts := policy.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		lastErr = op(attempt)
		if lastErr == nil {
			return nil
		}

		var perm errNotRetryable
		if errors.As(lastErr, &perm) {
			return perm.err
		}
		if !isRetryableError(lastErr) || attempt == attempts {
			break
		}

		delay := policy.GetRetryDelay(attempt)
		log.Debug("retrying fetch", "attempt", attempt, "max_attempts", attempts, "delay", delay, "error", lastErr)
		if err := sleepContext(ctx, delay); err != nil {
			return lastErr
		}
	}

	return lastErr
}

// isRetryableError checks whether a failed attempt is worth repeating.
func isRetryableError(err error) bool {
	if errors.Is(err, context.Canceled) {
		return false
	}

	var fe *FetchError
	if errors.As(err, &fe) && fe.StatusCode != 0 {
		return isRetryableStatus(fe.StatusCode)
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}

	return errors.Is(err, context.DeadlineExceeded) || errors.Is(err, errTransport)
}

// isRetryableStatus determines if we should retry based on HTTP status code.
func isRetryableStatus(statusCode int) bool {
	switch statusCode {
	case http.StatusRequestTimeout,
		http.StatusTooManyRequests,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	default:
		return false
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
