// file: internal/sonarr/retry.go
package sonarr

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
)

const (
	baseRetryDelay = 1000 * time.Millisecond
	maxRetryDelay  = 10000 * time.Millisecond
)

// SleepFunc waits for d or until ctx is done, returning ctx.Err() in the latter case.
type SleepFunc func(ctx context.Context, d time.Duration) error

// RetryPolicy configures the retry executor.
type RetryPolicy struct {
	// MaxRetries is the number of extra attempts after the first one.
	MaxRetries int
	// Sleep waits between attempts. Defaults to a context-aware timer.
	Sleep SleepFunc
	// OnRetry, if set, is called before each backoff with the attempt about to run.
	OnRetry func(attempt int, delay time.Duration, err error)
}

// backoffDelay returns the wait before retry attempt k (k >= 1):
// 1s, 2s, 4s, 8s, then capped at 10s.
func backoffDelay(k int) time.Duration {
	if k < 1 {
		return 0
	}
	if k > 5 {
		return maxRetryDelay
	}
	d := baseRetryDelay << (k - 1)
	if d > maxRetryDelay {
		return maxRetryDelay
	}
	return d
}

// IsRetryable reports whether err is worth another attempt. Failures without a
// status code and 5xx responses are retryable; 4xx responses never are.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Retryable()
	}
	return !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded)
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Do runs op up to MaxRetries+1 times. Only retryable failures consume the budget;
// the last error is returned unchanged once the budget is spent.
func (p RetryPolicy) Do(ctx context.Context, op func(ctx context.Context) error) error {
	sleep := p.Sleep
	if sleep == nil {
		sleep = sleepContext
	}
	maxRetries := p.MaxRetries
	if maxRetries < 0 {
		maxRetries = 0
	}

	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			delay := backoffDelay(attempt)
			if p.OnRetry != nil {
				p.OnRetry(attempt, delay, lastErr)
			}
			if err := sleep(ctx, delay); err != nil {
				return err
			}
		}
		lastErr = op(ctx)
		if lastErr == nil {
			return nil
		}
		if !IsRetryable(lastErr) || ctx.Err() != nil {
			return lastErr
		}
	}
	return lastErr
}

// Retry runs op with the given retry budget and the default backoff.
func Retry(ctx context.Context, maxRetries int, op func(ctx context.Context) error) error {
	return RetryPolicy{MaxRetries: maxRetries}.Do(ctx, op)
}

// RetryValue is Retry for operations that produce a value.
func RetryValue[T any](ctx context.Context, p RetryPolicy, op func(ctx context.Context) (T, error)) (T, error) {
	var result T
	err := p.Do(ctx, func(ctx context.Context) error {
		v, err := op(ctx)
		if err != nil {
			return err
		}
		result = v
		return nil
	})
	return result, err
}
