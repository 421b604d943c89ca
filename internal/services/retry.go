package services

import (
	"context"
	"time"
)

const (
	DefaultImageMaxAttempts = 3
	DefaultImageRetryDelay  = 5 * time.Second
)

// SleepFunc blocks for d or until ctx is done.
type SleepFunc func(ctx context.Context, d time.Duration) error

// RetryPolicy is a fixed-delay policy: transient failures are retried after
// Delay until MaxAttempts is reached, everything else fails at once.
type RetryPolicy struct {
	MaxAttempts int
	Delay       time.Duration
	Sleep       SleepFunc
}

func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts: DefaultImageMaxAttempts,
		Delay:       DefaultImageRetryDelay,
		Sleep:       SleepContext,
	}
}

func SleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Do runs op under the policy and returns its last error.
func (p RetryPolicy) Do(ctx context.Context, op func(ctx context.Context, attempt int) error) error {
	attempts := p.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}
	sleep := p.Sleep
	if sleep == nil {
		sleep = SleepContext
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		lastErr = op(ctx, attempt)
		if lastErr == nil {
			return nil
		}
		if !IsTransient(lastErr) || attempt == attempts {
			return lastErr
		}
		if err := sleep(ctx, p.Delay); err != nil {
			return err
		}
	}
	return lastErr
}
