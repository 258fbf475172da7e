package util

import (
	"context"
	"fmt"
	"time"
)

// RetryPolicy retries a call with exponential backoff. the delay starts at
// BaseDelay and doubles after each failed attempt. errors that Retryable
// rejects end the loop right away
type RetryPolicy struct {
	MaxAttempts int
	BaseDelay   time.Duration
	Retryable   func(error) bool
	// Sleep is swapped out in tests so nothing waits on the wall clock
	Sleep func(ctx context.Context, d time.Duration) error
}

func NewRetryPolicy(maxAttempts int, baseDelay time.Duration, retryable func(error) bool) RetryPolicy {
	return RetryPolicy{
		MaxAttempts: maxAttempts,
		BaseDelay:   baseDelay,
		Retryable:   retryable,
		Sleep:       SleepContext,
	}
}

func SleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
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

type RetryAttempt struct {
	Attempt int
	Err     error
	Delay   time.Duration
}

// Do runs fn until it succeeds, returns a non-retryable error, or runs out
// of attempts. onFailure (optional) sees every failed attempt
func (p RetryPolicy) Do(ctx context.Context, fn func() error, onFailure func(RetryAttempt)) error {
	maxAttempts := p.MaxAttempts
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	sleep := p.Sleep
	if sleep == nil {
		sleep = SleepContext
	}

	delay := p.BaseDelay
	var err error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		err = fn()
		if err == nil {
			return nil
		}

		retryable := p.Retryable == nil || p.Retryable(err)
		last := attempt == maxAttempts || !retryable
		if onFailure != nil {
			wait := delay
			if last {
				wait = 0
			}
			onFailure(RetryAttempt{Attempt: attempt, Err: err, Delay: wait})
		}
		if !retryable {
			return err
		}
		if last {
			break
		}

		if sleepErr := sleep(ctx, delay); sleepErr != nil {
			return fmt.Errorf("retry interrupted after attempt %d: %w", attempt, sleepErr)
		}
		delay *= 2
	}

	return fmt.Errorf("gave up after %d attempts: %w", maxAttempts, err)
}
