package qtoken

import (
	"context"
	"math"
	"time"
)

// RetryPolicy defines retry behavior
type RetryPolicy struct {
	MaxAttempts int
	Strategy    RetryStrategy
	Filter      func(error) bool
}

// RetryStrategy defines the interface for retry behavior
type RetryStrategy interface {
	NextDelay(attempt int) time.Duration
}

// ExponentialBackoff implements RetryStrategy
type ExponentialBackoff struct {
	Initial time.Duration
}

func (eb *ExponentialBackoff) NextDelay(attempt int) time.Duration {
	return eb.Initial * time.Duration(math.Pow(2, float64(attempt-1)))
}

/*
Do calls fn until it succeeds, the policy runs out of attempts, the filter
rejects the error, or ctx is done. The last error is returned.
*/
func (rp *RetryPolicy) Do(ctx context.Context, fn func(attempt int) error) error {
	attempts := max(rp.MaxAttempts, 1)

	var err error

	for attempt := 1; attempt <= attempts; attempt++ {
		if err = fn(attempt); err == nil {
			return nil
		}

		if rp.Filter != nil && !rp.Filter(err) {
			return err
		}

		if attempt == attempts || rp.Strategy == nil {
			continue
		}

		timer := time.NewTimer(rp.Strategy.NextDelay(attempt))

		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}

	return err
}
