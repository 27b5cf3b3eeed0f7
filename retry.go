package qcircuit

import (
	"context"
	"math"
	"time"
)

// RetryPolicy defines how often and how patiently a remote job is polled
type RetryPolicy struct {
	MaxAttempts int
	Strategy    RetryStrategy
}

// RetryStrategy defines the interface for retry behavior
type RetryStrategy interface {
	NextDelay(attempt int) time.Duration
}

// ExponentialBackoff implements RetryStrategy, doubling from Initial up to Max
type ExponentialBackoff struct {
	Initial time.Duration
	Max     time.Duration
}

func (eb *ExponentialBackoff) NextDelay(attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	delay := float64(eb.Initial) * math.Pow(2, float64(attempt-1))
	if eb.Max > 0 && delay >= float64(eb.Max) {
		return eb.Max
	}
	if delay >= math.MaxInt64 {
		return time.Duration(math.MaxInt64)
	}
	return time.Duration(delay)
}

// Wait sleeps for the delay of the given attempt or until ctx is done.
func (rp *RetryPolicy) Wait(ctx context.Context, attempt int) error {
	timer := time.NewTimer(rp.Strategy.NextDelay(attempt))
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
