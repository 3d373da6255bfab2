// Package resilience provides retry with exponential backoff, used at
// startup to wait out a database that comes up after the service does.
package resilience

import (
	"context"
	"math"
	"math/rand"
	"time"
)

// ExponentialBackoff produces exponentially growing delays with jitter.
// Jitter spreads simultaneous retriers so they do not reconnect in lockstep.
type ExponentialBackoff struct {
	BaseDelay  time.Duration
	MaxDelay   time.Duration
	Multiplier float64
	Jitter     float64
}

// DefaultExponentialBackoff returns 500ms doubling to a 10s cap, ±10% jitter
func DefaultExponentialBackoff() *ExponentialBackoff {
	return &ExponentialBackoff{
		BaseDelay:  500 * time.Millisecond,
		MaxDelay:   10 * time.Second,
		Multiplier: 2.0,
		Jitter:     0.1,
	}
}

// NextDelay returns the delay before the given 0-indexed attempt
func (b *ExponentialBackoff) NextDelay(attempt int) time.Duration {
	if attempt < 0 {
		return b.BaseDelay
	}

	delay := float64(b.BaseDelay) * math.Pow(b.Multiplier, float64(attempt))
	if delay > float64(b.MaxDelay) {
		delay = float64(b.MaxDelay)
	}

	jitter := (rand.Float64()*2 - 1) * delay * b.Jitter
	next := time.Duration(delay + jitter)
	if next < 0 {
		next = b.BaseDelay
	}
	return next
}

// Retry runs fn up to maxAttempts times, sleeping per the backoff between
// failures. It stops early when ctx is cancelled and returns the last error.
func Retry(ctx context.Context, maxAttempts int, backoff *ExponentialBackoff, fn func(context.Context) error) error {
	var err error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		if err = fn(ctx); err == nil {
			return nil
		}

		if attempt == maxAttempts-1 {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff.NextDelay(attempt)):
		}
	}
	return err
}
