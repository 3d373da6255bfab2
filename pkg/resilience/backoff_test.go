package resilience

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExponentialBackoff_NextDelay(t *testing.T) {
	backoff := &ExponentialBackoff{
		BaseDelay:  100 * time.Millisecond,
		MaxDelay:   10 * time.Second,
		Multiplier: 2.0,
		Jitter:     0.0,
	}

	tests := []struct {
		attempt  int
		expected time.Duration
	}{
		{0, 100 * time.Millisecond},
		{1, 200 * time.Millisecond},
		{2, 400 * time.Millisecond},
		{5, 3200 * time.Millisecond},
		{7, 10 * time.Second},
		{10, 10 * time.Second},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, backoff.NextDelay(tt.attempt),
			"attempt %d", tt.attempt)
	}
}

func TestExponentialBackoff_Jitter(t *testing.T) {
	backoff := &ExponentialBackoff{
		BaseDelay:  100 * time.Millisecond,
		MaxDelay:   10 * time.Second,
		Multiplier: 2.0,
		Jitter:     0.1,
	}

	// attempt 3 is nominally 800ms; jitter keeps it within ±10%
	nominal := float64(800 * time.Millisecond)
	low := time.Duration(nominal * 0.9)
	high := time.Duration(nominal * 1.1)

	varied := false
	first := backoff.NextDelay(3)
	for i := 0; i < 100; i++ {
		d := backoff.NextDelay(3)
		require.GreaterOrEqual(t, d, low)
		require.LessOrEqual(t, d, high)
		if d != first {
			varied = true
		}
	}
	assert.True(t, varied, "jitter should produce varying delays")
}

func TestExponentialBackoff_NegativeAttempt(t *testing.T) {
	backoff := DefaultExponentialBackoff()
	assert.Equal(t, backoff.BaseDelay, backoff.NextDelay(-1))
}

func TestRetry_SucceedsAfterFailures(t *testing.T) {
	backoff := &ExponentialBackoff{
		BaseDelay:  time.Millisecond,
		MaxDelay:   time.Millisecond,
		Multiplier: 1.0,
	}

	calls := 0
	err := Retry(context.Background(), 5, backoff, func(context.Context) error {
		calls++
		if calls < 3 {
			return errors.New("not yet")
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestRetry_ExhaustsAttempts(t *testing.T) {
	backoff := &ExponentialBackoff{
		BaseDelay:  time.Millisecond,
		MaxDelay:   time.Millisecond,
		Multiplier: 1.0,
	}

	wantErr := errors.New("still down")
	calls := 0
	err := Retry(context.Background(), 3, backoff, func(context.Context) error {
		calls++
		return wantErr
	})

	assert.ErrorIs(t, err, wantErr)
	assert.Equal(t, 3, calls)
}

func TestRetry_StopsOnCancel(t *testing.T) {
	backoff := &ExponentialBackoff{
		BaseDelay:  time.Hour,
		MaxDelay:   time.Hour,
		Multiplier: 1.0,
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Retry(ctx, 5, backoff, func(context.Context) error {
		return errors.New("down")
	})

	assert.ErrorIs(t, err, context.Canceled)
}
