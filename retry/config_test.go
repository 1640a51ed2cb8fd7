package retry

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDefaultOptions(t *testing.T) {
	opts := DefaultOptions()

	assert.Equal(t, 3, opts.MaxRetries)
	assert.Equal(t, 100*time.Millisecond, opts.BaseDelay)
	assert.Equal(t, 5*time.Second, opts.MaxDelay)
	assert.True(t, opts.Jitter)
	assert.Nil(t, opts.IsRetryable)
}

func TestDisabled(t *testing.T) {
	opts := Disabled()
	assert.Zero(t, opts.MaxRetries)
}

func TestDelayExponentialGrowth(t *testing.T) {
	opts := Options{
		BaseDelay: 100 * time.Millisecond,
		MaxDelay:  5 * time.Second,
		Jitter:    false,
	}

	tests := []struct {
		attempt  int
		expected time.Duration
	}{
		{0, 100 * time.Millisecond},
		{1, 200 * time.Millisecond},
		{2, 400 * time.Millisecond},
		{3, 800 * time.Millisecond},
		{4, 1600 * time.Millisecond},
		{5, 3200 * time.Millisecond},
		{6, 5 * time.Second}, // capped
		{7, 5 * time.Second}, // stays capped
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, opts.Delay(tt.attempt), "attempt %d", tt.attempt)
	}
}

func TestDelayNegativeAttemptClamped(t *testing.T) {
	opts := Options{BaseDelay: 100 * time.Millisecond, MaxDelay: time.Second}
	assert.Equal(t, opts.Delay(0), opts.Delay(-1))
}

func TestDelaySubMillisecondBase(t *testing.T) {
	opts := Options{BaseDelay: 500 * time.Microsecond, MaxDelay: time.Second}

	// The first delay floors below one millisecond, but doubling still
	// compounds from the real base instead of collapsing to zero.
	assert.Equal(t, time.Duration(0), opts.Delay(0))
	assert.Equal(t, time.Millisecond, opts.Delay(1))
	assert.Equal(t, 2*time.Millisecond, opts.Delay(2))
	assert.Equal(t, 8*time.Millisecond, opts.Delay(4))
}

func TestDelayZeroValuesUseDefaults(t *testing.T) {
	var opts Options
	assert.Equal(t, DefaultBaseDelay, opts.Delay(0))
	// 100ms * 2^10 would be ~102s without the default cap.
	assert.Equal(t, DefaultMaxDelay, opts.Delay(10))
}

func TestDelayJitterBounds(t *testing.T) {
	opts := Options{
		BaseDelay: 100 * time.Millisecond,
		MaxDelay:  5 * time.Second,
		Jitter:    true,
	}

	for range 100 {
		d := opts.Delay(2)
		assert.GreaterOrEqual(t, d, 400*time.Millisecond)
		assert.Less(t, d, 600*time.Millisecond, "jitter adds at most 50%")
	}
}

func TestDelayJitterAppliedAfterCap(t *testing.T) {
	opts := Options{
		BaseDelay: 100 * time.Millisecond,
		MaxDelay:  time.Second,
		Jitter:    true,
	}

	// Attempt 10 is far past the cap; jitter is computed from the capped
	// value, so the result stays within [1s, 1.5s).
	for range 100 {
		d := opts.Delay(10)
		assert.GreaterOrEqual(t, d, time.Second)
		assert.Less(t, d, 1500*time.Millisecond)
	}
}

func TestDelayWholeMilliseconds(t *testing.T) {
	opts := Options{
		BaseDelay: 100 * time.Millisecond,
		MaxDelay:  5 * time.Second,
		Jitter:    true,
	}

	for range 20 {
		d := opts.Delay(3)
		assert.Zero(t, d%time.Millisecond, "delays are floored to whole milliseconds")
	}
}
