// Package retry provides a generic backoff-and-retry executor for
// fallible operations: AI backend calls, database access, or any other
// function that can fail transiently.
package retry

import (
	"log/slog"
	"math"
	"math/rand"
	"time"
)

// Default option values, applied by DefaultOptions and wherever an
// Options field is left at its zero value.
const (
	DefaultMaxRetries = 3
	DefaultBaseDelay  = 100 * time.Millisecond
	DefaultMaxDelay   = 5 * time.Second
)

// Options holds retry configuration for one logical operation.
type Options struct {
	// MaxRetries is the number of retries after the initial attempt.
	// Total attempts = MaxRetries + 1. Zero means a single attempt.
	MaxRetries int

	// BaseDelay is the backoff delay before the first retry
	// (default: 100ms).
	BaseDelay time.Duration

	// MaxDelay caps the exponential backoff (default: 5s). Jitter is
	// added after the cap, so an individual delay may exceed MaxDelay
	// by up to 50%.
	MaxDelay time.Duration

	// Jitter adds a uniform random amount in [0, delay/2) to each
	// backoff delay to avoid synchronized retry storms.
	Jitter bool

	// IsRetryable classifies errors. Nil means DefaultClassifier.
	IsRetryable func(error) bool

	// OperationName labels log lines emitted for this operation.
	OperationName string

	// Logger receives one structured line per failed attempt.
	// Nil disables logging; the engine owns no logger of its own.
	Logger *slog.Logger
}

// DefaultOptions returns the default retry configuration.
//   - 3 retries (4 attempts total)
//   - 100ms base delay
//   - 5 second max delay
//   - jitter enabled
//   - DefaultClassifier for retryability
func DefaultOptions() Options {
	return Options{
		MaxRetries: DefaultMaxRetries,
		BaseDelay:  DefaultBaseDelay,
		MaxDelay:   DefaultMaxDelay,
		Jitter:     true,
	}
}

// Disabled returns a configuration that disables retries (single attempt).
func Disabled() Options {
	return Options{}
}

// Delay calculates the backoff delay for a given attempt number (0-indexed).
// Formula: min(BaseDelay * 2^attempt, MaxDelay), plus uniform random jitter
// in [0, delay/2) when enabled, floored to whole milliseconds.
func (o Options) Delay(attempt int) time.Duration {
	if attempt < 0 {
		attempt = 0
	}
	base := o.BaseDelay
	if base <= 0 {
		base = DefaultBaseDelay
	}
	maxDelay := o.MaxDelay
	if maxDelay <= 0 {
		maxDelay = DefaultMaxDelay
	}

	d := float64(base) * math.Pow(2, float64(attempt))
	if limit := float64(maxDelay); d > limit {
		d = limit
	}
	if o.Jitter {
		d += rand.Float64() * d * 0.5
	}
	return time.Duration(math.Floor(d/float64(time.Millisecond))) * time.Millisecond
}
