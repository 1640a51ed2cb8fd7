package retry

import (
	"context"
	"time"

	ai "github.com/keyurgolani/babynest-ai"
)

// Do executes the given function with retry logic.
// Transient failures are retried with exponential backoff; non-retryable
// failures propagate immediately without sleeping. A server-suggested
// retry delay (Retry-After, surfaced via ai.RetryAfterOf) raises the
// backoff wait when it exceeds the computed delay. On exhaustion the last
// error is returned as-is, unwrapped, so callers can still inspect the
// root cause. Backoff waits respect context cancellation.
func Do[T any](ctx context.Context, opts Options, fn func() (T, error)) (T, error) {
	var zero T

	classify := opts.IsRetryable
	if classify == nil {
		classify = DefaultClassifier
	}
	maxRetries := opts.MaxRetries
	if maxRetries < 0 {
		maxRetries = 0
	}

	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		result, err := fn()
		if err == nil {
			return result, nil
		}
		lastErr = err

		if !classify(err) {
			if opts.Logger != nil {
				opts.Logger.Warn("non-retryable error",
					"operation", opts.OperationName,
					"attempt", attempt+1,
					"error", err)
			}
			return zero, err
		}

		// Don't sleep after the last attempt
		if attempt == maxRetries {
			break
		}

		delay := opts.Delay(attempt)
		if ra := ai.RetryAfterOf(err); ra > delay {
			delay = ra
		}
		if opts.Logger != nil {
			opts.Logger.Warn("transient error, retrying",
				"operation", opts.OperationName,
				"attempt", attempt+1,
				"max_attempts", maxRetries+1,
				"delay", delay,
				"error", err)
		}

		// Respect context cancellation during sleep
		select {
		case <-ctx.Done():
			return zero, ctx.Err()
		case <-time.After(delay):
			// Continue to next attempt
		}
	}

	if opts.Logger != nil {
		opts.Logger.Error("retries exhausted",
			"operation", opts.OperationName,
			"attempts", maxRetries+1,
			"error", lastErr)
	}
	return zero, lastErr
}

// Wrap returns fn with retry behavior pre-applied, for call sites that
// want a transparently retrying operation instead of inlining Do.
func Wrap[T any](opts Options, fn func(context.Context) (T, error)) func(context.Context) (T, error) {
	return func(ctx context.Context) (T, error) {
		return Do(ctx, opts, func() (T, error) {
			return fn(ctx)
		})
	}
}
