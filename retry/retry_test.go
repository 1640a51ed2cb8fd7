package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ai "github.com/keyurgolani/babynest-ai"
)

func TestDoSucceedsFirstAttempt(t *testing.T) {
	attempts := 0
	result, err := Do(context.Background(), DefaultOptions(), func() (string, error) {
		attempts++
		return "ok", nil
	})

	require.NoError(t, err)
	assert.Equal(t, "ok", result)
	assert.Equal(t, 1, attempts)
}

func TestDoRecoversFromTransientFailures(t *testing.T) {
	// Fails twice with transient errors, then succeeds on the third of
	// four allowed attempts.
	attempts := 0
	opts := Options{
		MaxRetries: 3,
		BaseDelay:  10 * time.Millisecond,
		MaxDelay:   100 * time.Millisecond,
	}

	start := time.Now()
	result, err := Do(context.Background(), opts, func() (string, error) {
		attempts++
		if attempts <= 2 {
			return "", ai.NewTransientError("overloaded", 503, nil)
		}
		return "recovered", nil
	})
	elapsed := time.Since(start)

	require.NoError(t, err)
	assert.Equal(t, "recovered", result)
	assert.Equal(t, 3, attempts)
	assert.GreaterOrEqual(t, elapsed, 30*time.Millisecond,
		"two backoff sleeps of 10ms and 20ms before the third attempt")
}

func TestDoHonorsServerRetryDelay(t *testing.T) {
	attempts := 0
	opts := Options{
		MaxRetries: 1,
		BaseDelay:  time.Millisecond,
		MaxDelay:   time.Millisecond,
	}

	start := time.Now()
	result, err := Do(context.Background(), opts, func() (string, error) {
		attempts++
		if attempts == 1 {
			return "", ai.NewTransientErrorWithRetry("rate limited", 429, 150*time.Millisecond, nil)
		}
		return "ok", nil
	})
	elapsed := time.Since(start)

	require.NoError(t, err)
	assert.Equal(t, "ok", result)
	assert.Equal(t, 2, attempts)
	assert.GreaterOrEqual(t, elapsed, 150*time.Millisecond,
		"a server-suggested delay outranks the configured backoff")
}

func TestDoServerRetryDelayBelowBackoff(t *testing.T) {
	attempts := 0
	opts := Options{
		MaxRetries: 1,
		BaseDelay:  40 * time.Millisecond,
		MaxDelay:   40 * time.Millisecond,
	}

	start := time.Now()
	_, err := Do(context.Background(), opts, func() (string, error) {
		attempts++
		if attempts == 1 {
			return "", ai.NewTransientErrorWithRetry("rate limited", 429, time.Millisecond, nil)
		}
		return "ok", nil
	})
	elapsed := time.Since(start)

	require.NoError(t, err)
	assert.GreaterOrEqual(t, elapsed, 40*time.Millisecond,
		"a shorter server suggestion never undercuts the configured backoff")
}

func TestDoStopsOnNonRetryableError(t *testing.T) {
	permanent := ai.NewPermanentError("invalid API key", 401, nil)
	attempts := 0
	opts := Options{
		MaxRetries: 3,
		// A long base delay would dominate the elapsed time if the engine
		// slept before propagating; it must not.
		BaseDelay: 2 * time.Second,
		MaxDelay:  2 * time.Second,
	}

	start := time.Now()
	_, err := Do(context.Background(), opts, func() (string, error) {
		attempts++
		return "", permanent
	})
	elapsed := time.Since(start)

	assert.Equal(t, permanent, err, "the classified error propagates as-is")
	assert.Equal(t, 1, attempts, "no retries for non-retryable errors")
	assert.Less(t, elapsed, 500*time.Millisecond, "no backoff sleep before propagating")
}

func TestDoExhaustsRetries(t *testing.T) {
	lastErr := ai.NewTransientError("still overloaded", 503, nil)
	attempts := 0
	opts := Options{
		MaxRetries: 3,
		BaseDelay:  time.Millisecond,
		MaxDelay:   2 * time.Millisecond,
	}

	_, err := Do(context.Background(), opts, func() (string, error) {
		attempts++
		return "", lastErr
	})

	assert.Equal(t, lastErr, err, "exhaustion returns the last error unwrapped")
	assert.Equal(t, 4, attempts, "MaxRetries=3 means 4 attempts total")
}

func TestDoZeroRetriesMeansSingleAttempt(t *testing.T) {
	attempts := 0
	_, err := Do(context.Background(), Disabled(), func() (int, error) {
		attempts++
		return 0, ai.NewTransientError("transient", 503, nil)
	})

	require.Error(t, err)
	assert.Equal(t, 1, attempts)
}

func TestDoNegativeRetriesTreatedAsZero(t *testing.T) {
	attempts := 0
	_, err := Do(context.Background(), Options{MaxRetries: -5}, func() (int, error) {
		attempts++
		return 0, ai.NewTransientError("transient", 503, nil)
	})

	require.Error(t, err)
	assert.Equal(t, 1, attempts)
}

func TestDoRespectsContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	opts := Options{
		MaxRetries: 3,
		BaseDelay:  10 * time.Second,
		MaxDelay:   10 * time.Second,
	}

	attempts := 0
	done := make(chan struct{})
	var err error
	go func() {
		defer close(done)
		_, err = Do(ctx, opts, func() (string, error) {
			attempts++
			return "", ai.NewTransientError("overloaded", 503, nil)
		})
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Do did not return after context cancellation")
	}

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, attempts, "cancellation during backoff prevents further attempts")
}

func TestDoCustomClassifier(t *testing.T) {
	sentinel := errors.New("retry me")
	attempts := 0
	opts := Options{
		MaxRetries:  2,
		BaseDelay:   time.Millisecond,
		MaxDelay:    time.Millisecond,
		IsRetryable: func(err error) bool { return errors.Is(err, sentinel) },
	}

	_, err := Do(context.Background(), opts, func() (int, error) {
		attempts++
		return 0, sentinel
	})

	assert.Equal(t, sentinel, err)
	assert.Equal(t, 3, attempts)

	// The same classifier rejects anything else on the first attempt.
	attempts = 0
	other := errors.New("connection refused") // would be retryable under DefaultClassifier
	_, err = Do(context.Background(), opts, func() (int, error) {
		attempts++
		return 0, other
	})

	assert.Equal(t, other, err)
	assert.Equal(t, 1, attempts)
}

func TestDoNilClassifierUsesDefault(t *testing.T) {
	attempts := 0
	opts := Options{
		MaxRetries: 1,
		BaseDelay:  time.Millisecond,
		MaxDelay:   time.Millisecond,
	}

	_, err := Do(context.Background(), opts, func() (int, error) {
		attempts++
		return 0, errors.New("connection reset")
	})

	require.Error(t, err)
	assert.Equal(t, 2, attempts, "message heuristic classifies the error as transient")
}

func TestWrap(t *testing.T) {
	attempts := 0
	opts := Options{
		MaxRetries: 2,
		BaseDelay:  time.Millisecond,
		MaxDelay:   time.Millisecond,
	}

	fn := Wrap(opts, func(ctx context.Context) (string, error) {
		attempts++
		if attempts < 2 {
			return "", ai.NewTransientError("overloaded", 503, nil)
		}
		return "done", nil
	})

	result, err := fn(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "done", result)
	assert.Equal(t, 2, attempts)
}
