package generation_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pairforge/pairforge/internal/generation"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fastPolicy keeps test runtimes negligible.
func fastPolicy() generation.RetryPolicy {
	return generation.RetryPolicy{
		MaxAttempts: 3,
		BaseDelay:   time.Millisecond,
		MaxDelay:    5 * time.Millisecond,
	}
}

func TestRetrySucceedsAfterTransientFailures(t *testing.T) {
	t.Parallel()

	attempts := 0
	fn := func(ctx context.Context) (string, error) {
		attempts++
		if attempts < 3 {
			return "", generation.NewProviderError("mock", generation.KindServerError, "backend unavailable", nil)
		}
		return "output", nil
	}

	out, err := fastPolicy().Do(context.Background(), testLogger(), fn)

	require.NoError(t, err)
	assert.Equal(t, "output", out)
	assert.Equal(t, 3, attempts)
}

func TestRetryStopsOnPermanentFailure(t *testing.T) {
	t.Parallel()

	attempts := 0
	permErr := generation.NewProviderError("mock", generation.KindUnauthorized, "bad credentials", nil)
	fn := func(ctx context.Context) (string, error) {
		attempts++
		return "", permErr
	}

	_, err := fastPolicy().Do(context.Background(), testLogger(), fn)

	assert.Equal(t, 1, attempts)

	var provErr *generation.ProviderError
	require.ErrorAs(t, err, &provErr)
	assert.Equal(t, generation.KindUnauthorized, provErr.Kind)
	assert.False(t, provErr.Retryable)
}

func TestRetryExhaustsAttemptsAndKeepsLastError(t *testing.T) {
	t.Parallel()

	attempts := 0
	fn := func(ctx context.Context) (string, error) {
		attempts++
		return "", generation.NewProviderError("mock", generation.KindRateLimited, "slow down", nil)
	}

	_, err := fastPolicy().Do(context.Background(), testLogger(), fn)

	assert.Equal(t, 3, attempts)

	var provErr *generation.ProviderError
	require.ErrorAs(t, err, &provErr)
	assert.Equal(t, generation.KindRateLimited, provErr.Kind)
}

func TestRetryTreatsUntypedErrorsAsPermanent(t *testing.T) {
	t.Parallel()

	attempts := 0
	fn := func(ctx context.Context) (string, error) {
		attempts++
		return "", errors.New("something unexpected")
	}

	_, err := fastPolicy().Do(context.Background(), testLogger(), fn)

	assert.Error(t, err)
	assert.Equal(t, 1, attempts)
}

func TestRetryAbortsDuringBackoffOnCancel(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())

	policy := generation.RetryPolicy{
		MaxAttempts: 3,
		BaseDelay:   time.Minute,
		MaxDelay:    time.Minute,
	}

	attempts := 0
	fn := func(ctx context.Context) (string, error) {
		attempts++
		cancel()
		return "", generation.NewProviderError("mock", generation.KindTimeout, "deadline exceeded", nil)
	}

	start := time.Now()
	_, err := policy.Do(ctx, testLogger(), fn)

	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, attempts)
	assert.Less(t, time.Since(start), 5*time.Second, "cancellation must interrupt the backoff wait")
}

func TestRetryFirstAttemptHasNoDelay(t *testing.T) {
	t.Parallel()

	policy := generation.RetryPolicy{
		MaxAttempts: 1,
		BaseDelay:   time.Minute,
		MaxDelay:    time.Minute,
	}

	start := time.Now()
	out, err := policy.Do(context.Background(), testLogger(), func(ctx context.Context) (string, error) {
		return "ok", nil
	})

	require.NoError(t, err)
	assert.Equal(t, "ok", out)
	assert.Less(t, time.Since(start), time.Second)
}
