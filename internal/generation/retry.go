package generation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"
)

// Retry defaults. Three attempts total, starting at two seconds between
// attempts and doubling, never waiting longer than ten seconds.
const (
	DefaultMaxAttempts = 3
	DefaultBaseDelay   = 2 * time.Second
	DefaultMaxDelay    = 10 * time.Second
)

// retryState is the explicit state of one wrapped call. Each attempt moves
// attempting -> success, attempting -> retrying (transient failure with
// attempts left), or attempting -> failed (permanent failure or attempts
// exhausted).
type retryState int

const (
	stateAttempting retryState = iota
	stateSuccess
	stateRetrying
	stateFailed
)

// RetryPolicy wraps a provider call with bounded, strictly sequential
// retries. A failure is re-attempted only when it is a *ProviderError with
// Retryable set; the delay before attempt n+1 is BaseDelay * 2^(n-1),
// capped at MaxDelay.
type RetryPolicy struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
}

// NewRetryPolicy returns a RetryPolicy with the default attempt budget.
func NewRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts: DefaultMaxAttempts,
		BaseDelay:   DefaultBaseDelay,
		MaxDelay:    DefaultMaxDelay,
	}
}

// Do invokes fn until it succeeds, fails permanently, or the attempt budget
// is exhausted. The final state always carries either fn's output or the
// last error; nothing is swallowed. Context cancellation during a backoff
// wait aborts the loop and surfaces the context error so callers see why
// the call ended early.
func (p RetryPolicy) Do(ctx context.Context, logger *slog.Logger, fn func(context.Context) (string, error)) (string, error) {
	maxAttempts := p.MaxAttempts
	if maxAttempts < 1 {
		maxAttempts = DefaultMaxAttempts
	}

	baseDelay := p.BaseDelay
	if baseDelay <= 0 {
		baseDelay = DefaultBaseDelay
	}

	maxDelay := p.MaxDelay
	if maxDelay <= 0 {
		maxDelay = DefaultMaxDelay
	}

	var (
		output  string
		lastErr error
	)

	state := stateAttempting
	attempt := 0

	for state == stateAttempting || state == stateRetrying {
		if state == stateRetrying {
			delay := backoffDelay(baseDelay, maxDelay, attempt)
			logger.InfoContext(ctx, "retrying after delay",
				"attempt", attempt,
				"delay", delay)

			select {
			case <-time.After(delay):
			case <-ctx.Done():
				logger.WarnContext(ctx, "call abandoned during retry delay",
					"attempt", attempt,
					"ctx_err", ctx.Err())
				return "", fmt.Errorf("retry aborted: %w", ctx.Err())
			}
		}

		attempt++
		output, lastErr = fn(ctx)

		switch {
		case lastErr == nil:
			state = stateSuccess
		case !isRetryable(lastErr):
			logger.WarnContext(ctx, "permanent error, not retrying",
				"attempt", attempt,
				"error", lastErr)
			state = stateFailed
		case attempt >= maxAttempts:
			logger.WarnContext(ctx, "maximum retry attempts reached",
				"max_attempts", maxAttempts,
				"error", lastErr)
			state = stateFailed
		default:
			logger.InfoContext(ctx, "transient error, will retry",
				"attempt", attempt,
				"error", lastErr)
			state = stateRetrying
		}
	}

	if state == stateFailed {
		return "", lastErr
	}

	return output, nil
}

// backoffDelay computes the wait before the attempt following attempt n
// (1-based): base * 2^(n-1), capped at max.
func backoffDelay(base, max time.Duration, attempt int) time.Duration {
	delay := base
	for i := 1; i < attempt; i++ {
		delay *= 2
		if delay >= max {
			return max
		}
	}
	if delay > max {
		return max
	}
	return delay
}

// isRetryable reports whether err is a provider failure flagged as
// transient.
func isRetryable(err error) bool {
	var provErr *ProviderError
	if errors.As(err, &provErr) {
		return provErr.Retryable
	}
	return false
}
