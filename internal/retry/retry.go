package retry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"
)

// ErrExhausted tags the error returned once all attempts are spent.
// The last underlying error is wrapped alongside it, so both
// errors.Is(err, ErrExhausted) and errors.Is(err, underlying) hold.
var ErrExhausted = errors.New("retry attempts exhausted")

// Default policy values, matching the crawl budget the catalogue tolerates:
// at most 3 attempts or 10 seconds of trying, waiting 4s, 8s, ... capped
// at 16s between attempts.
const (
	DefaultMaxAttempts = 3
	DefaultMaxElapsed  = 10 * time.Second
	DefaultBaseDelay   = 4 * time.Second
	DefaultMultiplier  = 2.0
	DefaultMaxDelay    = 16 * time.Second
)

// Spec describes a retry policy. It is stateless; one Spec may wrap any
// number of operations concurrently.
type Spec struct {
	// MaxAttempts is the total number of attempts, including the first.
	MaxAttempts int

	// MaxElapsed bounds the cumulative time spent attempting and sleeping.
	// Once exceeded, no further attempt is made. Either bound stopping is
	// sufficient; they are not both required.
	MaxElapsed time.Duration

	// BaseDelay is the sleep before the first re-attempt.
	BaseDelay time.Duration

	// Multiplier scales the delay after each failed attempt.
	Multiplier float64

	// MaxDelay caps the per-attempt sleep.
	MaxDelay time.Duration

	// RetryIf classifies errors. When it returns false the error is treated
	// as permanent and returned immediately without the exhausted tag.
	// A nil RetryIf retries everything except context errors.
	RetryIf func(error) bool
}

// Default returns the standard crawl retry policy.
func Default() Spec {
	return Spec{
		MaxAttempts: DefaultMaxAttempts,
		MaxElapsed:  DefaultMaxElapsed,
		BaseDelay:   DefaultBaseDelay,
		Multiplier:  DefaultMultiplier,
		MaxDelay:    DefaultMaxDelay,
	}
}

// delay returns the backoff sleep preceding the given re-attempt.
// attempt counts failed attempts so far, starting at 1.
func (s Spec) delay(attempt int) time.Duration {
	d := float64(s.BaseDelay)
	for range attempt - 1 {
		d *= s.Multiplier
	}
	if ceiling := float64(s.MaxDelay); s.MaxDelay > 0 && d > ceiling {
		d = ceiling
	}
	return time.Duration(d)
}

// shouldRetry reports whether err may be attempted again.
// Context errors are never retried: the caller is gone.
func (s Spec) shouldRetry(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	if s.RetryIf != nil {
		return s.RetryIf(err)
	}
	return true
}

// Do runs op under the policy in spec and returns its first successful
// result. On a permanent error (RetryIf false, or a context error) the error
// is returned as-is. Once either bound is spent the last error is returned
// wrapped with ErrExhausted.
func Do[T any](ctx context.Context, spec Spec, logger *slog.Logger, op func(ctx context.Context) (T, error)) (T, error) {
	var zero T
	if logger == nil {
		logger = slog.Default()
	}

	start := time.Now()
	var lastErr error
	for attempt := 1; ; attempt++ {
		result, err := op(ctx)
		if err == nil {
			return result, nil
		}
		lastErr = err

		if !spec.shouldRetry(err) {
			return zero, err
		}
		if attempt >= spec.MaxAttempts || time.Since(start) >= spec.MaxElapsed {
			break
		}

		wait := spec.delay(attempt)
		logger.Warn("retrying operation",
			"attempt", attempt,
			"wait", wait,
			"error", err,
		)

		select {
		case <-ctx.Done():
			return zero, ctx.Err()
		case <-time.After(wait):
		}
	}

	return zero, fmt.Errorf("%w: %w", ErrExhausted, lastErr)
}
