package ratelimit

import (
	"context"
	"errors"
	"time"

	"golang.org/x/time/rate"
)

// ErrNegativeInterval is returned by New when the minimum interval is
// negative. A zero interval is valid and disables limiting.
var ErrNegativeInterval = errors.New("minimum interval must not be negative")

// Limiter spaces admissions at least minInterval apart.
//
// Design decision: We wrap golang.org/x/time/rate with burst 1 rather than
// implementing the wait loop ourselves because:
//  1. A burst of 1 is exactly "strictly spaced admissions"
//  2. rate.Limiter serializes concurrent waiters correctly; two callers can
//     never both observe a stale last-admission time and proceed together
//  3. Wait respects context cancellation while queued
type Limiter struct {
	// minInterval is the minimum spacing between admissions.
	// Immutable after construction.
	minInterval time.Duration

	// limiter is the underlying token bucket (capacity 1).
	limiter *rate.Limiter
}

// New creates a Limiter that admits callers at most once per minInterval.
// A minInterval of 0 admits every caller immediately.
func New(minInterval time.Duration) (*Limiter, error) {
	if minInterval < 0 {
		return nil, ErrNegativeInterval
	}

	limit := rate.Inf
	if minInterval > 0 {
		limit = rate.Every(minInterval)
	}

	return &Limiter{
		minInterval: minInterval,
		limiter:     rate.NewLimiter(limit, 1),
	}, nil
}

// Wait blocks until the limiter admits the caller or ctx is cancelled.
// It is safe to call from multiple goroutines; admissions are granted
// first-come-first-served with at least MinInterval between any two.
func (l *Limiter) Wait(ctx context.Context) error {
	if err := l.limiter.Wait(ctx); err != nil {
		// With burst 1 the only failures are context ones, but the
		// underlying Wait reports an unmeetable deadline in its own
		// words before the deadline fires. Callers match on the
		// context sentinels, so wait the deadline out and return those.
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		<-ctx.Done()
		return ctx.Err()
	}
	return nil
}

// MinInterval returns the configured minimum spacing between admissions.
func (l *Limiter) MinInterval() time.Duration {
	return l.minInterval
}
