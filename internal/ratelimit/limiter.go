// Package ratelimit enforces per-subject, per-action request ceilings over a
// fixed window. Counters are shared across server instances through Postgres;
// an in-memory limiter with the same semantics serves development and tests.
package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/osse101/SlotGuard_Go/internal/domain"
)

// Limiter admits or rejects one attempt at action by subject
type Limiter interface {
	// Allow counts one attempt and returns ErrLimitExceeded once limit
	// attempts have been admitted in the current window. Rejected attempts
	// are not counted.
	Allow(ctx context.Context, subject, action string, limit int, window time.Duration) error
}

// ErrLimitExceeded is returned when a subject has used its allowance
type ErrLimitExceeded struct {
	Action     string
	RetryAfter time.Duration
}

func (e ErrLimitExceeded) Error() string {
	return fmt.Sprintf(ErrFmtLimitExceeded, e.Action, retrySeconds(e.RetryAfter))
}

// Is allows errors.Is() to match both ErrLimitExceeded and domain.ErrRateLimited
func (e ErrLimitExceeded) Is(target error) bool {
	if target == domain.ErrRateLimited {
		return true
	}
	_, ok := target.(ErrLimitExceeded)
	return ok
}

// RetryAfterSeconds rounds the wait up to whole seconds, minimum 1
func (e ErrLimitExceeded) RetryAfterSeconds() int {
	return retrySeconds(e.RetryAfter)
}

func retrySeconds(d time.Duration) int {
	secs := int((d + time.Second - 1) / time.Second)
	if secs < 1 {
		return 1
	}
	return secs
}

// counter is the stored state of one (subject, action) window
type counter struct {
	count   int
	resetAt time.Time
}

// next applies one attempt at now to c. It returns the updated counter, or
// ErrLimitExceeded with c unchanged.
func (c counter) next(action string, now time.Time, limit int, window time.Duration) (counter, error) {
	if c.resetAt.IsZero() || now.After(c.resetAt) {
		return counter{count: 1, resetAt: now.Add(window)}, nil
	}
	if c.count >= limit {
		return c, ErrLimitExceeded{Action: action, RetryAfter: c.resetAt.Sub(now)}
	}
	c.count++
	return c, nil
}
