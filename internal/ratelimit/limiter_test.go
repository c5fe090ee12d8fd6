package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/SlotGuard_Go/internal/domain"
)

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

func TestErrLimitExceeded_Error(t *testing.T) {
	err := ErrLimitExceeded{Action: "spin", RetryAfter: 1500 * time.Millisecond}
	assert.Equal(t, fmt.Sprintf(ErrFmtLimitExceeded, "spin", 2), err.Error())
	assert.Equal(t, 2, err.RetryAfterSeconds())

	zero := ErrLimitExceeded{Action: "spin"}
	assert.Equal(t, 1, zero.RetryAfterSeconds(), "never advertise a zero wait")
}

func TestErrLimitExceeded_Is(t *testing.T) {
	var err error = fmt.Errorf("wrapped: %w", ErrLimitExceeded{Action: "spin", RetryAfter: time.Second})

	assert.True(t, errors.Is(err, domain.ErrRateLimited))
	assert.True(t, errors.Is(err, ErrLimitExceeded{}))
	assert.False(t, errors.Is(err, domain.ErrInvalidInput))
	assert.Equal(t, "resource-exhausted", domain.ErrorKind(err))

	var limitErr ErrLimitExceeded
	require.True(t, errors.As(err, &limitErr))
	assert.Equal(t, "spin", limitErr.Action)
}

func TestMemoryLimiter_Window(t *testing.T) {
	clock := &fakeClock{t: time.Unix(1700000000, 0)}
	limiter := NewMemoryLimiter(clock.Now)
	ctx := context.Background()
	window := time.Minute

	for i := 0; i < 3; i++ {
		require.NoError(t, limiter.Allow(ctx, "user-1", domain.ActionSpin, 3, window))
	}

	err := limiter.Allow(ctx, "user-1", domain.ActionSpin, 3, window)
	require.Error(t, err)
	var limitErr ErrLimitExceeded
	require.True(t, errors.As(err, &limitErr))
	assert.Equal(t, window, limitErr.RetryAfter)

	// other subjects and actions are independent
	assert.NoError(t, limiter.Allow(ctx, "user-2", domain.ActionSpin, 3, window))
	assert.NoError(t, limiter.Allow(ctx, "user-1", domain.ActionPurchaseVerify, 3, window))

	// the window boundary itself is still inside the window
	clock.Advance(window)
	assert.Error(t, limiter.Allow(ctx, "user-1", domain.ActionSpin, 3, window))

	clock.Advance(time.Millisecond)
	assert.NoError(t, limiter.Allow(ctx, "user-1", domain.ActionSpin, 3, window))
}

func TestMemoryLimiter_RejectionsNotCounted(t *testing.T) {
	clock := &fakeClock{t: time.Unix(1700000000, 0)}
	limiter := NewMemoryLimiter(clock.Now).(*memoryLimiter)
	ctx := context.Background()

	for i := 0; i < 10; i++ {
		_ = limiter.Allow(ctx, "user-1", domain.ActionSpin, 2, time.Minute)
	}
	assert.Equal(t, 2, limiter.counters[memoryKey{subject: "user-1", action: domain.ActionSpin}].count)
}

func TestMemoryLimiter_InvalidLimit(t *testing.T) {
	limiter := NewMemoryLimiter(nil)
	assert.EqualError(t, limiter.Allow(context.Background(), "u", "spin", 0, time.Minute), ErrMsgInvalidLimit)
}

func TestMemoryLimiter_Concurrent(t *testing.T) {
	limiter := NewMemoryLimiter(nil)
	ctx := context.Background()

	const attempts = 200
	const limit = 120

	var wg sync.WaitGroup
	var mu sync.Mutex
	admitted := 0
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if limiter.Allow(ctx, "user-1", domain.ActionSpin, limit, time.Minute) == nil {
				mu.Lock()
				admitted++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, limit, admitted)
}

func TestMemoryLimiter_EvictsExpired(t *testing.T) {
	clock := &fakeClock{t: time.Unix(1700000000, 0)}
	limiter := NewMemoryLimiter(clock.Now).(*memoryLimiter)
	ctx := context.Background()

	for i := 0; i < memoryEvictThreshold; i++ {
		require.NoError(t, limiter.Allow(ctx, fmt.Sprintf("user-%d", i), domain.ActionSpin, 1, time.Second))
	}
	clock.Advance(2 * time.Second)
	require.NoError(t, limiter.Allow(ctx, "fresh", domain.ActionSpin, 1, time.Second))

	assert.Len(t, limiter.counters, 1)
}

func TestHashSubjectAction(t *testing.T) {
	a := hashSubjectAction("user-1", "spin")
	assert.Equal(t, a, hashSubjectAction("user-1", "spin"), "stable")
	assert.NotEqual(t, a, hashSubjectAction("user-1", "purchase_verify"))
	assert.NotEqual(t, a, hashSubjectAction("user-2", "spin"))
	assert.GreaterOrEqual(t, a, int64(0))
}
