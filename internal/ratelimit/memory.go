package ratelimit

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/osse101/SlotGuard_Go/internal/logger"
)

type memoryKey struct {
	subject string
	action  string
}

// memoryLimiter keeps counters in process memory
type memoryLimiter struct {
	mu       sync.Mutex
	counters map[memoryKey]counter
	now      func() time.Time
}

// NewMemoryLimiter creates a process-local limiter. A nil clock uses time.Now.
func NewMemoryLimiter(clock func() time.Time) Limiter {
	if clock == nil {
		clock = time.Now
	}
	return &memoryLimiter{
		counters: make(map[memoryKey]counter),
		now:      clock,
	}
}

func (m *memoryLimiter) Allow(ctx context.Context, subject, action string, limit int, window time.Duration) error {
	if limit <= 0 {
		return errors.New(ErrMsgInvalidLimit)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	key := memoryKey{subject: subject, action: action}
	now := m.now()

	c, err := m.counters[key].next(action, now, limit, window)
	if err != nil {
		logger.FromContext(ctx).Debug(LogMsgLimitExceeded,
			LogFieldSubject, subject, LogFieldAction, action, LogFieldCount, c.count)
		return err
	}
	m.counters[key] = c

	m.evictExpired(now)
	return nil
}

// evictExpired drops finished windows once the map grows past a few thousand entries
func (m *memoryLimiter) evictExpired(now time.Time) {
	if len(m.counters) < memoryEvictThreshold {
		return
	}
	for k, c := range m.counters {
		if now.After(c.resetAt) {
			delete(m.counters, k)
		}
	}
}
