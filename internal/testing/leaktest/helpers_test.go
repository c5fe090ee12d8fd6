package leaktest

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// recorder captures failures instead of failing the real test
type recorder struct {
	testing.TB
	mu     sync.Mutex
	failed []string
}

func (r *recorder) Helper() {}

func (r *recorder) Errorf(format string, args ...interface{}) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failed = append(r.failed, fmt.Sprintf(format, args...))
}

func TestGoroutineChecker_WaitsForExitingGoroutines(t *testing.T) {
	CheckNoGoroutineLeak(t, func() {
		for i := 0; i < 10; i++ {
			go time.Sleep(20 * time.Millisecond)
		}
	})
}

func TestGoroutineChecker_DetectsLeak(t *testing.T) {
	rec := &recorder{TB: t}
	done := make(chan struct{})
	defer close(done)

	CheckNoGoroutineLeak(rec, func() {
		go func() { <-done }()
	})
	assert.Len(t, rec.failed, 1)
}

func TestGoroutineChecker_Tolerance(t *testing.T) {
	done := make(chan struct{})
	defer close(done)

	checker := NewGoroutineChecker(t)
	go func() { <-done }()
	checker.Check(1)
}

func TestMemoryChecker(t *testing.T) {
	CheckNoMemoryLeak(t, 1.0, func() {
		_ = make([]byte, 1<<16)
	})

	rec := &recorder{TB: t}
	var retained [][]byte
	CheckNoMemoryLeak(rec, 1.0, func() {
		for i := 0; i < 8; i++ {
			retained = append(retained, make([]byte, 1<<20))
		}
	})
	assert.Len(t, rec.failed, 1)
	assert.Len(t, retained, 8)
}
