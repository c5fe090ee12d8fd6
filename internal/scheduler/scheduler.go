// Package scheduler enqueues jobs onto a worker pool at fixed intervals.
package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/osse101/SlotGuard_Go/internal/logger"
	"github.com/osse101/SlotGuard_Go/internal/worker"
)

const (
	logMsgTickSkipped = "Scheduled job skipped, worker queue full"
	logFieldJob       = "job"
)

// Enqueuer accepts named jobs without blocking
type Enqueuer interface {
	Enqueue(name string, job worker.Job) bool
}

// Entry is one recurring job
type Entry struct {
	Name  string
	Every time.Duration
	Job   worker.Job
	// Immediate also enqueues the job when it is scheduled
	Immediate bool
}

// Scheduler owns one ticker goroutine per entry
type Scheduler struct {
	pool     Enqueuer
	quit     chan struct{}
	wg       sync.WaitGroup
	stopOnce sync.Once
}

// New creates a scheduler feeding pool
func New(pool Enqueuer) *Scheduler {
	return &Scheduler{
		pool: pool,
		quit: make(chan struct{}),
	}
}

// Schedule enqueues e.Job every e.Every until Stop. A tick that finds the
// queue full is skipped, never retried.
func (s *Scheduler) Schedule(e Entry) {
	if e.Immediate {
		s.tick(e)
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(e.Every)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				s.tick(e)
			case <-s.quit:
				return
			}
		}
	}()
}

func (s *Scheduler) tick(e Entry) {
	if !s.pool.Enqueue(e.Name, e.Job) {
		logger.FromContext(context.Background()).Warn(logMsgTickSkipped, logFieldJob, e.Name)
	}
}

// Stop ends every schedule and waits for the ticker goroutines
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() { close(s.quit) })
	s.wg.Wait()
}
