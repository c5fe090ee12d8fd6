// Package worker runs background maintenance jobs on a fixed set of
// goroutines.
package worker

import (
	"context"
	"sync"
	"time"

	"github.com/osse101/SlotGuard_Go/internal/logger"
	"github.com/osse101/SlotGuard_Go/internal/metrics"
)

// Job is one unit of background work
type Job interface {
	Process(ctx context.Context) error
}

// JobFunc adapts a function to Job
type JobFunc func(ctx context.Context) error

// Process calls f
func (f JobFunc) Process(ctx context.Context) error { return f(ctx) }

type task struct {
	name string
	job  Job
}

// Pool drains a bounded queue of named jobs. Each run gets its own context
// bounded by the pool's timeout and is logged and measured under its name.
type Pool struct {
	workers int
	timeout time.Duration
	queue   chan task

	wg       sync.WaitGroup
	quit     chan struct{}
	stopOnce sync.Once
}

// NewPool creates a pool of workers over a queue of queueSize. A zero
// timeout selects DefaultJobTimeout.
func NewPool(workers, queueSize int, timeout time.Duration) *Pool {
	if workers <= 0 {
		workers = 1
	}
	if timeout <= 0 {
		timeout = DefaultJobTimeout
	}
	return &Pool{
		workers: workers,
		timeout: timeout,
		queue:   make(chan task, queueSize),
		quit:    make(chan struct{}),
	}
}

// Start launches the workers
func (p *Pool) Start() {
	p.wg.Add(p.workers)
	for i := 0; i < p.workers; i++ {
		go func() {
			defer p.wg.Done()
			for {
				select {
				case t := <-p.queue:
					p.run(t)
				case <-p.quit:
					return
				}
			}
		}()
	}
}

func (p *Pool) run(t task) {
	ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
	defer cancel()
	log := logger.FromContext(ctx).With(LogFieldJob, t.name)

	start := time.Now()
	err := t.job.Process(ctx)
	elapsed := time.Since(start)
	metrics.JobDuration.WithLabelValues(t.name).Observe(elapsed.Seconds())

	// a failed job never takes the worker down
	if err != nil {
		metrics.JobRuns.WithLabelValues(t.name, metrics.ResultFailed).Inc()
		log.Error(LogMsgJobFailed, LogFieldError, err, LogFieldDuration, elapsed)
		return
	}
	metrics.JobRuns.WithLabelValues(t.name, metrics.ResultSucceeded).Inc()
	log.Debug(LogMsgJobDone, LogFieldDuration, elapsed)
}

// Enqueue queues job under name without blocking. It reports false, and
// drops the job, when the queue is full or the pool has stopped.
func (p *Pool) Enqueue(name string, job Job) bool {
	select {
	case <-p.quit:
		return false
	default:
	}

	select {
	case p.queue <- task{name: name, job: job}:
		return true
	default:
		metrics.JobRuns.WithLabelValues(name, metrics.ResultSkipped).Inc()
		return false
	}
}

// Stop stops the workers and waits for running jobs to finish. Jobs still
// queued are discarded.
func (p *Pool) Stop() {
	p.stopOnce.Do(func() { close(p.quit) })
	p.wg.Wait()
}
