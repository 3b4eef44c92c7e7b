// Package worker provides the background execution machinery of the
// application: a fixed-size pool draining a task queue, and the periodic
// sweep that schedules note expiry reminders.
//
// Jobs are fire-and-forget: submission never blocks request handling,
// execution is attempted at least once, failures are logged and not
// retried, and no ordering is guaranteed.
package worker

import (
	"context"
	"sync"

	"github.com/subbuk987/Fundoo/internal/logger"
)

// Job is a unit of background work. Implementations receive the pool's
// context and must return promptly once it is cancelled.
type Job func(ctx context.Context)

// queueCapacity bounds how many submitted jobs can wait for a worker.
// Submissions beyond capacity are dropped with a log entry rather than
// blocking the caller.
const queueCapacity = 128

// Queue is a fixed-size worker pool fed through a buffered channel. It is
// idle until Start is called.
type Queue struct {
	jobs    chan Job
	workers int
	logger  *logger.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewQueue constructs a [Queue] draining jobs with the given number of
// worker goroutines.
func NewQueue(workers int, log *logger.Logger) *Queue {
	if workers <= 0 {
		workers = 1
	}

	log.Debug().Int("workers", workers).Msg("creating task queue")
	return &Queue{
		jobs:    make(chan Job, queueCapacity),
		workers: workers,
		logger:  log,
	}
}

// Start launches the worker goroutines. They exit when ctx is cancelled or
// Stop is called.
func (q *Queue) Start(ctx context.Context) {
	q.mu.Lock()
	poolCtx, cancel := context.WithCancel(ctx)
	q.cancel = cancel
	q.mu.Unlock()

	for i := 0; i < q.workers; i++ {
		q.wg.Add(1)
		go func() {
			defer q.wg.Done()

			for {
				select {
				case <-poolCtx.Done():
					return
				case job := <-q.jobs:
					q.run(poolCtx, job)
				}
			}
		}()
	}
}

// Submit enqueues a job and returns immediately. A full queue drops the job
// rather than blocking the caller; the drop is logged.
func (q *Queue) Submit(job Job) {
	if job == nil {
		return
	}

	select {
	case q.jobs <- job:
	default:
		q.logger.Warn().Msg("task queue full, dropping job")
	}
}

// Stop cancels the workers' context and blocks until every worker goroutine
// has exited. Jobs still waiting in the queue are abandoned. Safe to call
// when the pool is not running.
func (q *Queue) Stop() {
	q.mu.Lock()
	cancel := q.cancel
	q.cancel = nil
	q.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	q.wg.Wait()
}

// run executes one job, recovering panics so a bad job cannot take a worker
// goroutine down with it.
func (q *Queue) run(ctx context.Context, job Job) {
	defer func() {
		if r := recover(); r != nil {
			q.logger.Error().Any("panic", r).Msg("job panicked")
		}
	}()

	job(ctx)
}
