// internal/dispatch/pool.go
package dispatch

import (
	"context"
	"sync"

	"nbn-order-service/internal/common/logger"
)

// Job is one unit of asynchronous work. Jobs run concurrently with no
// ordering guarantee and share no state with one another.
type Job func(ctx context.Context)

// Pool executes jobs on a fixed set of workers over a buffered queue.
// Failure of one job never affects another; a job signals failure through
// its own side effects, not through the pool.
type Pool struct {
	jobs    chan Job
	wg      sync.WaitGroup
	logger  logger.Logger
	workers int

	closeOnce sync.Once
}

func NewPool(workers, queueSize int, log logger.Logger) *Pool {
	return &Pool{
		jobs:    make(chan Job, queueSize),
		logger:  log.WithFields(map[string]interface{}{"component": "dispatch-pool"}),
		workers: workers,
	}
}

// Start launches the workers. They keep draining the queue until Shutdown
// closes it; ctx cancels jobs in flight, not the drain.
func (p *Pool) Start(ctx context.Context) {
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go func() {
			defer p.wg.Done()
			for job := range p.jobs {
				job(ctx)
			}
		}()
	}
	p.logger.Info("dispatch pool started", map[string]interface{}{
		"workers":   p.workers,
		"queueSize": cap(p.jobs),
	})
}

// Submit enqueues one job, blocking while the queue is full so the scanner
// cannot outrun the workers.
func (p *Pool) Submit(job Job) {
	p.jobs <- job
}

// Shutdown stops accepting jobs and waits for the queue to drain or the
// context to expire.
func (p *Pool) Shutdown(ctx context.Context) error {
	p.closeOnce.Do(func() {
		close(p.jobs)
	})

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		p.logger.Info("dispatch pool drained", nil)
		return nil
	case <-ctx.Done():
		p.logger.Warn("dispatch pool shutdown timed out", nil)
		return ctx.Err()
	}
}
