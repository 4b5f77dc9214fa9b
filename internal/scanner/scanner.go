// internal/scanner/scanner.go
package scanner

import (
	"context"
	"time"

	"nbn-order-service/internal/common/logger"
	"nbn-order-service/internal/common/metrics"
	"nbn-order-service/internal/models"
)

// EligibleSource pages through applications eligible for order submission.
type EligibleSource interface {
	EligiblePage(ctx context.Context, afterID int64, limit int) ([]models.Application, error)
}

// EnqueueFunc hands one eligible application to the submission pipeline.
type EnqueueFunc func(app models.Application)

// Ticker abstracts the recurring trigger so scans are testable without real
// timers.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

type realTicker struct {
	t *time.Ticker
}

func NewTicker(interval time.Duration) Ticker {
	return &realTicker{t: time.NewTicker(interval)}
}

func (r *realTicker) C() <-chan time.Time { return r.t.C }
func (r *realTicker) Stop()               { r.t.Stop() }

// Scanner finds applications in order status on nbn plans and enqueues one
// submission job per application. It performs no locking of rows and gives
// no exactly-once guarantee by itself; it relies on jobs moving the status
// promptly.
type Scanner struct {
	source   EligibleSource
	enqueue  EnqueueFunc
	lock     Locker
	pageSize int
	logger   logger.Logger
}

func New(source EligibleSource, enqueue EnqueueFunc, lock Locker, pageSize int, log logger.Logger) *Scanner {
	if lock == nil {
		lock = NoopLock{}
	}
	return &Scanner{
		source:   source,
		enqueue:  enqueue,
		lock:     lock,
		pageSize: pageSize,
		logger:   log.WithFields(map[string]interface{}{"component": "eligibility-scanner"}),
	}
}

// ScanOnce enumerates every eligible application in ascending id order,
// enqueues one job each, and returns the dispatched count. A store error
// aborts the scan and propagates.
func (s *Scanner) ScanOnce(ctx context.Context) (int, error) {
	count := 0
	afterID := int64(0)

	for {
		page, err := s.source.EligiblePage(ctx, afterID, s.pageSize)
		if err != nil {
			return count, err
		}
		if len(page) == 0 {
			break
		}

		for _, app := range page {
			s.enqueue(app)
			count++
			metrics.OrdersDispatched.Inc()
		}
		afterID = page[len(page)-1].ID
	}

	if count == 0 {
		s.logger.Info("no NBN applications to process", nil)
	} else {
		s.logger.Info("dispatched NBN applications for processing", map[string]interface{}{
			"count": count,
		})
	}

	return count, nil
}

// Run scans once per tick until the context is cancelled. Cycles that cannot
// take the run-lock are skipped; scan failures are logged and the loop keeps
// going, leaving the backlog for the next tick.
func (s *Scanner) Run(ctx context.Context, ticker Ticker) {
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("scanner stopped", nil)
			return
		case <-ticker.C():
			s.runCycle(ctx)
		}
	}
}

func (s *Scanner) runCycle(ctx context.Context) {
	ok, err := s.lock.Acquire(ctx)
	if err != nil {
		s.logger.Error("run-lock acquire failed", map[string]interface{}{"error": err})
		metrics.ScansTotal.WithLabelValues("lock_error").Inc()
		return
	}
	if !ok {
		s.logger.Warn("previous scan still running, skipping cycle", nil)
		metrics.ScansTotal.WithLabelValues("skipped").Inc()
		return
	}
	defer func() {
		if err := s.lock.Release(ctx); err != nil {
			s.logger.Warn("run-lock release failed", map[string]interface{}{"error": err})
		}
	}()

	if _, err := s.ScanOnce(ctx); err != nil {
		s.logger.Error("scan failed", map[string]interface{}{"error": err})
		metrics.ScansTotal.WithLabelValues("error").Inc()
		return
	}
	metrics.ScansTotal.WithLabelValues("ok").Inc()
}
