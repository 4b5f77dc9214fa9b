// internal/scanner/scanner_test.go
package scanner

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"nbn-order-service/internal/common/logger"
	"nbn-order-service/internal/models"

	"github.com/stretchr/testify/assert"
)

// fakeSource serves eligible applications in keyset pages, like the store.
type fakeSource struct {
	apps []models.Application
	err  error
}

func (f *fakeSource) EligiblePage(ctx context.Context, afterID int64, limit int) ([]models.Application, error) {
	if f.err != nil {
		return nil, f.err
	}
	var page []models.Application
	for _, app := range f.apps {
		if app.ID > afterID {
			page = append(page, app)
			if len(page) == limit {
				break
			}
		}
	}
	return page, nil
}

type recordingEnqueue struct {
	mu  sync.Mutex
	ids []int64
}

func (r *recordingEnqueue) fn(app models.Application) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ids = append(r.ids, app.ID)
}

func eligibleApp(id int64) models.Application {
	return models.Application{
		ID:     id,
		Status: models.StatusOrder,
		Plan:   &models.Plan{Type: models.PlanTypeNBN, Name: "NBN 50"},
	}
}

func TestScanOnce_DispatchesEachApplicationOnce(t *testing.T) {
	source := &fakeSource{apps: []models.Application{
		eligibleApp(1), eligibleApp(2), eligibleApp(3), eligibleApp(4), eligibleApp(5),
	}}
	rec := &recordingEnqueue{}

	// Page size 2 forces three pages; enumeration must still be exact.
	s := New(source, rec.fn, nil, 2, logger.NewTestLogger(t))
	count, err := s.ScanOnce(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, 5, count)
	assert.Equal(t, []int64{1, 2, 3, 4, 5}, rec.ids)
}

func TestScanOnce_NothingEligible(t *testing.T) {
	source := &fakeSource{}
	rec := &recordingEnqueue{}

	s := New(source, rec.fn, nil, 500, logger.NewTestLogger(t))
	count, err := s.ScanOnce(context.Background())

	assert.NoError(t, err)
	assert.Zero(t, count)
	assert.Empty(t, rec.ids)
}

func TestScanOnce_StoreErrorPropagates(t *testing.T) {
	source := &fakeSource{err: errors.New("store unreachable")}
	rec := &recordingEnqueue{}

	s := New(source, rec.fn, nil, 500, logger.NewNoOpLogger())
	_, err := s.ScanOnce(context.Background())

	assert.Error(t, err)
	assert.Empty(t, rec.ids)
}

// fakeTicker lets the test drive scan cycles by hand.
type fakeTicker struct {
	ch chan time.Time
}

func newFakeTicker() *fakeTicker {
	return &fakeTicker{ch: make(chan time.Time)}
}

func (f *fakeTicker) C() <-chan time.Time { return f.ch }
func (f *fakeTicker) Stop()               {}

func TestRun_ScansOnTick(t *testing.T) {
	source := &fakeSource{apps: []models.Application{eligibleApp(1)}}

	scanned := make(chan int64, 1)
	enqueue := func(app models.Application) {
		scanned <- app.ID
	}

	s := New(source, enqueue, nil, 500, logger.NewTestLogger(t))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ticker := newFakeTicker()
	go s.Run(ctx, ticker)

	ticker.ch <- time.Now()

	select {
	case id := <-scanned:
		assert.Equal(t, int64(1), id)
	case <-time.After(2 * time.Second):
		t.Fatal("tick did not trigger a scan")
	}
}

type heldLock struct {
	acquireCalls int
}

func (h *heldLock) Acquire(ctx context.Context) (bool, error) {
	h.acquireCalls++
	return false, nil
}

func (h *heldLock) Release(ctx context.Context) error { return nil }

func TestRunCycle_SkipsWhenLockHeld(t *testing.T) {
	source := &fakeSource{apps: []models.Application{eligibleApp(1)}}
	rec := &recordingEnqueue{}
	lock := &heldLock{}

	s := New(source, rec.fn, lock, 500, logger.NewTestLogger(t))
	s.runCycle(context.Background())

	assert.Equal(t, 1, lock.acquireCalls)
	assert.Empty(t, rec.ids)
}
