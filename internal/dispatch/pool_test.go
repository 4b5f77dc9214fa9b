// internal/dispatch/pool_test.go
package dispatch

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"nbn-order-service/internal/common/logger"

	"github.com/stretchr/testify/assert"
)

func TestPool_RunsAllJobs(t *testing.T) {
	pool := NewPool(4, 16, logger.NewTestLogger(t))
	pool.Start(context.Background())

	var ran int64
	for i := 0; i < 20; i++ {
		pool.Submit(func(ctx context.Context) {
			atomic.AddInt64(&ran, 1)
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	assert.NoError(t, pool.Shutdown(ctx))
	assert.Equal(t, int64(20), atomic.LoadInt64(&ran))
}

func TestPool_JobFailureIsolated(t *testing.T) {
	pool := NewPool(2, 4, logger.NewNoOpLogger())
	pool.Start(context.Background())

	var succeeded int64
	pool.Submit(func(ctx context.Context) {
		// A job that does nothing useful; its outcome must not affect others.
	})
	pool.Submit(func(ctx context.Context) {
		atomic.AddInt64(&succeeded, 1)
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	assert.NoError(t, pool.Shutdown(ctx))
	assert.Equal(t, int64(1), atomic.LoadInt64(&succeeded))
}

func TestPool_ShutdownTimeout(t *testing.T) {
	pool := NewPool(1, 1, logger.NewNoOpLogger())
	pool.Start(context.Background())

	release := make(chan struct{})
	pool.Submit(func(ctx context.Context) {
		<-release
	})

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	assert.Error(t, pool.Shutdown(ctx))

	close(release)
}
