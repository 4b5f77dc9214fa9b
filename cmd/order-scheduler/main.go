// cmd/order-scheduler/main.go
package main

import (
	"context"
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"nbn-order-service/internal/common/config"
	"nbn-order-service/internal/common/database"
	"nbn-order-service/internal/common/logger"
	"nbn-order-service/internal/common/observability"
	"nbn-order-service/internal/dispatch"
	"nbn-order-service/internal/models"
	"nbn-order-service/internal/provisioning"
	"nbn-order-service/internal/scanner"
	"nbn-order-service/internal/store"
	"nbn-order-service/internal/workers/nbnorder"
)

const scanLockKey = "nbn-order-scheduler:scan-lock"

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	zapLog := logger.New("info", "console")
	defer zapLog.Sync()

	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting order scheduler...")

	cfg, err := config.Load()
	if err != nil {
		zapLog.Fatal("config load failed", zap.Error(err))
	}

	obs := observability.New("order-scheduler")
	defer obs.Shutdown()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// --- Init PostgreSQL with retry ---
	var pg *database.PostgresClient
	err = retryWithBackoff(func() error {
		var err error
		pg, err = database.NewPostgres(cfg.Database.Postgres)
		if err != nil {
			return err
		}
		return pg.Ping(ctx)
	}, 15, 2*time.Second, zapLog, "PostgreSQL connection")

	if err != nil {
		zapLog.Fatal("postgres failed after retries", zap.Error(err))
	}
	defer pg.Close()
	zapLog.Info("PostgreSQL connected successfully")

	// --- Init Redis with retry ---
	var redis *database.RedisClient
	err = retryWithBackoff(func() error {
		var err error
		redis, err = database.NewRedis(cfg.Database.Redis)
		if err != nil {
			return err
		}
		return redis.Ping(ctx)
	}, 10, 2*time.Second, zapLog, "Redis connection")

	if err != nil {
		zapLog.Fatal("redis failed after retries", zap.Error(err))
	}
	defer redis.Close()
	zapLog.Info("Redis connected successfully")

	// --- Wire the pipeline ---
	appStore := store.NewApplicationStore(pg.DB)

	client := provisioning.NewClient(
		cfg.Provisioning.EndpointURL,
		config.GetDuration(cfg.Provisioning.Timeout),
	)

	handler := nbnorder.NewHandler(
		&nbnorder.Config{
			Timeout: config.GetDuration(cfg.Provisioning.Timeout),
		},
		appStore, client, log,
	)

	// Jobs get their own context so queued work can still drain after the
	// scan loop is cancelled.
	poolCtx, poolCancel := context.WithCancel(context.Background())
	defer poolCancel()

	pool := dispatch.NewPool(cfg.Scanner.Workers, cfg.Scanner.PageSize, log)
	pool.Start(poolCtx)

	enqueue := func(app models.Application) {
		input := nbnorder.InputFromApplication(&app)
		pool.Submit(func(jobCtx context.Context) {
			start := time.Now()
			outcome := "ok"
			if err := handler.Handle(jobCtx, input); err != nil {
				outcome = "error"
			}
			obs.RecordJobProcessed(jobCtx, outcome)
			obs.RecordJobDuration(jobCtx, time.Since(start), outcome)
		})
	}

	lock := scanner.NewRedisLock(redis.Client, scanLockKey, config.GetDuration(cfg.Scanner.LockTTL))

	scan := scanner.New(appStore, enqueue, lock, cfg.Scanner.PageSize, log)

	// --- Metrics + pprof endpoint ---
	go func() {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		mux.Handle("/debug/pprof/", http.DefaultServeMux)
		if err := http.ListenAndServe(":9090", mux); err != nil && err != http.ErrServerClosed {
			zapLog.Error("metrics server failed", zap.Error(err))
		}
	}()

	// --- Run the scan loop ---
	ticker := scanner.NewTicker(config.GetDuration(cfg.Scanner.Interval))
	go scan.Run(ctx, ticker)

	zapLog.Info("order scheduler running",
		zap.Duration("interval", config.GetDuration(cfg.Scanner.Interval)),
		zap.Int("pageSize", cfg.Scanner.PageSize),
		zap.Int("workers", cfg.Scanner.Workers),
	)

	// --- Wait for shutdown signal ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	zapLog.Info("shutdown signal received", zap.String("signal", sig.String()))

	cancel()

	drainCtx, drainCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer drainCancel()
	if err := pool.Shutdown(drainCtx); err != nil {
		zapLog.Warn("pool did not drain cleanly", zap.Error(err))
	}
	poolCancel()

	zapLog.Info("order scheduler stopped")
}
