package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/amasa-erp/amasa-erp/internal/analytics"
	"github.com/amasa-erp/amasa-erp/internal/ap"
	"github.com/amasa-erp/amasa-erp/internal/app"
	"github.com/amasa-erp/amasa-erp/internal/ar"
	"github.com/amasa-erp/amasa-erp/internal/cashflow"
	"github.com/amasa-erp/amasa-erp/internal/ledger"
	"github.com/amasa-erp/amasa-erp/jobs"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping worker startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	if cfg.DataBackend != "postgres" {
		logger.Warn("worker requires the postgres backend, reports will be empty")
	}

	var (
		arRepo   ar.RepositoryPort
		apRepo   ap.RepositoryPort
		glRepo   ledger.RepositoryPort
		chart    ledger.ChartPort
		cashRepo cashflow.RepositoryPort
	)
	if cfg.DataBackend == "postgres" {
		pool, err := pgxpool.New(ctx, cfg.PGDSN)
		if err != nil {
			logger.Error("connect database", slog.Any("error", err))
			os.Exit(1)
		}
		defer pool.Close()
		glRepository := ledger.NewRepository(pool)
		arRepo = ar.NewRepository(pool)
		apRepo = ap.NewRepository(pool)
		glRepo = glRepository
		chart = glRepository
		cashRepo = cashflow.NewRepository(pool)
	} else {
		arRepo = ar.NewMemoryRepository()
		apRepo = ap.NewMemoryRepository()
		glRepo = ledger.NewMemoryRepository()
		chart = ledger.NewMemoryChart(nil)
		cashRepo = cashflow.NewMemoryRepository(cashflow.Settings{
			StartMonth:  cfg.ProjectionStart(),
			SeedBalance: cfg.ProjectionSeedBalance,
		})
	}

	redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	cache := analytics.NewCache(redisClient, cfg.CacheTTL)
	reportService := analytics.NewService(
		cache,
		ar.NewService(arRepo),
		ap.NewService(apRepo),
		cashflow.NewService(cashRepo),
		ledger.NewService(glRepo),
		chart,
	)

	warmupTask, err := jobs.NewReportWarmupTask(jobs.ReportWarmupPayload{})
	if err != nil {
		logger.Error("build warmup task", slog.Any("error", err))
		os.Exit(1)
	}

	worker, err := jobs.NewWorker(jobs.WorkerConfig{
		RedisOpts: asynq.RedisClientOpt{Addr: cfg.RedisAddr},
		Logger:    logger,
		Handlers: []jobs.TaskHandler{
			{Type: jobs.TaskReportWarmup, Handler: jobs.NewReportWarmupHandler(reportService, logger)},
			{Type: jobs.TaskCacheBump, Handler: jobs.NewCacheBumpHandler(reportService, logger)},
		},
		Cron: []jobs.CronRegistration{
			{Spec: "15 1 * * *", Task: warmupTask, Options: []asynq.Option{asynq.MaxRetry(3)}},
		},
	})
	if err != nil {
		logger.Error("init worker", slog.Any("error", err))
		os.Exit(1)
	}

	if err := worker.Run(ctx); err != nil && err != context.Canceled {
		logger.Error("worker run", slog.Any("error", err))
		os.Exit(1)
	}
}
