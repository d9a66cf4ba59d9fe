package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/amasa-erp/amasa-erp/internal/analytics"
	analyticshttp "github.com/amasa-erp/amasa-erp/internal/analytics/http"
	"github.com/amasa-erp/amasa-erp/internal/ap"
	"github.com/amasa-erp/amasa-erp/internal/app"
	"github.com/amasa-erp/amasa-erp/internal/ar"
	"github.com/amasa-erp/amasa-erp/internal/cashflow"
	cashflowhttp "github.com/amasa-erp/amasa-erp/internal/cashflow/http"
	"github.com/amasa-erp/amasa-erp/internal/ledger"
	"github.com/amasa-erp/amasa-erp/jobs"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping server startup")
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

	var (
		arRepo   ar.RepositoryPort
		apRepo   ap.RepositoryPort
		glRepo   ledger.RepositoryPort
		chart    ledger.ChartPort
		cashRepo cashflow.RepositoryPort
	)
	settings := cashflow.Settings{
		StartMonth:  cfg.ProjectionStart(),
		SeedBalance: cfg.ProjectionSeedBalance,
	}

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
		chart = ledger.NewMemoryChart(defaultChart())
		cashRepo = cashflow.NewMemoryRepository(settings)
	}

	redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.Warn("redis ping", slog.Any("error", err))
	}

	cache := analytics.NewCache(redisClient, cfg.CacheTTL)
	if err := cache.ListenForInvalidation(ctx, ""); err != nil {
		logger.Warn("cache invalidation listener", slog.Any("error", err))
	}

	arService := ar.NewService(arRepo)
	apService := ap.NewService(apRepo)
	glService := ledger.NewService(glRepo)
	cashService := cashflow.NewService(cashRepo)
	cashService.WithCache(cache)

	reportService := analytics.NewService(cache, arService, apService, cashService, glService, chart)

	redisOpts := asynq.RedisClientOpt{Addr: cfg.RedisAddr}
	inspector := asynq.NewInspector(redisOpts)
	defer func() {
		if err := inspector.Close(); err != nil {
			logger.Warn("inspector close", slog.Any("error", err))
		}
	}()
	jobClient, err := jobs.NewClient(redisOpts)
	if err != nil {
		logger.Error("jobs client", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := jobClient.Close(); err != nil {
			logger.Warn("jobs client close", slog.Any("error", err))
		}
	}()

	router := app.NewRouter(app.RouterParams{
		Logger:           logger,
		Config:           cfg,
		CashflowHandler:  cashflowhttp.NewHandler(logger, cashService),
		AnalyticsHandler: analyticshttp.NewHandler(logger, reportService),
		JobHandler:       jobs.NewHandler(inspector, jobClient, logger),
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}

// defaultChart seeds the demo backend with a minimal Chilean chart of
// accounts.
func defaultChart() map[string]ledger.AccountType {
	return map[string]ledger.AccountType{
		"Caja":                  ledger.TypeActivo,
		"Banco":                 ledger.TypeActivo,
		"Clientes":              ledger.TypeActivo,
		"Existencias":           ledger.TypeActivo,
		"Proveedores":           ledger.TypePasivo,
		"IVA Débito Fiscal":     ledger.TypePasivo,
		"IVA Crédito Fiscal":    ledger.TypeActivo,
		"Capital":               ledger.TypePatrimonio,
		"Ventas":                ledger.TypeGanancia,
		"Costo de Ventas":       ledger.TypePerdida,
		"Remuneraciones":        ledger.TypePerdida,
		"Gastos Generales":      ledger.TypePerdida,
		"Retención Honorarios":  ledger.TypePasivo,
		"Honorarios Pagados":    ledger.TypePerdida,
	}
}
