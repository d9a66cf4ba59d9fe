package jobs

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"

	"github.com/amasa-erp/amasa-erp/internal/analytics"
)

// NewReportWarmupHandler returns the handler that primes the report
// cache. An empty period in the payload warms the current month.
func NewReportWarmupHandler(reports *analytics.Service, logger *slog.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		var payload ReportWarmupPayload
		if len(t.Payload()) > 0 {
			if err := json.Unmarshal(t.Payload(), &payload); err != nil {
				return asynq.SkipRetry
			}
		}
		period := payload.Period
		if period == "" {
			period = time.Now().UTC().Format("2006-01")
		}
		if _, err := reports.GetDashboard(ctx, period); err != nil {
			logger.Warn("report warmup", slog.String("period", period), slog.Any("error", err))
			return err
		}
		logger.Info("report warmup done", slog.String("period", period))
		return nil
	}
}

// NewCacheBumpHandler returns the handler that invalidates cached reports.
func NewCacheBumpHandler(reports *analytics.Service, logger *slog.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		if err := reports.Invalidate(ctx); err != nil {
			logger.Warn("cache bump", slog.Any("error", err))
			return err
		}
		return nil
	}
}
