package analyticshttp

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/amasa-erp/amasa-erp/internal/aging"
	"github.com/amasa-erp/amasa-erp/internal/analytics"
	"github.com/amasa-erp/amasa-erp/internal/ar"
	"github.com/amasa-erp/amasa-erp/internal/cashflow"
	"github.com/amasa-erp/amasa-erp/internal/ledger/reports"
	"github.com/amasa-erp/amasa-erp/internal/shared"
)

type stubService struct {
	dashboard analytics.Dashboard
	balance   reports.EightColumnBalance
	periods   []cashflow.MonthlyPeriod
	schedule  aging.Schedule
}

func (s *stubService) GetDashboard(ctx context.Context, period string) (analytics.Dashboard, error) {
	return s.dashboard, nil
}

func (s *stubService) GetEightColumn(ctx context.Context, r shared.DateRange) (reports.EightColumnBalance, error) {
	return s.balance, nil
}

func (s *stubService) GetMonthlyCashflow(ctx context.Context, r shared.DateRange) ([]cashflow.MonthlyPeriod, error) {
	return s.periods, nil
}

func (s *stubService) GetARAging(ctx context.Context, asOf time.Time) (aging.Schedule, error) {
	return s.schedule, nil
}

func (s *stubService) GetAPAging(ctx context.Context, asOf time.Time) (aging.Schedule, error) {
	return s.schedule, nil
}

func newTestRouter(t *testing.T, svc *stubService) *chi.Mux {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(bytes.NewBuffer(nil), nil))
	handler := NewHandler(logger, svc)
	handler.WithNow(func() time.Time { return time.Date(2025, 7, 31, 12, 0, 0, 0, time.UTC) })
	router := chi.NewRouter()
	handler.MountRoutes(router)
	return router
}

func TestHandleDashboard(t *testing.T) {
	svc := &stubService{dashboard: analytics.Dashboard{
		Period: "2025-07",
		Sales:  ar.Totals{Net: 588235, Tax: 111765, Total: 700000},
	}}
	router := newTestRouter(t, svc)

	req := httptest.NewRequest(http.MethodGet, "/reports/dashboard?period=2025-07", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var body analytics.Dashboard
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, 700000.0, body.Sales.Total)
}

func TestHandleDashboardRejectsBadPeriod(t *testing.T) {
	router := newTestRouter(t, &stubService{})

	req := httptest.NewRequest(http.MethodGet, "/reports/dashboard?period=julio", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleAgingDefaultsToToday(t *testing.T) {
	svc := &stubService{schedule: aging.Schedule{Current: 100, Days60: 50}}
	router := newTestRouter(t, svc)

	req := httptest.NewRequest(http.MethodGet, "/reports/ar-aging", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		AsOf  string  `json:"as_of"`
		Total float64 `json:"total"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "2025-07-31", body.AsOf)
	require.Equal(t, 150.0, body.Total)
}

func TestHandleCSVExport(t *testing.T) {
	svc := &stubService{
		dashboard: analytics.Dashboard{Period: "2025-07", Sales: ar.Totals{Total: 700000}},
		periods:   []cashflow.MonthlyPeriod{{Label: "2025-07", EndingBalance: 3900000}},
	}
	router := newTestRouter(t, svc)

	req := httptest.NewRequest(http.MethodGet, "/reports/export.csv?period=2025-07", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Header().Get("Content-Type"), "text/csv")
	require.Contains(t, rec.Header().Get("Content-Disposition"), "informe-gestion-2025-07.csv")
	require.Contains(t, rec.Body.String(), "2025-07")
}

func TestHandleEightColumn(t *testing.T) {
	svc := &stubService{balance: reports.EightColumnBalance{
		Totals: reports.EightColumnTotals{Asset: 400000},
	}}
	router := newTestRouter(t, svc)

	req := httptest.NewRequest(http.MethodGet, "/reports/eight-column?from=2025-01-01&to=2025-12-31", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var body reports.EightColumnBalance
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, 400000.0, body.Totals.Asset)
}
