package cashflowhttp

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

	"github.com/amasa-erp/amasa-erp/internal/cashflow"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func newTestRouter(t *testing.T) (*chi.Mux, *cashflow.MemoryRepository) {
	t.Helper()
	repo := cashflow.NewMemoryRepository(cashflow.Settings{
		StartMonth:  day(2025, 7, 1),
		SeedBalance: 5000000,
	})
	repo.AddMovement(cashflow.Movement{
		Date: day(2025, 7, 5), Description: "Ventas panadería", Amount: 3600000, Kind: cashflow.KindIngreso,
	})
	repo.AddMovement(cashflow.Movement{
		Date: day(2025, 7, 10), Description: "Sueldos", Amount: 4700000, Kind: cashflow.KindEgreso,
	})
	logger := slog.New(slog.NewTextHandler(bytes.NewBuffer(nil), nil))
	handler := NewHandler(logger, cashflow.NewService(repo))
	router := chi.NewRouter()
	handler.MountRoutes(router)
	return router, repo
}

func TestHandleMonthly(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/cashflow/monthly?from=2025-07-01&to=2025-08-31", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Periods []cashflow.MonthlyPeriod `json:"periods"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Periods, 2)
	require.Equal(t, 3900000.0, body.Periods[0].EndingBalance)
	require.Equal(t, 3900000.0, body.Periods[1].StartingBalance)
}

func TestHandleMonthlyRejectsBadRange(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/cashflow/monthly?from=2025-08-01&to=2025-07-01", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleDaily(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/cashflow/daily?from=2025-07-01&to=2025-07-31", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Days []cashflow.DailyBalance `json:"days"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Days, 31)
}

func TestHandleAddFutureExpense(t *testing.T) {
	router, _ := newTestRouter(t)

	payload := `{"date":"2025-08-20","description":"Mantención horno","amount":450000}`
	req := httptest.NewRequest(http.MethodPost, "/cashflow/future-expenses/", bytes.NewBufferString(payload))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code)

	invalid := `{"date":"2025-08-20","description":"Mantención horno","amount":-1}`
	req = httptest.NewRequest(http.MethodPost, "/cashflow/future-expenses/", bytes.NewBufferString(invalid))
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleDeleteFutureExpense(t *testing.T) {
	router, repo := newTestRouter(t)
	svc := cashflow.NewService(repo)
	expense, err := svc.AddFutureExpense(context.Background(), cashflow.AddFutureExpenseInput{
		Date: day(2025, 9, 10), Description: "Gas", Amount: 80000,
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodDelete, "/cashflow/future-expenses/"+expense.ID.String(), nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandleCloseMonthSequence(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/cashflow/closings/2025-08", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusConflict, rec.Code)

	req = httptest.NewRequest(http.MethodPost, "/cashflow/closings/2025-07", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	req = httptest.NewRequest(http.MethodPost, "/cashflow/closings/not-a-month", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}
