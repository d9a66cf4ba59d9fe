package jobs

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/require"
)

type stubEnqueuer struct {
	calls    int
	payloads []ReportWarmupPayload
}

func (s *stubEnqueuer) EnqueueReportWarmup(_ context.Context, payload ReportWarmupPayload) (*asynq.TaskInfo, error) {
	s.calls++
	s.payloads = append(s.payloads, payload)
	return &asynq.TaskInfo{ID: "task-1", Queue: QueueDefault}, nil
}

func newTestRouter(enqueuer WarmupEnqueuer) chi.Router {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	handler := NewHandler(nil, enqueuer, logger)
	r := chi.NewRouter()
	r.Route("/jobs", handler.MountRoutes)
	return r
}

func TestWarmupEndpointEnqueues(t *testing.T) {
	enqueuer := &stubEnqueuer{}
	router := newTestRouter(enqueuer)

	req := httptest.NewRequest(http.MethodPost, "/jobs/warmup?period=2025-07", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusAccepted, rec.Code)
	require.Contains(t, rec.Body.String(), "task-1")
	require.Equal(t, 1, enqueuer.calls)
	require.Equal(t, "2025-07", enqueuer.payloads[0].Period)
}

func TestWarmupEndpointDefaultsPeriod(t *testing.T) {
	enqueuer := &stubEnqueuer{}
	router := newTestRouter(enqueuer)

	req := httptest.NewRequest(http.MethodPost, "/jobs/warmup", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusAccepted, rec.Code)
	require.Equal(t, "", enqueuer.payloads[0].Period)
}

func TestWarmupEndpointRejectsBadPeriod(t *testing.T) {
	enqueuer := &stubEnqueuer{}
	router := newTestRouter(enqueuer)

	req := httptest.NewRequest(http.MethodPost, "/jobs/warmup?period=julio", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Zero(t, enqueuer.calls)
}

func TestWarmupEndpointWithoutEnqueuer(t *testing.T) {
	router := newTestRouter(nil)

	req := httptest.NewRequest(http.MethodPost, "/jobs/warmup", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestHealthWithoutInspector(t *testing.T) {
	router := newTestRouter(&stubEnqueuer{})

	req := httptest.NewRequest(http.MethodGet, "/jobs/health", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"pending":0`)
}
