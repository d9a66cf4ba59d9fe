package analyticshttp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/amasa-erp/amasa-erp/internal/aging"
	"github.com/amasa-erp/amasa-erp/internal/analytics"
	"github.com/amasa-erp/amasa-erp/internal/analytics/export"
	"github.com/amasa-erp/amasa-erp/internal/cashflow"
	"github.com/amasa-erp/amasa-erp/internal/ledger/reports"
	"github.com/amasa-erp/amasa-erp/internal/shared"
)

var periodRegex = regexp.MustCompile(`^\d{4}-\d{2}$`)

const requestTimeout = 2 * time.Second

// ReportService is the dashboard data contract used by the handler.
type ReportService interface {
	GetDashboard(ctx context.Context, period string) (analytics.Dashboard, error)
	GetEightColumn(ctx context.Context, r shared.DateRange) (reports.EightColumnBalance, error)
	GetMonthlyCashflow(ctx context.Context, r shared.DateRange) ([]cashflow.MonthlyPeriod, error)
	GetARAging(ctx context.Context, asOf time.Time) (aging.Schedule, error)
	GetAPAging(ctx context.Context, asOf time.Time) (aging.Schedule, error)
}

// Handler coordinates HTTP requests for the management reports.
type Handler struct {
	logger  *slog.Logger
	service ReportService
	csvPool sync.Pool
	now     func() time.Time
}

// NewHandler constructs the reports HTTP handler.
func NewHandler(logger *slog.Logger, service ReportService) *Handler {
	h := &Handler{
		logger:  logger,
		service: service,
		now:     time.Now,
	}
	h.csvPool.New = func() interface{} { return new(bytes.Buffer) }
	return h
}

// WithNow overrides the handler clock for testing.
func (h *Handler) WithNow(fn func() time.Time) {
	if fn != nil {
		h.now = fn
	}
}

func (h *Handler) handleDashboard(w http.ResponseWriter, r *http.Request) {
	period, err := h.parsePeriod(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	dashboard, err := h.service.GetDashboard(ctx, period)
	if err != nil {
		h.handleServerError(w, "load dashboard", err)
		return
	}
	h.respondJSON(w, dashboard)
}

func (h *Handler) handleEightColumn(w http.ResponseWriter, r *http.Request) {
	rng, err := parseRange(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	balance, err := h.service.GetEightColumn(ctx, rng)
	if err != nil {
		h.handleServerError(w, "load eight column balance", err)
		return
	}
	h.respondJSON(w, balance)
}

func (h *Handler) handleAging(w http.ResponseWriter, r *http.Request, side string) {
	asOf := shared.Day(h.now())
	if raw := strings.TrimSpace(r.URL.Query().Get("as_of")); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			http.Error(w, "invalid as_of, expected YYYY-MM-DD", http.StatusBadRequest)
			return
		}
		asOf = parsed
	}
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	load := h.service.GetARAging
	if side == "ap" {
		load = h.service.GetAPAging
	}
	schedule, err := load(ctx, asOf)
	if err != nil {
		h.handleServerError(w, "load aging", err)
		return
	}
	h.respondJSON(w, map[string]any{
		"as_of":   asOf.Format("2006-01-02"),
		"buckets": schedule.Buckets(),
		"total":   schedule.Total(),
	})
}

func (h *Handler) handleCSV(w http.ResponseWriter, r *http.Request) {
	period, err := h.parsePeriod(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	month, err := time.Parse("2006-01", period)
	if err != nil {
		http.Error(w, "invalid period", http.StatusBadRequest)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	dashboard, err := h.service.GetDashboard(ctx, period)
	if err != nil {
		h.handleServerError(w, "load dashboard", err)
		return
	}
	periods, err := h.service.GetMonthlyCashflow(ctx, shared.MonthRange(month))
	if err != nil {
		h.handleServerError(w, "load cashflow", err)
		return
	}

	buf := h.csvPool.Get().(*bytes.Buffer)
	buf.Reset()
	defer func() {
		buf.Reset()
		h.csvPool.Put(buf)
	}()

	if err := export.WriteDashboardCSV(buf, dashboard); err != nil {
		h.handleServerError(w, "write dashboard csv", err)
		return
	}
	buf.WriteString("\n")
	if err := export.WriteMonthlyCashflowCSV(buf, periods); err != nil {
		h.handleServerError(w, "write cashflow csv", err)
		return
	}
	buf.WriteString("\n")
	if err := export.WriteAgingCSV(buf, "Por Cobrar", dashboard.ARAging); err != nil {
		h.handleServerError(w, "write ar aging csv", err)
		return
	}
	buf.WriteString("\n")
	if err := export.WriteAgingCSV(buf, "Por Pagar", dashboard.APAging); err != nil {
		h.handleServerError(w, "write ap aging csv", err)
		return
	}

	filename := fmt.Sprintf("informe-gestion-%s.csv", period)
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", filename))
	if _, err := w.Write(buf.Bytes()); err != nil {
		h.logError("stream csv", err)
	}
}

func (h *Handler) parsePeriod(r *http.Request) (string, error) {
	period := strings.TrimSpace(r.URL.Query().Get("period"))
	if period == "" {
		period = h.now().UTC().Format("2006-01")
	}
	if !periodRegex.MatchString(period) {
		return "", fmt.Errorf("invalid period, expected YYYY-MM")
	}
	if _, err := time.Parse("2006-01", period); err != nil {
		return "", fmt.Errorf("invalid period, expected YYYY-MM")
	}
	return period, nil
}

func (h *Handler) respondJSON(w http.ResponseWriter, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logError("encode response", err)
	}
}

func (h *Handler) handleServerError(w http.ResponseWriter, context string, err error) {
	h.logError(context, err)
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

func (h *Handler) logError(context string, err error) {
	if h.logger != nil {
		h.logger.Error(context, slog.Any("error", err))
	}
}

func parseRange(r *http.Request) (shared.DateRange, error) {
	fromStr := strings.TrimSpace(r.URL.Query().Get("from"))
	toStr := strings.TrimSpace(r.URL.Query().Get("to"))
	if fromStr == "" && toStr == "" {
		return shared.DateRange{}, nil
	}
	from, err := time.Parse("2006-01-02", fromStr)
	if err != nil {
		return shared.DateRange{}, fmt.Errorf("invalid from, expected YYYY-MM-DD")
	}
	if toStr == "" {
		return shared.NewDateRange(from, from), nil
	}
	to, err := time.Parse("2006-01-02", toStr)
	if err != nil {
		return shared.DateRange{}, fmt.Errorf("invalid to, expected YYYY-MM-DD")
	}
	if to.Before(from) {
		return shared.DateRange{}, shared.ErrInvalidRange
	}
	return shared.NewDateRange(from, to), nil
}
