package cashflowhttp

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/amasa-erp/amasa-erp/internal/cashflow"
	"github.com/amasa-erp/amasa-erp/internal/shared"
)

var monthRegex = regexp.MustCompile(`^\d{4}-\d{2}$`)

const requestTimeout = 2 * time.Second

type cashflowService interface {
	MonthlyProjection(ctx context.Context, r shared.DateRange) ([]cashflow.MonthlyPeriod, error)
	DailyBalances(ctx context.Context, r shared.DateRange) ([]cashflow.DailyBalance, error)
	AddFutureExpense(ctx context.Context, input cashflow.AddFutureExpenseInput) (cashflow.FutureExpense, error)
	ListFutureExpenses(ctx context.Context) ([]cashflow.FutureExpense, error)
	RemoveFutureExpense(ctx context.Context, id uuid.UUID) error
	CloseMonth(ctx context.Context, month time.Time) error
}

// Handler exposes the cash-flow projection over HTTP.
type Handler struct {
	logger   *slog.Logger
	service  cashflowService
	validate *validator.Validate
}

// NewHandler constructs a cash-flow HTTP handler.
func NewHandler(logger *slog.Logger, service cashflowService) *Handler {
	return &Handler{
		logger:   logger,
		service:  service,
		validate: validator.New(),
	}
}

// MountRoutes registers cash-flow endpoints onto the router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Route("/cashflow", func(r chi.Router) {
		r.Get("/monthly", h.handleMonthly)
		r.Get("/daily", h.handleDaily)
		r.Post("/closings/{month}", h.handleCloseMonth)
		r.Route("/future-expenses", func(r chi.Router) {
			r.Get("/", h.handleListFutureExpenses)
			r.Post("/", h.handleAddFutureExpense)
			r.Delete("/{id}", h.handleDeleteFutureExpense)
		})
	})
}

func (h *Handler) handleMonthly(w http.ResponseWriter, r *http.Request) {
	rng, err := parseRange(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	periods, err := h.service.MonthlyProjection(ctx, rng)
	if err != nil {
		h.handleServerError(w, "monthly projection", err)
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]any{"periods": periods})
}

func (h *Handler) handleDaily(w http.ResponseWriter, r *http.Request) {
	rng, err := parseRange(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	days, err := h.service.DailyBalances(ctx, rng)
	if err != nil {
		h.handleServerError(w, "daily balances", err)
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]any{"days": days})
}

type futureExpenseRequest struct {
	Date        string  `json:"date" validate:"required,datetime=2006-01-02"`
	Description string  `json:"description" validate:"required,min=1,max=200"`
	Amount      float64 `json:"amount" validate:"required,gt=0"`
}

func (h *Handler) handleAddFutureExpense(w http.ResponseWriter, r *http.Request) {
	var req futureExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json body", http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		http.Error(w, "invalid date", http.StatusBadRequest)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	expense, err := h.service.AddFutureExpense(ctx, cashflow.AddFutureExpenseInput{
		Date:        date,
		Description: req.Description,
		Amount:      req.Amount,
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}
	h.respondJSON(w, http.StatusCreated, map[string]any{
		"id":          expense.ID,
		"date":        expense.Date.Format("2006-01-02"),
		"description": expense.Description,
		"amount":      expense.Amount,
	})
}

func (h *Handler) handleListFutureExpenses(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	expenses, err := h.service.ListFutureExpenses(ctx)
	if err != nil {
		h.handleServerError(w, "list future expenses", err)
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]any{"expenses": expenses})
}

func (h *Handler) handleDeleteFutureExpense(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	if err := h.service.RemoveFutureExpense(ctx, id); err != nil {
		if errors.Is(err, cashflow.ErrFutureExpenseNotFound) {
			http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
			return
		}
		h.handleServerError(w, "delete future expense", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleCloseMonth(w http.ResponseWriter, r *http.Request) {
	raw := strings.TrimSpace(chi.URLParam(r, "month"))
	if !monthRegex.MatchString(raw) {
		http.Error(w, "invalid month, expected YYYY-MM", http.StatusBadRequest)
		return
	}
	month, err := time.Parse("2006-01", raw)
	if err != nil {
		http.Error(w, "invalid month, expected YYYY-MM", http.StatusBadRequest)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	switch err := h.service.CloseMonth(ctx, month); {
	case err == nil:
		h.respondJSON(w, http.StatusOK, map[string]any{"month": raw, "closed": true})
	case errors.Is(err, cashflow.ErrPriorMonthOpen),
		errors.Is(err, cashflow.ErrMonthAlreadyClosed),
		errors.Is(err, cashflow.ErrMonthBeforeStart):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		h.handleServerError(w, "close month", err)
	}
}

func (h *Handler) respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
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
		return shared.DateRange{}, errors.New("invalid from, expected YYYY-MM-DD")
	}
	if toStr == "" {
		return shared.NewDateRange(from, from), nil
	}
	to, err := time.Parse("2006-01-02", toStr)
	if err != nil {
		return shared.DateRange{}, errors.New("invalid to, expected YYYY-MM-DD")
	}
	if to.Before(from) {
		return shared.DateRange{}, shared.ErrInvalidRange
	}
	return shared.NewDateRange(from, to), nil
}
