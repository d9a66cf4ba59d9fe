package cashflow

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/amasa-erp/amasa-erp/internal/shared"
)

// RepositoryPort defines data access methods for the cash-flow module.
type RepositoryPort interface {
	Settings(ctx context.Context) (Settings, error)
	ListMovements(ctx context.Context) ([]Movement, error)
	AddFutureExpense(ctx context.Context, expense FutureExpense) error
	ListFutureExpenses(ctx context.Context) ([]FutureExpense, error)
	DeleteFutureExpense(ctx context.Context, id uuid.UUID) error
	ClosedMonths(ctx context.Context) (map[string]bool, error)
	MarkMonthClosed(ctx context.Context, label string, closedAt time.Time) error
}

// CacheBumper invalidates derived report caches after a mutation.
type CacheBumper interface {
	Bump(ctx context.Context) error
}

// Service builds cash-flow projections and manages the closing sequence.
type Service struct {
	repo  RepositoryPort
	cache CacheBumper
	now   func() time.Time
}

// NewService builds a Service instance.
func NewService(repo RepositoryPort) *Service {
	return &Service{repo: repo, now: time.Now}
}

// WithCache attaches a cache invalidator bumped on every mutation.
func (s *Service) WithCache(cache CacheBumper) {
	s.cache = cache
}

// WithNow overrides the clock for deterministic tests.
func (s *Service) WithNow(now func() time.Time) {
	if now != nil {
		s.now = now
	}
}

// MonthlyProjection returns the month-by-month projection over the
// range. A zero range defaults to twelve months from the configured
// start. Future expenses are merged in as projected outflows.
func (s *Service) MonthlyProjection(ctx context.Context, r shared.DateRange) ([]MonthlyPeriod, error) {
	settings, err := s.repo.Settings(ctx)
	if err != nil {
		return nil, err
	}
	if r.IsZero() {
		from := shared.Day(settings.StartMonth)
		r = shared.NewDateRange(from, from.AddDate(0, 12, -1))
	}
	movements, err := s.allMovements(ctx)
	if err != nil {
		return nil, err
	}
	closed, err := s.repo.ClosedMonths(ctx)
	if err != nil {
		return nil, err
	}
	return BuildMonthlyProjection(settings.SeedBalance, r, movements, closed), nil
}

// DailyBalances samples the running balance once per calendar day of
// the range, starting from the projection seed.
func (s *Service) DailyBalances(ctx context.Context, r shared.DateRange) ([]DailyBalance, error) {
	settings, err := s.repo.Settings(ctx)
	if err != nil {
		return nil, err
	}
	if r.IsZero() {
		from := shared.Day(settings.StartMonth)
		r = shared.MonthRange(from)
	}
	movements, err := s.allMovements(ctx)
	if err != nil {
		return nil, err
	}
	return BuildDailyBalances(settings.SeedBalance, r, movements), nil
}

// AddFutureExpense registers a projected outflow.
func (s *Service) AddFutureExpense(ctx context.Context, input AddFutureExpenseInput) (FutureExpense, error) {
	if err := input.Validate(); err != nil {
		return FutureExpense{}, err
	}
	expense := FutureExpense{
		ID:          uuid.New(),
		Date:        shared.Day(input.Date),
		Description: input.Description,
		Amount:      input.Amount,
		CreatedAt:   s.now(),
	}
	if err := s.repo.AddFutureExpense(ctx, expense); err != nil {
		return FutureExpense{}, err
	}
	s.bump(ctx)
	return expense, nil
}

// ListFutureExpenses returns every registered future expense.
func (s *Service) ListFutureExpenses(ctx context.Context) ([]FutureExpense, error) {
	return s.repo.ListFutureExpenses(ctx)
}

// RemoveFutureExpense deletes a future expense.
func (s *Service) RemoveFutureExpense(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.DeleteFutureExpense(ctx, id); err != nil {
		return err
	}
	s.bump(ctx)
	return nil
}

// CloseMonth marks a month as closed. Months close strictly in
// sequence: every month from the projection start up to the previous
// one must already be closed. Closing is a status flag only; the
// month's numbers keep being recomputed from current movements.
func (s *Service) CloseMonth(ctx context.Context, month time.Time) error {
	settings, err := s.repo.Settings(ctx)
	if err != nil {
		return err
	}
	target := firstOfMonth(month)
	start := firstOfMonth(settings.StartMonth)
	if target.Before(start) {
		return ErrMonthBeforeStart
	}
	closed, err := s.repo.ClosedMonths(ctx)
	if err != nil {
		return err
	}
	label := MonthLabel(target)
	if closed[label] {
		return ErrMonthAlreadyClosed
	}
	if !target.Equal(start) {
		prev := target.AddDate(0, -1, 0)
		if !closed[MonthLabel(prev)] {
			return ErrPriorMonthOpen
		}
	}
	if err := s.repo.MarkMonthClosed(ctx, label, s.now()); err != nil {
		return err
	}
	s.bump(ctx)
	return nil
}

func (s *Service) allMovements(ctx context.Context) ([]Movement, error) {
	movements, err := s.repo.ListMovements(ctx)
	if err != nil {
		return nil, err
	}
	futures, err := s.repo.ListFutureExpenses(ctx)
	if err != nil {
		return nil, err
	}
	for _, f := range futures {
		movements = append(movements, f.Movement())
	}
	return movements, nil
}

func (s *Service) bump(ctx context.Context) {
	if s.cache != nil {
		_ = s.cache.Bump(ctx)
	}
}

func firstOfMonth(t time.Time) time.Time {
	d := shared.Day(t)
	return time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, time.UTC)
}
