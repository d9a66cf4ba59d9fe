package cashflow

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryRepository keeps cash-flow state in memory for the demo backend
// and tests.
type MemoryRepository struct {
	mu        sync.RWMutex
	settings  Settings
	movements []Movement
	futures   map[uuid.UUID]FutureExpense
	closed    map[string]time.Time
}

// NewMemoryRepository constructs an in-memory repository anchored at the
// given settings.
func NewMemoryRepository(settings Settings) *MemoryRepository {
	return &MemoryRepository{
		settings: settings,
		futures:  make(map[uuid.UUID]FutureExpense),
		closed:   make(map[string]time.Time),
	}
}

// Settings returns the projection anchor.
func (r *MemoryRepository) Settings(ctx context.Context) (Settings, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.settings, nil
}

// AddMovement records a cash movement. Used when seeding demo data and
// by other modules feeding the projection.
func (r *MemoryRepository) AddMovement(mv Movement) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if mv.ID == uuid.Nil {
		mv.ID = uuid.New()
	}
	r.movements = append(r.movements, mv)
}

// ListMovements returns every recorded movement ordered by date.
func (r *MemoryRepository) ListMovements(ctx context.Context) ([]Movement, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Movement, len(r.movements))
	copy(out, r.movements)
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

// AddFutureExpense stores the future expense.
func (r *MemoryRepository) AddFutureExpense(ctx context.Context, expense FutureExpense) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.futures[expense.ID] = expense
	return nil
}

// ListFutureExpenses returns every future expense ordered by date.
func (r *MemoryRepository) ListFutureExpenses(ctx context.Context) ([]FutureExpense, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]FutureExpense, 0, len(r.futures))
	for _, f := range r.futures {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

// DeleteFutureExpense removes the future expense.
func (r *MemoryRepository) DeleteFutureExpense(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.futures[id]; !ok {
		return ErrFutureExpenseNotFound
	}
	delete(r.futures, id)
	return nil
}

// ClosedMonths returns the set of closed month labels.
func (r *MemoryRepository) ClosedMonths(ctx context.Context) (map[string]bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[string]bool, len(r.closed))
	for label := range r.closed {
		out[label] = true
	}
	return out, nil
}

// MarkMonthClosed flags the month as closed.
func (r *MemoryRepository) MarkMonthClosed(ctx context.Context, label string, closedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.closed[label]; ok {
		return ErrMonthAlreadyClosed
	}
	r.closed[label] = closedAt
	return nil
}
