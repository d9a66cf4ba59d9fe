package cashflow

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository provides PostgreSQL backed persistence for cash flow.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Settings loads the projection anchor. The table holds a single row.
func (r *Repository) Settings(ctx context.Context) (Settings, error) {
	const query = `SELECT start_month, seed_balance FROM cashflow_settings LIMIT 1`
	var s Settings
	if err := r.pool.QueryRow(ctx, query).Scan(&s.StartMonth, &s.SeedBalance); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Settings{}, nil
		}
		return Settings{}, err
	}
	return s, nil
}

// ListMovements loads every cash movement ordered by date.
func (r *Repository) ListMovements(ctx context.Context) ([]Movement, error) {
	const query = `
		SELECT id, movement_date, description, amount, kind
		FROM cashflow_movements
		ORDER BY movement_date, description`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Movement
	for rows.Next() {
		var mv Movement
		if err := rows.Scan(&mv.ID, &mv.Date, &mv.Description, &mv.Amount, &mv.Kind); err != nil {
			return nil, err
		}
		out = append(out, mv)
	}
	return out, rows.Err()
}

// AddFutureExpense inserts a projected outflow.
func (r *Repository) AddFutureExpense(ctx context.Context, expense FutureExpense) error {
	const query = `
		INSERT INTO cashflow_future_expenses (id, expense_date, description, amount, created_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.pool.Exec(ctx, query,
		expense.ID, expense.Date, expense.Description, expense.Amount, expense.CreatedAt)
	return err
}

// ListFutureExpenses loads every future expense ordered by date.
func (r *Repository) ListFutureExpenses(ctx context.Context) ([]FutureExpense, error) {
	const query = `
		SELECT id, expense_date, description, amount, created_at
		FROM cashflow_future_expenses
		ORDER BY expense_date, description`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []FutureExpense
	for rows.Next() {
		var f FutureExpense
		if err := rows.Scan(&f.ID, &f.Date, &f.Description, &f.Amount, &f.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

// DeleteFutureExpense removes the future expense.
func (r *Repository) DeleteFutureExpense(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM cashflow_future_expenses WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrFutureExpenseNotFound
	}
	return nil
}

// ClosedMonths loads the set of closed month labels.
func (r *Repository) ClosedMonths(ctx context.Context) (map[string]bool, error) {
	rows, err := r.pool.Query(ctx, `SELECT month_label FROM cashflow_closings`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string]bool)
	for rows.Next() {
		var label string
		if err := rows.Scan(&label); err != nil {
			return nil, err
		}
		out[label] = true
	}
	return out, rows.Err()
}

// MarkMonthClosed records the closing. The primary key on month_label
// makes a double close fail loudly.
func (r *Repository) MarkMonthClosed(ctx context.Context, label string, closedAt time.Time) error {
	const query = `INSERT INTO cashflow_closings (month_label, closed_at) VALUES ($1, $2)`
	if _, err := r.pool.Exec(ctx, query, label, closedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrMonthAlreadyClosed
		}
		return err
	}
	return nil
}
