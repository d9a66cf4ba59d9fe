package ar

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository provides PostgreSQL backed persistence for AR.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// CreateInvoice inserts a sales invoice.
func (r *Repository) CreateInvoice(ctx context.Context, inv Invoice) (Invoice, error) {
	const query = `
		INSERT INTO ar_invoices (
			id, number, client, doc_type, issue_date, due_date,
			net, tax, total, status, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.pool.Exec(ctx, query,
		inv.ID, inv.Number, inv.Client, inv.DocType, inv.IssueDate, inv.DueDate,
		inv.Net, inv.Tax, inv.Total, inv.Status, inv.CreatedAt, inv.UpdatedAt,
	)
	if err != nil {
		return Invoice{}, err
	}
	return inv, nil
}

// ListInvoices loads every invoice ordered by issue date.
func (r *Repository) ListInvoices(ctx context.Context) ([]Invoice, error) {
	const query = `
		SELECT id, number, client, doc_type, issue_date, due_date,
		       net, tax, total, status, created_at, updated_at
		FROM ar_invoices
		ORDER BY issue_date, number`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Invoice
	for rows.Next() {
		var inv Invoice
		if err := rows.Scan(&inv.ID, &inv.Number, &inv.Client, &inv.DocType,
			&inv.IssueDate, &inv.DueDate, &inv.Net, &inv.Tax, &inv.Total,
			&inv.Status, &inv.CreatedAt, &inv.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, inv)
	}
	return out, rows.Err()
}

// UpdateInvoiceStatus transitions a stored invoice.
func (r *Repository) UpdateInvoiceStatus(ctx context.Context, id uuid.UUID, status InvoiceStatus) error {
	const query = `UPDATE ar_invoices SET status = $2, updated_at = NOW() WHERE id = $1 RETURNING id`
	var got uuid.UUID
	if err := r.pool.QueryRow(ctx, query, id, status).Scan(&got); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrInvoiceNotFound
		}
		return err
	}
	return nil
}
