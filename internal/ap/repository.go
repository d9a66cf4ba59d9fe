package ap

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository provides PostgreSQL backed persistence for AP.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// CreatePurchase inserts a supplier document.
func (r *Repository) CreatePurchase(ctx context.Context, doc PurchaseDocument) (PurchaseDocument, error) {
	const query = `
		INSERT INTO ap_documents (
			id, number, supplier, doc_type, issue_date, due_date,
			net, tax, total, status, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.pool.Exec(ctx, query,
		doc.ID, doc.Number, doc.Supplier, doc.DocType, doc.IssueDate, doc.DueDate,
		doc.Net, doc.Tax, doc.Total, doc.Status, doc.CreatedAt, doc.UpdatedAt,
	)
	if err != nil {
		return PurchaseDocument{}, err
	}
	return doc, nil
}

// ListPurchases loads every purchase document ordered by issue date.
func (r *Repository) ListPurchases(ctx context.Context) ([]PurchaseDocument, error) {
	const query = `
		SELECT id, number, supplier, doc_type, issue_date, due_date,
		       net, tax, total, status, created_at, updated_at
		FROM ap_documents
		ORDER BY issue_date, number`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []PurchaseDocument
	for rows.Next() {
		var doc PurchaseDocument
		if err := rows.Scan(&doc.ID, &doc.Number, &doc.Supplier, &doc.DocType,
			&doc.IssueDate, &doc.DueDate, &doc.Net, &doc.Tax, &doc.Total,
			&doc.Status, &doc.CreatedAt, &doc.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, doc)
	}
	return out, rows.Err()
}

// UpdatePurchaseStatus transitions a stored document.
func (r *Repository) UpdatePurchaseStatus(ctx context.Context, id uuid.UUID, status DocumentStatus) error {
	const query = `UPDATE ap_documents SET status = $2, updated_at = NOW() WHERE id = $1 RETURNING id`
	var got uuid.UUID
	if err := r.pool.QueryRow(ctx, query, id, status).Scan(&got); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrDocumentNotFound
		}
		return err
	}
	return nil
}

// CreateFee inserts a boleta de honorarios.
func (r *Repository) CreateFee(ctx context.Context, doc FeeDocument) (FeeDocument, error) {
	const query = `
		INSERT INTO ap_fee_documents (
			id, number, issuer, fee_date, gross, retention, net, status, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.pool.Exec(ctx, query,
		doc.ID, doc.Number, doc.Issuer, doc.Date, doc.Gross, doc.Retention,
		doc.Net, doc.Status, doc.CreatedAt,
	)
	if err != nil {
		return FeeDocument{}, err
	}
	return doc, nil
}

// ListFees loads every fee document ordered by date.
func (r *Repository) ListFees(ctx context.Context) ([]FeeDocument, error) {
	const query = `
		SELECT id, number, issuer, fee_date, gross, retention, net, status, created_at
		FROM ap_fee_documents
		ORDER BY fee_date, number`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []FeeDocument
	for rows.Next() {
		var doc FeeDocument
		if err := rows.Scan(&doc.ID, &doc.Number, &doc.Issuer, &doc.Date,
			&doc.Gross, &doc.Retention, &doc.Net, &doc.Status, &doc.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, doc)
	}
	return out, rows.Err()
}
