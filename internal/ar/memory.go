package ar

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
)

// MemoryRepository keeps invoices in memory for the demo backend and tests.
type MemoryRepository struct {
	mu       sync.RWMutex
	invoices map[uuid.UUID]Invoice
}

// NewMemoryRepository constructs an empty in-memory repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{invoices: make(map[uuid.UUID]Invoice)}
}

// CreateInvoice stores the invoice.
func (r *MemoryRepository) CreateInvoice(ctx context.Context, inv Invoice) (Invoice, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.invoices[inv.ID] = inv
	return inv, nil
}

// ListInvoices returns every invoice ordered by issue date.
func (r *MemoryRepository) ListInvoices(ctx context.Context) ([]Invoice, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Invoice, 0, len(r.invoices))
	for _, inv := range r.invoices {
		out = append(out, inv)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].IssueDate.Equal(out[j].IssueDate) {
			return out[i].Number < out[j].Number
		}
		return out[i].IssueDate.Before(out[j].IssueDate)
	})
	return out, nil
}

// UpdateInvoiceStatus transitions the stored invoice.
func (r *MemoryRepository) UpdateInvoiceStatus(ctx context.Context, id uuid.UUID, status InvoiceStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	inv, ok := r.invoices[id]
	if !ok {
		return ErrInvoiceNotFound
	}
	inv.Status = status
	r.invoices[id] = inv
	return nil
}
