package ap

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
)

// MemoryRepository keeps payable documents in memory for the demo backend
// and tests.
type MemoryRepository struct {
	mu        sync.RWMutex
	purchases map[uuid.UUID]PurchaseDocument
	fees      map[uuid.UUID]FeeDocument
}

// NewMemoryRepository constructs an empty in-memory repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		purchases: make(map[uuid.UUID]PurchaseDocument),
		fees:      make(map[uuid.UUID]FeeDocument),
	}
}

// CreatePurchase stores the document.
func (r *MemoryRepository) CreatePurchase(ctx context.Context, doc PurchaseDocument) (PurchaseDocument, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.purchases[doc.ID] = doc
	return doc, nil
}

// ListPurchases returns every purchase document ordered by issue date.
func (r *MemoryRepository) ListPurchases(ctx context.Context) ([]PurchaseDocument, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]PurchaseDocument, 0, len(r.purchases))
	for _, doc := range r.purchases {
		out = append(out, doc)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].IssueDate.Equal(out[j].IssueDate) {
			return out[i].Number < out[j].Number
		}
		return out[i].IssueDate.Before(out[j].IssueDate)
	})
	return out, nil
}

// UpdatePurchaseStatus transitions the stored document.
func (r *MemoryRepository) UpdatePurchaseStatus(ctx context.Context, id uuid.UUID, status DocumentStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	doc, ok := r.purchases[id]
	if !ok {
		return ErrDocumentNotFound
	}
	doc.Status = status
	r.purchases[id] = doc
	return nil
}

// CreateFee stores the fee document.
func (r *MemoryRepository) CreateFee(ctx context.Context, doc FeeDocument) (FeeDocument, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fees[doc.ID] = doc
	return doc, nil
}

// ListFees returns every fee document ordered by date.
func (r *MemoryRepository) ListFees(ctx context.Context) ([]FeeDocument, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]FeeDocument, 0, len(r.fees))
	for _, doc := range r.fees {
		out = append(out, doc)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}
