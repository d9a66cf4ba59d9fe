package ledger

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepository keeps journal entries in memory. It backs the demo
// data backend and the test suites.
type MemoryRepository struct {
	mu         sync.RWMutex
	entries    []JournalEntry
	nextNumber int64
}

// NewMemoryRepository constructs an empty in-memory repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

// CreateJournalEntry stores the entry and assigns its sequence number.
func (r *MemoryRepository) CreateJournalEntry(ctx context.Context, entry JournalEntry) (JournalEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextNumber++
	entry.Number = r.nextNumber
	r.entries = append(r.entries, entry)
	return entry, nil
}

// ListJournalEntries returns a copy of every stored entry ordered by date.
func (r *MemoryRepository) ListJournalEntries(ctx context.Context) ([]JournalEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]JournalEntry, len(r.entries))
	copy(out, r.entries)
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date.Equal(out[j].Date) {
			return out[i].Number < out[j].Number
		}
		return out[i].Date.Before(out[j].Date)
	})
	return out, nil
}
