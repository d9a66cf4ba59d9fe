package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/amasa-erp/amasa-erp/internal/shared"
)

// RepositoryPort defines data access methods for the general ledger.
type RepositoryPort interface {
	CreateJournalEntry(ctx context.Context, entry JournalEntry) (JournalEntry, error)
	ListJournalEntries(ctx context.Context) ([]JournalEntry, error)
}

// ListRequest narrows journal listings. Zero fields match everything.
type ListRequest struct {
	Range   shared.DateRange
	Account string
}

// Service handles ledger business logic.
type Service struct {
	repo RepositoryPort
	now  func() time.Time
}

// NewService builds a Service instance.
func NewService(repo RepositoryPort) *Service {
	return &Service{repo: repo, now: time.Now}
}

// WithNow overrides the clock for deterministic tests.
func (s *Service) WithNow(now func() time.Time) {
	if now != nil {
		s.now = now
	}
}

// PostJournal validates and stores a new journal entry.
func (s *Service) PostJournal(ctx context.Context, input PostingInput) (JournalEntry, error) {
	if err := input.Validate(); err != nil {
		return JournalEntry{}, err
	}
	lines := make([]JournalLine, 0, len(input.Lines))
	for _, line := range input.Lines {
		lines = append(lines, JournalLine{Account: line.Account, Debit: line.Debit, Credit: line.Credit})
	}
	entry := JournalEntry{
		ID:        uuid.New(),
		Date:      shared.Day(input.Date),
		Memo:      input.Memo,
		Lines:     lines,
		CreatedAt: s.now(),
	}
	return s.repo.CreateJournalEntry(ctx, entry)
}

// ListEntries returns journal entries matching the request.
func (s *Service) ListEntries(ctx context.Context, req ListRequest) ([]JournalEntry, error) {
	entries, err := s.repo.ListJournalEntries(ctx)
	if err != nil {
		return nil, err
	}
	entries = shared.ByRange(entries, req.Range)
	if req.Account != "" {
		entries = shared.Where(entries, func(e JournalEntry) bool {
			for _, line := range e.Lines {
				if line.Account == req.Account {
					return true
				}
			}
			return false
		})
	}
	return entries, nil
}

// AccountTotals aggregates every journal line in the range into
// per-account debit/credit/balance totals.
func (s *Service) AccountTotals(ctx context.Context, r shared.DateRange) ([]AccountTotals, error) {
	entries, err := s.repo.ListJournalEntries(ctx)
	if err != nil {
		return nil, err
	}
	return AggregateAccounts(shared.ByRange(entries, r)), nil
}
