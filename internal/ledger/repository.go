package ledger

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository provides PostgreSQL backed persistence for the ledger.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// CreateJournalEntry inserts the entry and its lines in one transaction.
func (r *Repository) CreateJournalEntry(ctx context.Context, entry JournalEntry) (JournalEntry, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return JournalEntry{}, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	const insertEntry = `
		INSERT INTO journal_entries (id, entry_date, memo, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING number`
	if err := tx.QueryRow(ctx, insertEntry, entry.ID, entry.Date, entry.Memo, entry.CreatedAt).Scan(&entry.Number); err != nil {
		return JournalEntry{}, err
	}

	const insertLine = `
		INSERT INTO journal_lines (journal_id, position, account, debit, credit)
		VALUES ($1, $2, $3, $4, $5)`
	for idx, line := range entry.Lines {
		if _, err := tx.Exec(ctx, insertLine, entry.ID, idx, line.Account, line.Debit, line.Credit); err != nil {
			return JournalEntry{}, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return JournalEntry{}, err
	}
	return entry, nil
}

// ListJournalEntries loads every entry with its lines ordered by date and
// line position.
func (r *Repository) ListJournalEntries(ctx context.Context) ([]JournalEntry, error) {
	const query = `
		SELECT e.id, e.number, e.entry_date, e.memo, e.created_at,
		       l.account, l.debit, l.credit
		FROM journal_entries e
		JOIN journal_lines l ON l.journal_id = e.id
		ORDER BY e.entry_date, e.number, l.position`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []JournalEntry
	index := make(map[int64]int)
	for rows.Next() {
		var entry JournalEntry
		var line JournalLine
		if err := rows.Scan(&entry.ID, &entry.Number, &entry.Date, &entry.Memo, &entry.CreatedAt,
			&line.Account, &line.Debit, &line.Credit); err != nil {
			return nil, err
		}
		pos, ok := index[entry.Number]
		if !ok {
			entries = append(entries, entry)
			pos = len(entries) - 1
			index[entry.Number] = pos
		}
		entries[pos].Lines = append(entries[pos].Lines, line)
	}
	return entries, rows.Err()
}

// AccountTypes loads the chart of accounts classification table.
func (r *Repository) AccountTypes(ctx context.Context) (map[string]AccountType, error) {
	rows, err := r.pool.Query(ctx, `SELECT account, account_type FROM ledger_accounts`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string]AccountType)
	for rows.Next() {
		var account string
		var accType AccountType
		if err := rows.Scan(&account, &accType); err != nil {
			return nil, err
		}
		out[account] = accType
	}
	return out, rows.Err()
}

// SetAccountType upserts an account classification.
func (r *Repository) SetAccountType(ctx context.Context, account string, accType AccountType) error {
	const query = `
		INSERT INTO ledger_accounts (account, account_type)
		VALUES ($1, $2)
		ON CONFLICT (account) DO UPDATE SET account_type = EXCLUDED.account_type`
	_, err := r.pool.Exec(ctx, query, account, accType)
	return err
}
