package ledger

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/amasa-erp/amasa-erp/internal/shared"
)

func TestPostJournal(t *testing.T) {
	ctx := context.Background()
	svc := NewService(NewMemoryRepository())
	svc.WithNow(func() time.Time { return time.Date(2025, 7, 1, 10, 0, 0, 0, time.UTC) })

	entry, err := svc.PostJournal(ctx, PostingInput{
		Date: time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
		Memo: "Venta del día",
		Lines: []PostingLineInput{
			{Account: "Caja", Debit: 800000},
			{Account: "Ventas", Credit: 672269},
			{Account: "IVA Débito", Credit: 127731},
		},
	})
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, entry.ID)
	require.Equal(t, int64(1), entry.Number)
	require.Len(t, entry.Lines, 3)
}

func TestPostJournalRejectsUnbalanced(t *testing.T) {
	ctx := context.Background()
	svc := NewService(NewMemoryRepository())

	_, err := svc.PostJournal(ctx, PostingInput{
		Date: time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
		Lines: []PostingLineInput{
			{Account: "Caja", Debit: 1000},
			{Account: "Ventas", Credit: 900},
		},
	})
	require.ErrorIs(t, err, ErrUnbalanced)
}

func TestPostJournalRejectsSingleLine(t *testing.T) {
	ctx := context.Background()
	svc := NewService(NewMemoryRepository())

	_, err := svc.PostJournal(ctx, PostingInput{
		Date:  time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
		Lines: []PostingLineInput{{Account: "Caja", Debit: 1000}},
	})
	require.ErrorIs(t, err, ErrTooFewLines)
}

func TestListEntriesFiltersByRangeAndAccount(t *testing.T) {
	ctx := context.Background()
	svc := NewService(NewMemoryRepository())

	post := func(day int, account string) {
		_, err := svc.PostJournal(ctx, PostingInput{
			Date: time.Date(2025, 7, day, 0, 0, 0, 0, time.UTC),
			Lines: []PostingLineInput{
				{Account: account, Debit: 100},
				{Account: "Caja", Credit: 100},
			},
		})
		require.NoError(t, err)
	}
	post(5, "Harina")
	post(25, "Levadura")

	all, err := svc.ListEntries(ctx, ListRequest{})
	require.NoError(t, err)
	require.Len(t, all, 2)

	july := shared.NewDateRange(
		time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 7, 10, 0, 0, 0, 0, time.UTC),
	)
	early, err := svc.ListEntries(ctx, ListRequest{Range: july})
	require.NoError(t, err)
	require.Len(t, early, 1)

	flour, err := svc.ListEntries(ctx, ListRequest{Account: "Harina"})
	require.NoError(t, err)
	require.Len(t, flour, 1)
}

func TestAccountTotalsScopedToRange(t *testing.T) {
	ctx := context.Background()
	svc := NewService(NewMemoryRepository())

	_, err := svc.PostJournal(ctx, PostingInput{
		Date: time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC),
		Lines: []PostingLineInput{
			{Account: "Caja", Debit: 500},
			{Account: "Ventas", Credit: 500},
		},
	})
	require.NoError(t, err)
	_, err = svc.PostJournal(ctx, PostingInput{
		Date: time.Date(2025, 7, 2, 0, 0, 0, 0, time.UTC),
		Lines: []PostingLineInput{
			{Account: "Caja", Debit: 300},
			{Account: "Ventas", Credit: 300},
		},
	})
	require.NoError(t, err)

	july := shared.NewDateRange(
		time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 7, 31, 0, 0, 0, 0, time.UTC),
	)
	totals, err := svc.AccountTotals(ctx, july)
	require.NoError(t, err)
	require.Len(t, totals, 2)
	require.Equal(t, 300.0, totals[0].Debit) // Caja sorts first
}
