package ledger

import (
	"math/rand"
	"testing"
	"time"
)

func entryOn(y int, m time.Month, d int, lines ...JournalLine) JournalEntry {
	return JournalEntry{
		Date:  time.Date(y, m, d, 0, 0, 0, 0, time.UTC),
		Lines: lines,
	}
}

func TestAggregateAccounts(t *testing.T) {
	entries := []JournalEntry{
		entryOn(2025, 7, 1,
			JournalLine{Account: "Caja", Debit: 800000},
			JournalLine{Account: "Ventas", Credit: 800000},
		),
		entryOn(2025, 7, 10,
			JournalLine{Account: "Harina", Debit: 120000},
			JournalLine{Account: "Caja", Credit: 120000},
		),
	}

	totals := AggregateAccounts(entries)
	if len(totals) != 3 {
		t.Fatalf("expected 3 accounts, got %d", len(totals))
	}
	byName := make(map[string]AccountTotals)
	for _, acc := range totals {
		byName[acc.Account] = acc
	}
	caja := byName["Caja"]
	if caja.Debit != 800000 || caja.Credit != 120000 || caja.Balance() != 680000 {
		t.Fatalf("unexpected Caja totals %+v", caja)
	}
	if byName["Ventas"].Balance() != -800000 {
		t.Fatalf("unexpected Ventas balance %v", byName["Ventas"].Balance())
	}
}

func TestAggregateAccountsOrderIndependent(t *testing.T) {
	entries := []JournalEntry{
		entryOn(2025, 1, 5, JournalLine{Account: "Caja", Debit: 100}, JournalLine{Account: "Ventas", Credit: 100}),
		entryOn(2025, 1, 6, JournalLine{Account: "Banco", Debit: 250}, JournalLine{Account: "Ventas", Credit: 250}),
		entryOn(2025, 1, 7, JournalLine{Account: "Harina", Debit: 40}, JournalLine{Account: "Caja", Credit: 40}),
		entryOn(2025, 1, 8, JournalLine{Account: "Caja", Debit: 15}, JournalLine{Account: "Banco", Credit: 15}),
	}
	want := AggregateAccounts(entries)

	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 20; i++ {
		shuffled := make([]JournalEntry, len(entries))
		copy(shuffled, entries)
		rng.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })

		got := AggregateAccounts(shuffled)
		if len(got) != len(want) {
			t.Fatalf("permutation %d: account count changed", i)
		}
		for j := range want {
			if got[j] != want[j] {
				t.Fatalf("permutation %d: totals differ at %s: %+v vs %+v", i, want[j].Account, got[j], want[j])
			}
		}
	}
}

func TestAggregateAccountsEmpty(t *testing.T) {
	if totals := AggregateAccounts(nil); len(totals) != 0 {
		t.Fatalf("expected no totals, got %v", totals)
	}
}
