package ledger

import "sort"

// AccountTotals accumulates debit and credit per account name.
type AccountTotals struct {
	Account string  `json:"account"`
	Debit   float64 `json:"debit"`
	Credit  float64 `json:"credit"`
}

// Balance is the signed account balance, debit minus credit.
func (t AccountTotals) Balance() float64 {
	return t.Debit - t.Credit
}

// AggregateAccounts folds every journal line into a per-account
// accumulator keyed by account name. The fold is commutative and
// associative: feeding entries in any order yields identical totals.
// Output is sorted by account name.
func AggregateAccounts(entries []JournalEntry) []AccountTotals {
	byAccount := make(map[string]*AccountTotals)
	for _, entry := range entries {
		for _, line := range entry.Lines {
			acc, ok := byAccount[line.Account]
			if !ok {
				acc = &AccountTotals{Account: line.Account}
				byAccount[line.Account] = acc
			}
			acc.Debit += line.Debit
			acc.Credit += line.Credit
		}
	}
	out := make([]AccountTotals, 0, len(byAccount))
	for _, acc := range byAccount {
		out = append(out, *acc)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Account < out[j].Account })
	return out
}
