package cashflow

import (
	"sort"

	"github.com/amasa-erp/amasa-erp/internal/shared"
)

// BuildMonthlyProjection folds movements into one period per calendar
// month of the range. The first period starts at seed; every other
// period starts at the previous period's ending balance. The whole
// chain is recomputed on each call, so movements recorded after a month
// was closed still shift that month's numbers.
func BuildMonthlyProjection(seed float64, r shared.DateRange, movements []Movement, closed map[string]bool) []MonthlyPeriod {
	months := r.Months()
	if len(months) == 0 {
		return nil
	}

	type bucket struct {
		income  map[string]float64
		expense map[string]float64
	}
	buckets := make(map[string]*bucket, len(months))
	for _, m := range months {
		buckets[MonthLabel(m)] = &bucket{
			income:  make(map[string]float64),
			expense: make(map[string]float64),
		}
	}
	for _, mv := range shared.ByRange(movements, r) {
		b, ok := buckets[MonthLabel(mv.Date)]
		if !ok {
			continue
		}
		if amount := mv.Signed(); amount < 0 {
			b.expense[mv.Description] -= amount
		} else {
			b.income[mv.Description] += amount
		}
	}

	periods := make([]MonthlyPeriod, 0, len(months))
	balance := seed
	for _, m := range months {
		label := MonthLabel(m)
		b := buckets[label]
		period := MonthlyPeriod{
			Month:           m,
			Label:           label,
			StartingBalance: balance,
			Income:          sourceItems(b.income),
			Expenses:        sourceItems(b.expense),
			Closed:          closed[label],
		}
		for _, item := range period.Income {
			period.TotalIncome += item.Amount
		}
		for _, item := range period.Expenses {
			period.TotalExpense += item.Amount
		}
		period.EndingBalance = period.StartingBalance + period.TotalIncome - period.TotalExpense
		balance = period.EndingBalance
		periods = append(periods, period)
	}
	return periods
}

func sourceItems(totals map[string]float64) []SourceItem {
	if len(totals) == 0 {
		return nil
	}
	items := make([]SourceItem, 0, len(totals))
	for name, amount := range totals {
		items = append(items, SourceItem{Name: name, Amount: amount})
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Name < items[j].Name })
	return items
}
