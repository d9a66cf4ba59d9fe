package cashflow

import (
	"time"

	"github.com/amasa-erp/amasa-erp/internal/shared"
)

// BuildDailyBalances produces exactly one sample per calendar day of the
// range, days without movements included. The balance carries forward
// from opening through every day in order.
func BuildDailyBalances(opening float64, r shared.DateRange, movements []Movement) []DailyBalance {
	if r.IsZero() {
		return nil
	}

	type daily struct{ income, expense float64 }
	byDay := make(map[string]*daily)
	for _, mv := range shared.ByRange(movements, r) {
		key := shared.Day(mv.Date).Format("2006-01-02")
		d, ok := byDay[key]
		if !ok {
			d = &daily{}
			byDay[key] = d
		}
		if amount := mv.Signed(); amount < 0 {
			d.expense -= amount
		} else {
			d.income += amount
		}
	}

	out := make([]DailyBalance, 0, r.Days())
	balance := opening
	r.EachDay(func(day time.Time) {
		sample := DailyBalance{Date: day}
		if d, ok := byDay[day.Format("2006-01-02")]; ok {
			sample.Income = d.income
			sample.Expense = d.expense
		}
		sample.Net = sample.Income - sample.Expense
		balance += sample.Net
		sample.Balance = balance
		out = append(out, sample)
	})
	return out
}
