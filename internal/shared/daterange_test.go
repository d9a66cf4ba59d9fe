package shared

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNewDateRangeDefaultsToSingleDay(t *testing.T) {
	r := NewDateRange(date(2025, 7, 5), time.Time{})
	if !r.From.Equal(r.To) {
		t.Fatalf("expected single day range, got %v..%v", r.From, r.To)
	}
	if r.Days() != 1 {
		t.Fatalf("expected 1 day, got %d", r.Days())
	}
}

func TestDateRangeContainsInclusive(t *testing.T) {
	r := NewDateRange(date(2025, 7, 1), date(2025, 7, 31))
	if !r.Contains(date(2025, 7, 1)) || !r.Contains(date(2025, 7, 31)) {
		t.Fatal("range bounds must be inclusive")
	}
	if r.Contains(date(2025, 6, 30)) || r.Contains(date(2025, 8, 1)) {
		t.Fatal("dates outside the range must be excluded")
	}
	// Timestamps inside the last day still count.
	if !r.Contains(time.Date(2025, 7, 31, 23, 15, 0, 0, time.UTC)) {
		t.Fatal("intraday timestamp on the last day must be contained")
	}
}

func TestDateRangeZeroMatchesEverything(t *testing.T) {
	var r DateRange
	if !r.Contains(date(1999, 1, 1)) {
		t.Fatal("zero range must match any date")
	}
}

func TestDateRangeDays(t *testing.T) {
	r := NewDateRange(date(2025, 7, 1), date(2025, 7, 31))
	if r.Days() != 31 {
		t.Fatalf("expected 31 days, got %d", r.Days())
	}
}

func TestDateRangeEachDayCoversEveryDate(t *testing.T) {
	r := NewDateRange(date(2025, 2, 26), date(2025, 3, 2))
	var days []time.Time
	r.EachDay(func(d time.Time) { days = append(days, d) })
	if len(days) != r.Days() {
		t.Fatalf("expected %d days, got %d", r.Days(), len(days))
	}
	for i := 1; i < len(days); i++ {
		if days[i].Sub(days[i-1]) != 24*time.Hour {
			t.Fatalf("gap between %v and %v", days[i-1], days[i])
		}
	}
}

func TestDateRangeMonths(t *testing.T) {
	r := NewDateRange(date(2025, 11, 15), date(2026, 2, 3))
	months := r.Months()
	if len(months) != 4 {
		t.Fatalf("expected 4 months, got %d", len(months))
	}
	if months[0] != date(2025, 11, 1) || months[3] != date(2026, 2, 1) {
		t.Fatalf("unexpected month bounds: %v", months)
	}
}

func TestMonthRange(t *testing.T) {
	r := MonthRange(date(2025, 2, 14))
	if r.From != date(2025, 2, 1) || r.To != date(2025, 2, 28) {
		t.Fatalf("unexpected month range %v..%v", r.From, r.To)
	}
}
