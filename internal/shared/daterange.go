package shared

import "time"

// DateRange is an inclusive calendar-date range. The zero value matches
// every date.
type DateRange struct {
	From time.Time
	To   time.Time
}

// NewDateRange builds a range from two dates. A zero "to" collapses the
// range to a single day.
func NewDateRange(from, to time.Time) DateRange {
	if to.IsZero() {
		to = from
	}
	return DateRange{From: Day(from), To: Day(to)}
}

// Day truncates a timestamp to its calendar date in UTC.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// IsZero reports whether the range is unbounded.
func (r DateRange) IsZero() bool {
	return r.From.IsZero() && r.To.IsZero()
}

// Contains reports whether t falls inside the range, inclusive on both ends.
func (r DateRange) Contains(t time.Time) bool {
	if r.IsZero() {
		return true
	}
	d := Day(t)
	if !r.From.IsZero() && d.Before(Day(r.From)) {
		return false
	}
	if !r.To.IsZero() && d.After(Day(r.To)) {
		return false
	}
	return true
}

// Days returns the inclusive number of calendar days covered by the range.
// An unbounded range has no meaningful day count and reports zero.
func (r DateRange) Days() int {
	if r.IsZero() || r.From.IsZero() || r.To.IsZero() {
		return 0
	}
	from, to := Day(r.From), Day(r.To)
	if to.Before(from) {
		return 0
	}
	return int(to.Sub(from).Hours()/24) + 1
}

// EachDay walks every calendar day in the range in chronological order.
func (r DateRange) EachDay(fn func(day time.Time)) {
	if r.IsZero() || r.From.IsZero() || r.To.IsZero() {
		return
	}
	for d := Day(r.From); !d.After(Day(r.To)); d = d.AddDate(0, 0, 1) {
		fn(d)
	}
}

// Months returns the first-of-month sequence covering the range.
func (r DateRange) Months() []time.Time {
	if r.IsZero() || r.From.IsZero() || r.To.IsZero() {
		return nil
	}
	first := time.Date(r.From.Year(), r.From.Month(), 1, 0, 0, 0, 0, time.UTC)
	last := time.Date(r.To.Year(), r.To.Month(), 1, 0, 0, 0, 0, time.UTC)
	var months []time.Time
	for m := first; !m.After(last); m = m.AddDate(0, 1, 0) {
		months = append(months, m)
	}
	return months
}

// MonthRange returns the inclusive date range spanned by the month of t.
func MonthRange(t time.Time) DateRange {
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)
	return DateRange{From: first, To: last}
}
