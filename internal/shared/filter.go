package shared

import "time"

// Dated is any record carrying a calendar date.
type Dated interface {
	DocumentDate() time.Time
}

// ByRange narrows dated records to those inside the inclusive range.
// An unbounded range returns the collection unchanged.
func ByRange[T Dated](items []T, r DateRange) []T {
	if r.IsZero() {
		return items
	}
	out := make([]T, 0, len(items))
	for _, item := range items {
		if r.Contains(item.DocumentDate()) {
			out = append(out, item)
		}
	}
	return out
}

// Where keeps items satisfying every predicate. With no predicates the
// collection is returned unchanged.
func Where[T any](items []T, preds ...func(T) bool) []T {
	if len(preds) == 0 {
		return items
	}
	out := make([]T, 0, len(items))
	for _, item := range items {
		keep := true
		for _, pred := range preds {
			if !pred(item) {
				keep = false
				break
			}
		}
		if keep {
			out = append(out, item)
		}
	}
	return out
}
