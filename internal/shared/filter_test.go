package shared

import (
	"testing"
	"time"
)

type doc struct {
	Date   time.Time
	Issuer string
}

func (d doc) DocumentDate() time.Time { return d.Date }

func TestByRangeNarrowsToRange(t *testing.T) {
	docs := []doc{
		{Date: date(2025, 7, 5), Issuer: "a"},
		{Date: date(2025, 7, 25), Issuer: "b"},
		{Date: date(2025, 8, 1), Issuer: "a"},
	}
	got := ByRange(docs, NewDateRange(date(2025, 7, 1), date(2025, 7, 31)))
	if len(got) != 2 {
		t.Fatalf("expected 2 docs, got %d", len(got))
	}
}

func TestByRangeIdentityWhenUnbounded(t *testing.T) {
	docs := []doc{{Date: date(2025, 7, 5)}, {Date: date(2025, 8, 1)}}
	got := ByRange(docs, DateRange{})
	if len(got) != len(docs) {
		t.Fatalf("unbounded range must return the collection unchanged, got %d", len(got))
	}
	if &got[0] != &docs[0] {
		t.Fatal("expected the original slice back")
	}
}

func TestWhereConjunction(t *testing.T) {
	docs := []doc{
		{Date: date(2025, 7, 5), Issuer: "a"},
		{Date: date(2025, 7, 25), Issuer: "b"},
		{Date: date(2025, 7, 26), Issuer: "a"},
	}
	got := Where(docs,
		func(d doc) bool { return d.Issuer == "a" },
		func(d doc) bool { return d.Date.Day() > 10 },
	)
	if len(got) != 1 || got[0].Date.Day() != 26 {
		t.Fatalf("unexpected result %v", got)
	}
}

func TestWhereIdentityWithoutPredicates(t *testing.T) {
	docs := []doc{{Issuer: "a"}, {Issuer: "b"}}
	got := Where(docs)
	if &got[0] != &docs[0] {
		t.Fatal("no predicates must return the collection unchanged")
	}
}
