package aging

import (
	"time"

	"github.com/amasa-erp/amasa-erp/internal/shared"
)

// Bucket labels ordered from not-yet-due to most overdue. Thresholds are
// fixed at 0, 30 and 60 days; day 30 and day 60 belong to the lower bucket.
const (
	BucketCurrent = "Corriente"
	Bucket0To30   = "0-30 Días"
	Bucket31To60  = "31-60 Días"
	BucketOver60  = ">60 Días"
)

// Labels returns the bucket labels in presentation order.
func Labels() []string {
	return []string{BucketCurrent, Bucket0To30, Bucket31To60, BucketOver60}
}

// DaysOverdue counts calendar days elapsed since the due date.
// Negative when the document is not yet due.
func DaysOverdue(due, asOf time.Time) int {
	return int(shared.Day(asOf).Sub(shared.Day(due)).Hours() / 24)
}

// Classify places a due date into one of the four aging buckets as of a
// reference date. Documents not yet due clamp into Corriente.
func Classify(due, asOf time.Time) string {
	days := DaysOverdue(due, asOf)
	switch {
	case days <= 0:
		return BucketCurrent
	case days <= 30:
		return Bucket0To30
	case days <= 60:
		return Bucket31To60
	default:
		return BucketOver60
	}
}

// BucketAmount pairs a bucket label with its accumulated amount.
type BucketAmount struct {
	Bucket string  `json:"bucket"`
	Amount float64 `json:"amount"`
}

// Schedule accumulates amounts per aging bucket.
type Schedule struct {
	Current float64 `json:"current"`
	Days30  float64 `json:"days_30"`
	Days60  float64 `json:"days_60"`
	Over60  float64 `json:"over_60"`
}

// Add classifies the due date and accumulates the amount into its bucket.
func (s *Schedule) Add(due, asOf time.Time, amount float64) {
	switch Classify(due, asOf) {
	case BucketCurrent:
		s.Current += amount
	case Bucket0To30:
		s.Days30 += amount
	case Bucket31To60:
		s.Days60 += amount
	default:
		s.Over60 += amount
	}
}

// Total sums every bucket.
func (s Schedule) Total() float64 {
	return s.Current + s.Days30 + s.Days60 + s.Over60
}

// Buckets returns the schedule as ordered label/amount pairs.
func (s Schedule) Buckets() []BucketAmount {
	return []BucketAmount{
		{Bucket: BucketCurrent, Amount: s.Current},
		{Bucket: Bucket0To30, Amount: s.Days30},
		{Bucket: Bucket31To60, Amount: s.Days60},
		{Bucket: BucketOver60, Amount: s.Over60},
	}
}
