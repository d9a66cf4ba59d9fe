package cashflow

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/amasa-erp/amasa-erp/internal/shared"
)

// MovementKind separates cash inflows from outflows.
type MovementKind string

const (
	KindIngreso MovementKind = "INGRESO"
	KindEgreso  MovementKind = "EGRESO"
)

// Movement is a dated cash movement. Amounts are stored positive; the
// kind determines the sign.
type Movement struct {
	ID          uuid.UUID
	Date        time.Time
	Description string
	Amount      float64
	Kind        MovementKind
}

// DocumentDate implements shared.Dated.
func (m Movement) DocumentDate() time.Time { return m.Date }

// Signed returns the movement amount with its cash-flow sign.
func (m Movement) Signed() float64 {
	if m.Kind == KindEgreso {
		return -m.Amount
	}
	return m.Amount
}

// FutureExpense is a user-entered projected outflow. It is redistributed
// into whichever month or day it falls into on the next projection pass.
type FutureExpense struct {
	ID          uuid.UUID
	Date        time.Time
	Description string
	Amount      float64
	CreatedAt   time.Time
}

// Movement converts the future expense into an expense movement.
func (f FutureExpense) Movement() Movement {
	return Movement{
		ID:          f.ID,
		Date:        f.Date,
		Description: f.Description,
		Amount:      f.Amount,
		Kind:        KindEgreso,
	}
}

// AddFutureExpenseInput groups fields for registering a future expense.
type AddFutureExpenseInput struct {
	Date        time.Time
	Description string
	Amount      float64
}

// Validate ensures the input is coherent.
func (in AddFutureExpenseInput) Validate() error {
	if in.Date.IsZero() {
		return errors.New("cashflow: date required")
	}
	if in.Description == "" {
		return errors.New("cashflow: description required")
	}
	if in.Amount <= 0 {
		return errors.New("cashflow: amount must be positive")
	}
	return nil
}

// SourceItem is one named income or expense line inside a monthly period.
type SourceItem struct {
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
}

// MonthlyPeriod is one month of the cash-flow projection. Every ending
// balance carries forward as the next period's starting balance.
type MonthlyPeriod struct {
	Month           time.Time    `json:"month"`
	Label           string       `json:"label"`
	StartingBalance float64      `json:"starting_balance"`
	Income          []SourceItem `json:"income"`
	Expenses        []SourceItem `json:"expenses"`
	TotalIncome     float64      `json:"total_income"`
	TotalExpense    float64      `json:"total_expense"`
	EndingBalance   float64      `json:"ending_balance"`
	Closed          bool         `json:"closed"`
}

// DailyBalance is one calendar-day sample of the running balance.
type DailyBalance struct {
	Date    time.Time `json:"date"`
	Income  float64   `json:"income"`
	Expense float64   `json:"expense"`
	Net     float64   `json:"net"`
	Balance float64   `json:"balance"`
}

// Settings anchors the projection: the month the chain starts at and the
// externally supplied seed balance for that first period.
type Settings struct {
	StartMonth  time.Time
	SeedBalance float64
}

// MonthLabel formats a month in the projection's canonical form.
func MonthLabel(t time.Time) string {
	return t.Format("2006-01")
}

var (
	// ErrPriorMonthOpen indicates an attempt to close a month while an
	// earlier one in the sequence is still open.
	ErrPriorMonthOpen = errors.New("cashflow: prior month must be closed first")
	// ErrMonthAlreadyClosed indicates the month is already closed.
	ErrMonthAlreadyClosed = errors.New("cashflow: month already closed")
	// ErrMonthBeforeStart indicates the month precedes the projection start.
	ErrMonthBeforeStart = errors.New("cashflow: month precedes projection start")
	// ErrFutureExpenseNotFound indicates the future expense could not be loaded.
	ErrFutureExpenseNotFound = fmt.Errorf("cashflow: future expense: %w", shared.ErrNotFound)
)
