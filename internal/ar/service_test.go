package ar

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/amasa-erp/amasa-erp/internal/shared"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestCreateInvoiceDerivesNetAndTax(t *testing.T) {
	ctx := context.Background()
	svc := NewService(NewMemoryRepository())

	inv, err := svc.CreateInvoice(ctx, CreateInvoiceInput{
		Number:    "F-001",
		Client:    "Café Central",
		IssueDate: day(2025, 7, 5),
		Total:     800000,
	})
	require.NoError(t, err)
	require.Equal(t, 672269.0, inv.Net)
	require.Equal(t, 127731.0, inv.Tax)
	require.Equal(t, StatusPendiente, inv.Status)
	require.Equal(t, DocTypeFactura, inv.DocType)
	// Default term is 30 days.
	require.Equal(t, day(2025, 8, 4), inv.DueDate)
}

func TestCreateInvoiceNegativeTotalCreditNote(t *testing.T) {
	ctx := context.Background()
	svc := NewService(NewMemoryRepository())

	inv, err := svc.CreateInvoice(ctx, CreateInvoiceInput{
		Number:    "NC-001",
		Client:    "Café Central",
		DocType:   DocTypeNotaCredito,
		IssueDate: day(2025, 7, 25),
		Total:     -100000,
	})
	require.NoError(t, err)
	require.Equal(t, -84034.0, inv.Net)
	require.Equal(t, -15966.0, inv.Tax)
}

func TestCreateInvoiceRejectsMismatchedAmounts(t *testing.T) {
	ctx := context.Background()
	svc := NewService(NewMemoryRepository())

	_, err := svc.CreateInvoice(ctx, CreateInvoiceInput{
		Client:    "Café Central",
		IssueDate: day(2025, 7, 5),
		Net:       100,
		Tax:       19,
		Total:     200,
	})
	require.ErrorIs(t, err, ErrAmountsMismatch)
}

func TestCreateInvoiceRequiresClient(t *testing.T) {
	ctx := context.Background()
	svc := NewService(NewMemoryRepository())

	_, err := svc.CreateInvoice(ctx, CreateInvoiceInput{IssueDate: day(2025, 7, 5), Total: 1000})
	require.Error(t, err)
	require.Contains(t, err.Error(), "client required")
}

func TestTotalsJulyScenario(t *testing.T) {
	ctx := context.Background()
	svc := NewService(NewMemoryRepository())

	_, err := svc.CreateInvoice(ctx, CreateInvoiceInput{
		Number: "F-100", Client: "Café Central", IssueDate: day(2025, 7, 5), Total: 800000,
	})
	require.NoError(t, err)
	_, err = svc.CreateInvoice(ctx, CreateInvoiceInput{
		Number: "NC-101", Client: "Café Central", DocType: DocTypeNotaCredito,
		IssueDate: day(2025, 7, 25), Total: -100000,
	})
	require.NoError(t, err)
	// Outside the filter range.
	_, err = svc.CreateInvoice(ctx, CreateInvoiceInput{
		Number: "F-102", Client: "Café Central", IssueDate: day(2025, 8, 2), Total: 300000,
	})
	require.NoError(t, err)

	totals, err := svc.Totals(ctx, ListRequest{
		Range: shared.NewDateRange(day(2025, 7, 1), day(2025, 7, 31)),
	})
	require.NoError(t, err)
	require.Equal(t, 588235.0, totals.Net)
	require.Equal(t, 111765.0, totals.Tax)
	require.Equal(t, 700000.0, totals.Total)
}

func TestListInvoicesFilters(t *testing.T) {
	ctx := context.Background()
	svc := NewService(NewMemoryRepository())

	_, err := svc.CreateInvoice(ctx, CreateInvoiceInput{
		Number: "F-1", Client: "Café Central", IssueDate: day(2025, 7, 5), Total: 1000,
	})
	require.NoError(t, err)
	_, err = svc.CreateInvoice(ctx, CreateInvoiceInput{
		Number: "B-2", Client: "Almacén Sur", DocType: DocTypeBoleta, IssueDate: day(2025, 7, 6), Total: 2000,
	})
	require.NoError(t, err)

	all, err := svc.ListInvoices(ctx, ListRequest{})
	require.NoError(t, err)
	require.Len(t, all, 2)

	boletas, err := svc.ListInvoices(ctx, ListRequest{DocType: DocTypeBoleta})
	require.NoError(t, err)
	require.Len(t, boletas, 1)
	require.Equal(t, "Almacén Sur", boletas[0].Client)

	byClient, err := svc.ListInvoices(ctx, ListRequest{Client: "Café Central"})
	require.NoError(t, err)
	require.Len(t, byClient, 1)
}

func TestAgingBucketsOutstandingOnly(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()
	svc := NewService(repo)

	asOf := day(2025, 7, 31)
	mk := func(number string, due time.Time, total float64) Invoice {
		inv, err := svc.CreateInvoice(ctx, CreateInvoiceInput{
			Number: number, Client: "Café Central",
			IssueDate: due.AddDate(0, 0, -30), DueDate: due, Total: total,
		})
		require.NoError(t, err)
		return inv
	}

	mk("F-1", asOf.AddDate(0, 0, 10), 100)  // current
	mk("F-2", asOf.AddDate(0, 0, -30), 200) // boundary, lower bucket
	mk("F-3", asOf.AddDate(0, 0, -45), 300)
	paid := mk("F-4", asOf.AddDate(0, 0, -90), 400)
	require.NoError(t, svc.MarkPaid(ctx, paid.ID))

	schedule, err := svc.Aging(ctx, asOf)
	require.NoError(t, err)
	require.Equal(t, 100.0, schedule.Current)
	require.Equal(t, 200.0, schedule.Days30)
	require.Equal(t, 300.0, schedule.Days60)
	require.Equal(t, 0.0, schedule.Over60)
}

func TestMarkPaidTwiceRejected(t *testing.T) {
	ctx := context.Background()
	svc := NewService(NewMemoryRepository())

	inv, err := svc.CreateInvoice(ctx, CreateInvoiceInput{
		Number: "F-1", Client: "Café Central", IssueDate: day(2025, 7, 5), Total: 1000,
	})
	require.NoError(t, err)
	require.NoError(t, svc.MarkPaid(ctx, inv.ID))
	require.ErrorIs(t, svc.MarkPaid(ctx, inv.ID), ErrInvalidStatus)
}
