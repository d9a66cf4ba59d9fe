package ar

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/amasa-erp/amasa-erp/internal/aging"
	"github.com/amasa-erp/amasa-erp/internal/shared"
)

// RepositoryPort defines data access methods for AR.
type RepositoryPort interface {
	CreateInvoice(ctx context.Context, inv Invoice) (Invoice, error)
	ListInvoices(ctx context.Context) ([]Invoice, error)
	UpdateInvoiceStatus(ctx context.Context, id uuid.UUID, status InvoiceStatus) error
}

// ListRequest narrows invoice listings. Zero fields match everything.
type ListRequest struct {
	Range   shared.DateRange
	Client  string
	DocType string
	Status  InvoiceStatus
}

// Service handles AR business logic.
type Service struct {
	repo RepositoryPort
	now  func() time.Time
}

// NewService builds a Service instance.
func NewService(repo RepositoryPort) *Service {
	return &Service{repo: repo, now: time.Now}
}

// WithNow overrides the clock for deterministic tests.
func (s *Service) WithNow(now func() time.Time) {
	if now != nil {
		s.now = now
	}
}

// CreateInvoice validates and stores a new sales document.
func (s *Service) CreateInvoice(ctx context.Context, input CreateInvoiceInput) (Invoice, error) {
	if err := input.Validate(); err != nil {
		return Invoice{}, err
	}
	net, tax := input.Net, input.Tax
	if net == 0 && tax == 0 {
		net, tax = BreakdownFromTotal(input.Total)
	}
	docType := input.DocType
	if docType == "" {
		docType = DocTypeFactura
	}
	dueDate := input.DueDate
	if dueDate.IsZero() {
		dueDate = shared.Day(input.IssueDate).AddDate(0, 0, 30)
	}
	now := s.now()
	inv := Invoice{
		ID:        uuid.New(),
		Number:    input.Number,
		Client:    input.Client,
		DocType:   docType,
		IssueDate: shared.Day(input.IssueDate),
		DueDate:   shared.Day(dueDate),
		Net:       net,
		Tax:       tax,
		Total:     input.Total,
		Status:    StatusPendiente,
		CreatedAt: now,
		UpdatedAt: now,
	}
	return s.repo.CreateInvoice(ctx, inv)
}

// ListInvoices returns invoices matching the request filters.
func (s *Service) ListInvoices(ctx context.Context, req ListRequest) ([]Invoice, error) {
	invoices, err := s.repo.ListInvoices(ctx)
	if err != nil {
		return nil, err
	}
	invoices = shared.ByRange(invoices, req.Range)
	var preds []func(Invoice) bool
	if req.Client != "" {
		preds = append(preds, func(i Invoice) bool { return i.Client == req.Client })
	}
	if req.DocType != "" {
		preds = append(preds, func(i Invoice) bool { return i.DocType == req.DocType })
	}
	if req.Status != "" {
		preds = append(preds, func(i Invoice) bool { return i.Status == req.Status })
	}
	return shared.Where(invoices, preds...), nil
}

// Totals sums net, IVA and total over the invoices matching the request.
// Voided documents are excluded.
func (s *Service) Totals(ctx context.Context, req ListRequest) (Totals, error) {
	invoices, err := s.ListInvoices(ctx, req)
	if err != nil {
		return Totals{}, err
	}
	var totals Totals
	for _, inv := range invoices {
		if inv.Status == StatusAnulada {
			continue
		}
		totals.Net += inv.Net
		totals.Tax += inv.Tax
		totals.Total += inv.Total
	}
	return totals, nil
}

// Aging buckets outstanding invoices by days overdue as of the given date.
func (s *Service) Aging(ctx context.Context, asOf time.Time) (aging.Schedule, error) {
	invoices, err := s.repo.ListInvoices(ctx)
	if err != nil {
		return aging.Schedule{}, err
	}
	if asOf.IsZero() {
		asOf = s.now()
	}
	var schedule aging.Schedule
	for _, inv := range invoices {
		if inv.Status != StatusPendiente {
			continue
		}
		schedule.Add(inv.DueDate, asOf, inv.Total)
	}
	return schedule, nil
}

// MarkPaid settles a pending invoice.
func (s *Service) MarkPaid(ctx context.Context, id uuid.UUID) error {
	return s.transition(ctx, id, StatusPagada)
}

// VoidInvoice cancels a pending invoice.
func (s *Service) VoidInvoice(ctx context.Context, id uuid.UUID) error {
	return s.transition(ctx, id, StatusAnulada)
}

func (s *Service) transition(ctx context.Context, id uuid.UUID, target InvoiceStatus) error {
	invoices, err := s.repo.ListInvoices(ctx)
	if err != nil {
		return err
	}
	for _, inv := range invoices {
		if inv.ID != id {
			continue
		}
		if inv.Status != StatusPendiente {
			return ErrInvalidStatus
		}
		return s.repo.UpdateInvoiceStatus(ctx, id, target)
	}
	return ErrInvoiceNotFound
}
