package ap

import (
	"context"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/amasa-erp/amasa-erp/internal/aging"
	"github.com/amasa-erp/amasa-erp/internal/ar"
	"github.com/amasa-erp/amasa-erp/internal/shared"
)

// RepositoryPort defines data access methods for AP.
type RepositoryPort interface {
	CreatePurchase(ctx context.Context, doc PurchaseDocument) (PurchaseDocument, error)
	ListPurchases(ctx context.Context) ([]PurchaseDocument, error)
	UpdatePurchaseStatus(ctx context.Context, id uuid.UUID, status DocumentStatus) error
	CreateFee(ctx context.Context, doc FeeDocument) (FeeDocument, error)
	ListFees(ctx context.Context) ([]FeeDocument, error)
}

// ListRequest narrows payable listings. Zero fields match everything.
type ListRequest struct {
	Range    shared.DateRange
	Supplier string
	DocType  string
	Status   DocumentStatus
}

// Service handles AP business logic.
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

// RegisterPurchase validates and stores a supplier document.
func (s *Service) RegisterPurchase(ctx context.Context, input CreatePurchaseInput) (PurchaseDocument, error) {
	if err := input.Validate(); err != nil {
		return PurchaseDocument{}, err
	}
	net, tax := input.Net, input.Tax
	if net == 0 && tax == 0 {
		net, tax = ar.BreakdownFromTotal(input.Total)
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
	doc := PurchaseDocument{
		ID:        uuid.New(),
		Number:    input.Number,
		Supplier:  input.Supplier,
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
	return s.repo.CreatePurchase(ctx, doc)
}

// RegisterFee stores a boleta de honorarios, computing the retention.
func (s *Service) RegisterFee(ctx context.Context, input CreateFeeInput) (FeeDocument, error) {
	if err := input.Validate(); err != nil {
		return FeeDocument{}, err
	}
	retention := math.Round(input.Gross * RetentionRate)
	doc := FeeDocument{
		ID:        uuid.New(),
		Number:    input.Number,
		Issuer:    input.Issuer,
		Date:      shared.Day(input.Date),
		Gross:     input.Gross,
		Retention: retention,
		Net:       input.Gross - retention,
		Status:    StatusPendiente,
		CreatedAt: s.now(),
	}
	return s.repo.CreateFee(ctx, doc)
}

// ListPurchases returns purchase documents matching the request filters.
func (s *Service) ListPurchases(ctx context.Context, req ListRequest) ([]PurchaseDocument, error) {
	docs, err := s.repo.ListPurchases(ctx)
	if err != nil {
		return nil, err
	}
	docs = shared.ByRange(docs, req.Range)
	var preds []func(PurchaseDocument) bool
	if req.Supplier != "" {
		preds = append(preds, func(d PurchaseDocument) bool { return d.Supplier == req.Supplier })
	}
	if req.DocType != "" {
		preds = append(preds, func(d PurchaseDocument) bool { return d.DocType == req.DocType })
	}
	if req.Status != "" {
		preds = append(preds, func(d PurchaseDocument) bool { return d.Status == req.Status })
	}
	return shared.Where(docs, preds...), nil
}

// ListFees returns fee documents matching the range and issuer.
func (s *Service) ListFees(ctx context.Context, r shared.DateRange, issuer string) ([]FeeDocument, error) {
	docs, err := s.repo.ListFees(ctx)
	if err != nil {
		return nil, err
	}
	docs = shared.ByRange(docs, r)
	if issuer != "" {
		docs = shared.Where(docs, func(d FeeDocument) bool { return d.Issuer == issuer })
	}
	return docs, nil
}

// Totals sums net, IVA and total over purchase documents matching the
// request. Voided documents are excluded.
func (s *Service) Totals(ctx context.Context, req ListRequest) (ar.Totals, error) {
	docs, err := s.ListPurchases(ctx, req)
	if err != nil {
		return ar.Totals{}, err
	}
	var totals ar.Totals
	for _, doc := range docs {
		if doc.Status == StatusAnulado {
			continue
		}
		totals.Net += doc.Net
		totals.Tax += doc.Tax
		totals.Total += doc.Total
	}
	return totals, nil
}

// Aging buckets unpaid supplier documents by days overdue.
func (s *Service) Aging(ctx context.Context, asOf time.Time) (aging.Schedule, error) {
	docs, err := s.repo.ListPurchases(ctx)
	if err != nil {
		return aging.Schedule{}, err
	}
	if asOf.IsZero() {
		asOf = s.now()
	}
	var schedule aging.Schedule
	for _, doc := range docs {
		if doc.Status != StatusPendiente {
			continue
		}
		schedule.Add(doc.DueDate, asOf, doc.Total)
	}
	return schedule, nil
}

// MarkPaid settles a pending purchase document.
func (s *Service) MarkPaid(ctx context.Context, id uuid.UUID) error {
	docs, err := s.repo.ListPurchases(ctx)
	if err != nil {
		return err
	}
	for _, doc := range docs {
		if doc.ID != id {
			continue
		}
		if doc.Status != StatusPendiente {
			return ErrInvalidStatus
		}
		return s.repo.UpdatePurchaseStatus(ctx, id, StatusPagado)
	}
	return ErrDocumentNotFound
}
