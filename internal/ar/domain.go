package ar

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/amasa-erp/amasa-erp/internal/shared"
)

// TaxRate is the Chilean value-added tax applied to invoice net amounts.
const TaxRate = 0.19

// InvoiceStatus enumerates sales invoice lifecycle values.
type InvoiceStatus string

const (
	StatusPendiente InvoiceStatus = "PENDIENTE"
	StatusPagada    InvoiceStatus = "PAGADA"
	StatusAnulada   InvoiceStatus = "ANULADA"
)

// Document types issued to clients. Credit notes carry negative amounts.
const (
	DocTypeFactura     = "Factura"
	DocTypeBoleta      = "Boleta"
	DocTypeNotaCredito = "Nota de Crédito"
)

// Invoice is a sales document with Chilean net/IVA/total amounts.
type Invoice struct {
	ID        uuid.UUID
	Number    string
	Client    string
	DocType   string
	IssueDate time.Time
	DueDate   time.Time
	Net       float64
	Tax       float64
	Total     float64
	Status    InvoiceStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}

// DocumentDate implements shared.Dated.
func (i Invoice) DocumentDate() time.Time { return i.IssueDate }

// Totals sums net, tax and total across a set of documents.
type Totals struct {
	Net   float64 `json:"net"`
	Tax   float64 `json:"tax"`
	Total float64 `json:"total"`
}

// BreakdownFromTotal splits a gross amount into net and IVA, rounding the
// net to the peso. Works for negative totals (credit notes).
func BreakdownFromTotal(total float64) (net, tax float64) {
	net = math.Round(total / (1 + TaxRate))
	tax = total - net
	return net, tax
}

// CreateInvoiceInput groups fields for issuing an invoice. When net and
// tax are both zero they are derived from the total.
type CreateInvoiceInput struct {
	Number    string
	Client    string
	DocType   string
	IssueDate time.Time
	DueDate   time.Time
	Net       float64
	Tax       float64
	Total     float64
}

// Validate ensures the input is coherent.
func (in CreateInvoiceInput) Validate() error {
	if in.Client == "" {
		return errors.New("ar: client required")
	}
	if in.IssueDate.IsZero() {
		return errors.New("ar: issue date required")
	}
	if in.Total == 0 {
		return errors.New("ar: total required")
	}
	if !in.DueDate.IsZero() && in.DueDate.Before(in.IssueDate) {
		return errors.New("ar: due date cannot precede issue date")
	}
	if in.Net != 0 || in.Tax != 0 {
		if fmt.Sprintf("%.2f", in.Net+in.Tax) != fmt.Sprintf("%.2f", in.Total) {
			return ErrAmountsMismatch
		}
	}
	return nil
}

var (
	// ErrAmountsMismatch indicates net + tax does not equal total.
	ErrAmountsMismatch = errors.New("ar: net plus tax must equal total")
	// ErrInvoiceNotFound indicates the invoice could not be loaded.
	ErrInvoiceNotFound = fmt.Errorf("ar: invoice: %w", shared.ErrNotFound)
	// ErrInvalidStatus indicates the invoice state forbids the operation.
	ErrInvalidStatus = errors.New("ar: invalid invoice status for operation")
)
