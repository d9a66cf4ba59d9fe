package ap

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/amasa-erp/amasa-erp/internal/shared"
)

// DocumentStatus enumerates payable document lifecycle values.
type DocumentStatus string

const (
	StatusPendiente DocumentStatus = "PENDIENTE"
	StatusPagado    DocumentStatus = "PAGADO"
	StatusAnulado   DocumentStatus = "ANULADO"
)

// Document types received from suppliers.
const (
	DocTypeFactura     = "Factura"
	DocTypeBoleta      = "Boleta"
	DocTypeNotaCredito = "Nota de Crédito"
)

// RetentionRate is the withholding applied to boletas de honorarios.
const RetentionRate = 0.1475

// PurchaseDocument is a supplier invoice with net/IVA/total amounts.
type PurchaseDocument struct {
	ID        uuid.UUID
	Number    string
	Supplier  string
	DocType   string
	IssueDate time.Time
	DueDate   time.Time
	Net       float64
	Tax       float64
	Total     float64
	Status    DocumentStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}

// DocumentDate implements shared.Dated.
func (d PurchaseDocument) DocumentDate() time.Time { return d.IssueDate }

// FeeDocument is a boleta de honorarios: a gross fee minus retention.
type FeeDocument struct {
	ID        uuid.UUID
	Number    string
	Issuer    string
	Date      time.Time
	Gross     float64
	Retention float64
	Net       float64
	Status    DocumentStatus
	CreatedAt time.Time
}

// DocumentDate implements shared.Dated.
func (d FeeDocument) DocumentDate() time.Time { return d.Date }

// CreatePurchaseInput groups fields for registering a purchase document.
type CreatePurchaseInput struct {
	Number    string
	Supplier  string
	DocType   string
	IssueDate time.Time
	DueDate   time.Time
	Net       float64
	Tax       float64
	Total     float64
}

// Validate ensures the input is coherent.
func (in CreatePurchaseInput) Validate() error {
	if in.Supplier == "" {
		return errors.New("ap: supplier required")
	}
	if in.IssueDate.IsZero() {
		return errors.New("ap: issue date required")
	}
	if in.Total == 0 {
		return errors.New("ap: total required")
	}
	if in.Net != 0 || in.Tax != 0 {
		if fmt.Sprintf("%.2f", in.Net+in.Tax) != fmt.Sprintf("%.2f", in.Total) {
			return ErrAmountsMismatch
		}
	}
	return nil
}

// CreateFeeInput groups fields for registering a boleta de honorarios.
type CreateFeeInput struct {
	Number string
	Issuer string
	Date   time.Time
	Gross  float64
}

// Validate ensures the input is coherent.
func (in CreateFeeInput) Validate() error {
	if in.Issuer == "" {
		return errors.New("ap: issuer required")
	}
	if in.Date.IsZero() {
		return errors.New("ap: date required")
	}
	if in.Gross <= 0 {
		return errors.New("ap: gross amount must be positive")
	}
	return nil
}

var (
	// ErrAmountsMismatch indicates net + tax does not equal total.
	ErrAmountsMismatch = errors.New("ap: net plus tax must equal total")
	// ErrDocumentNotFound indicates the document could not be loaded.
	ErrDocumentNotFound = fmt.Errorf("ap: document: %w", shared.ErrNotFound)
	// ErrInvalidStatus indicates the document state forbids the operation.
	ErrInvalidStatus = errors.New("ap: invalid document status for operation")
)
