package ledger

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/amasa-erp/amasa-erp/internal/shared"
)

// AccountType classifies an account for the eight-column balance.
type AccountType string

const (
	TypeActivo     AccountType = "Activo"
	TypePasivo     AccountType = "Pasivo"
	TypePatrimonio AccountType = "Patrimonio"
	TypeGanancia   AccountType = "Resultado Ganancia"
	TypePerdida    AccountType = "Resultado Perdida"

	// TypeUnclassified marks accounts missing from the classification table.
	TypeUnclassified AccountType = "Sin Clasificar"
)

// JournalLine stores a debit or credit amount against an account name.
type JournalLine struct {
	Account string
	Debit   float64
	Credit  float64
}

// JournalEntry captures a dated double-entry posting with its ordered lines.
type JournalEntry struct {
	ID        uuid.UUID
	Number    int64
	Date      time.Time
	Memo      string
	Lines     []JournalLine
	CreatedAt time.Time
}

// DocumentDate implements shared.Dated.
func (e JournalEntry) DocumentDate() time.Time { return e.Date }

// PostingLineInput describes a journal line for a posting request.
type PostingLineInput struct {
	Account string
	Debit   float64
	Credit  float64
}

// PostingInput groups fields required to create a journal entry.
type PostingInput struct {
	Date  time.Time
	Memo  string
	Lines []PostingLineInput
}

// Validate ensures posting input meets minimum criteria. Entries must
// balance to the cent; the aggregator itself stays tolerant of whatever
// is already stored.
func (in PostingInput) Validate() error {
	if in.Date.IsZero() {
		return errors.New("ledger: date required")
	}
	if len(in.Lines) < 2 {
		return ErrTooFewLines
	}
	var debit, credit float64
	for idx, line := range in.Lines {
		if line.Account == "" {
			return fmt.Errorf("ledger: line %d missing account", idx)
		}
		if line.Debit < 0 || line.Credit < 0 {
			return fmt.Errorf("ledger: line %d negative amount", idx)
		}
		if line.Debit > 0 && line.Credit > 0 {
			return fmt.Errorf("ledger: line %d cannot be both debit and credit", idx)
		}
		debit += line.Debit
		credit += line.Credit
	}
	if fmt.Sprintf("%.2f", debit) != fmt.Sprintf("%.2f", credit) {
		return ErrUnbalanced
	}
	return nil
}

var (
	// ErrTooFewLines indicates a posting with fewer than two lines.
	ErrTooFewLines = errors.New("ledger: journal entry requires at least two lines")
	// ErrUnbalanced indicates total debit does not equal total credit.
	ErrUnbalanced = errors.New("ledger: journal entry debits and credits must balance")
	// ErrEntryNotFound indicates the entry could not be loaded.
	ErrEntryNotFound = fmt.Errorf("ledger: entry: %w", shared.ErrNotFound)
)
