package reports

import (
	"sort"

	"github.com/amasa-erp/amasa-erp/internal/ledger"
)

// EightColumnRow is one account line of the balance tributario. Debtor and
// creditor come from the balance sign; exactly one typed column is filled
// according to the account classification. Unclassified accounts keep
// their movement columns but contribute to no typed column.
type EightColumnRow struct {
	Account   string             `json:"account"`
	Type      ledger.AccountType `json:"type"`
	SumDebit  float64            `json:"sum_debit"`
	SumCredit float64            `json:"sum_credit"`
	Debtor    float64            `json:"debtor"`
	Creditor  float64            `json:"creditor"`
	Asset     float64            `json:"asset"`
	Liability float64            `json:"liability"`
	Loss      float64            `json:"loss"`
	Gain      float64            `json:"gain"`
}

// EightColumnTotals aggregates every column across the statement.
type EightColumnTotals struct {
	SumDebit  float64 `json:"sum_debit"`
	SumCredit float64 `json:"sum_credit"`
	Debtor    float64 `json:"debtor"`
	Creditor  float64 `json:"creditor"`
	Asset     float64 `json:"asset"`
	Liability float64 `json:"liability"`
	Loss      float64 `json:"loss"`
	Gain      float64 `json:"gain"`
}

// EightColumnBalance is the structured eight-column statement.
type EightColumnBalance struct {
	Rows         []EightColumnRow  `json:"rows"`
	Totals       EightColumnTotals `json:"totals"`
	Unclassified []string          `json:"unclassified,omitempty"`
}

// BuildEightColumn buckets aggregated account balances into the eight
// presentational columns using the account classification table.
func BuildEightColumn(accounts []ledger.AccountTotals, types map[string]ledger.AccountType) EightColumnBalance {
	result := EightColumnBalance{}
	for _, acc := range accounts {
		balance := acc.Balance()
		row := EightColumnRow{
			Account:   acc.Account,
			SumDebit:  acc.Debit,
			SumCredit: acc.Credit,
		}
		if balance >= 0 {
			row.Debtor = balance
		} else {
			row.Creditor = -balance
		}

		accType, ok := types[acc.Account]
		if !ok {
			row.Type = ledger.TypeUnclassified
			result.Unclassified = append(result.Unclassified, acc.Account)
		} else {
			row.Type = accType
			switch accType {
			case ledger.TypeActivo:
				row.Asset = balance
			case ledger.TypePasivo, ledger.TypePatrimonio:
				row.Liability = -balance
			case ledger.TypePerdida:
				row.Loss = balance
			case ledger.TypeGanancia:
				row.Gain = -balance
			}
		}

		result.Rows = append(result.Rows, row)
		result.Totals.SumDebit += row.SumDebit
		result.Totals.SumCredit += row.SumCredit
		result.Totals.Debtor += row.Debtor
		result.Totals.Creditor += row.Creditor
		result.Totals.Asset += row.Asset
		result.Totals.Liability += row.Liability
		result.Totals.Loss += row.Loss
		result.Totals.Gain += row.Gain
	}
	sort.Slice(result.Rows, func(i, j int) bool { return result.Rows[i].Account < result.Rows[j].Account })
	sort.Strings(result.Unclassified)
	return result
}
