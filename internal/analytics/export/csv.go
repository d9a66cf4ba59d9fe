package export

import (
	"encoding/csv"
	"io"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/amasa-erp/amasa-erp/internal/aging"
	"github.com/amasa-erp/amasa-erp/internal/analytics"
	"github.com/amasa-erp/amasa-erp/internal/cashflow"
	"github.com/amasa-erp/amasa-erp/internal/ledger/reports"
)

var clp = message.NewPrinter(language.MustParse("es-CL"))

func formatAmount(v float64) string {
	return clp.Sprintf("%.0f", v)
}

// WriteDashboardCSV serialises the monthly dashboard summary to CSV.
func WriteDashboardCSV(w io.Writer, dashboard analytics.Dashboard) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()

	if err := writer.Write([]string{"Indicador", "Valor"}); err != nil {
		return err
	}
	records := [][]string{
		{"Período", dashboard.Period},
		{"Ventas Neto", formatAmount(dashboard.Sales.Net)},
		{"Ventas IVA", formatAmount(dashboard.Sales.Tax)},
		{"Ventas Total", formatAmount(dashboard.Sales.Total)},
		{"Compras Neto", formatAmount(dashboard.Purchases.Net)},
		{"Compras IVA", formatAmount(dashboard.Purchases.Tax)},
		{"Compras Total", formatAmount(dashboard.Purchases.Total)},
		{"Por Cobrar", formatAmount(dashboard.ARAging.Total())},
		{"Por Pagar", formatAmount(dashboard.APAging.Total())},
	}
	for _, record := range records {
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// WriteMonthlyCashflowCSV emits the projection month by month.
func WriteMonthlyCashflowCSV(w io.Writer, periods []cashflow.MonthlyPeriod) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()
	if err := writer.Write([]string{"Mes", "Saldo Inicial", "Ingresos", "Egresos", "Saldo Final", "Cerrado"}); err != nil {
		return err
	}
	for _, period := range periods {
		closed := "No"
		if period.Closed {
			closed = "Sí"
		}
		if err := writer.Write([]string{
			period.Label,
			formatAmount(period.StartingBalance),
			formatAmount(period.TotalIncome),
			formatAmount(period.TotalExpense),
			formatAmount(period.EndingBalance),
			closed,
		}); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// WriteAgingCSV prints an aging schedule to CSV.
func WriteAgingCSV(w io.Writer, title string, schedule aging.Schedule) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()
	if err := writer.Write([]string{title, "Monto"}); err != nil {
		return err
	}
	for _, bucket := range schedule.Buckets() {
		if err := writer.Write([]string{bucket.Bucket, formatAmount(bucket.Amount)}); err != nil {
			return err
		}
	}
	if err := writer.Write([]string{"Total", formatAmount(schedule.Total())}); err != nil {
		return err
	}
	writer.Flush()
	return writer.Error()
}

// WriteEightColumnCSV emits the classified balance with its totals row.
func WriteEightColumnCSV(w io.Writer, balance reports.EightColumnBalance) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()
	header := []string{
		"Cuenta", "Tipo", "Débitos", "Créditos",
		"Deudor", "Acreedor", "Activo", "Pasivo", "Pérdida", "Ganancia",
	}
	if err := writer.Write(header); err != nil {
		return err
	}
	for _, row := range balance.Rows {
		if err := writer.Write([]string{
			row.Account,
			string(row.Type),
			formatAmount(row.SumDebit),
			formatAmount(row.SumCredit),
			formatAmount(row.Debtor),
			formatAmount(row.Creditor),
			formatAmount(row.Asset),
			formatAmount(row.Liability),
			formatAmount(row.Loss),
			formatAmount(row.Gain),
		}); err != nil {
			return err
		}
	}
	totals := balance.Totals
	if err := writer.Write([]string{
		"Totales", "",
		formatAmount(totals.SumDebit),
		formatAmount(totals.SumCredit),
		formatAmount(totals.Debtor),
		formatAmount(totals.Creditor),
		formatAmount(totals.Asset),
		formatAmount(totals.Liability),
		formatAmount(totals.Loss),
		formatAmount(totals.Gain),
	}); err != nil {
		return err
	}
	writer.Flush()
	return writer.Error()
}
