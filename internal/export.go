package internal

import (
	"fmt"
	"math"
	"time"

	"github.com/xuri/excelize/v2"
)

// ReceiptRow is one line of an exported receipt
type ReceiptRow struct {
	Label     string
	Amount    float64
	Currency  Currency
	Formatted string
}

// ReceiptRows lists the receipt lines for a state, in display order.
// Totals and remaining change are only included once the balance is activated.
func ReceiptRows(b DerivedBalance, l Labels) []ReceiptRow {
	row := func(label string, amount float64, c Currency) ReceiptRow {
		return ReceiptRow{Label: label, Amount: amount, Currency: c, Formatted: c.Format(amount)}
	}

	rows := []ReceiptRow{
		row(l.Field(FieldPriceEUR), b.PriceEUR, EUR),
		row(l.Field(FieldPaidEUR), b.PaidEUR, EUR),
		row(l.Field(FieldPaidBGN), b.PaidBGN, BGN),
		row(l.Field(FieldReturnedEUR), b.ReturnedEUR, EUR),
		row(l.Field(FieldReturnedBGN), b.ReturnedBGN, BGN),
	}
	if !b.IsActivated {
		return rows
	}
	return append(rows,
		row(l.Get(LabelTotalPaid), b.TotalPaidEUR, EUR),
		row(l.Get(LabelTotalChange), b.TotalChangeEUR, EUR),
		row(l.Get(LabelTotalReturned), b.TotalReturnedEUR, EUR),
		row(l.Get(LabelRemainingEUR), b.RemainingChangeEUR, EUR),
		row(l.Get(LabelRemainingBGN), b.RemainingChangeBGN, BGN),
	)
}

// ExportReceiptXLSX writes the balance as a one-sheet workbook.
// Column B holds the numeric amount (rounded to cents), column C the display string.
func ExportReceiptXLSX(path, sessionID string, b DerivedBalance, l Labels, now time.Time) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := l.Get(LabelReceiptSheet)
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("naming sheet: %w", err)
	}

	header := []any{l.Get(LabelFieldColumn), "", l.Get(LabelValueColumn)}
	cells := [][]any{
		{l.Get(LabelTitle), "", l.Get(LabelRate)},
		{l.Get(LabelSession), "", sessionID},
		{"", "", now.Format("2006-01-02 15:04:05")},
		{},
		header,
	}
	for _, r := range ReceiptRows(b, l) {
		cells = append(cells, []any{r.Label, roundCents(r.Amount), r.Formatted})
	}
	status := l.Get(LabelEnterPaymentData)
	if s, ok := b.Settlement(); ok {
		status = l.Settlement(s)
	}
	cells = append(cells, []any{}, []any{l.Get(LabelStatus), "", status})

	for i, row := range cells {
		if len(row) == 0 {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return fmt.Errorf("addressing row %d: %w", i+1, err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("writing row %d: %w", i+1, err)
		}
	}

	if err := f.SetColWidth(sheet, "A", "A", 36); err != nil {
		return fmt.Errorf("sizing columns: %w", err)
	}
	if err := f.SetColWidth(sheet, "C", "C", 20); err != nil {
		return fmt.Errorf("sizing columns: %w", err)
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving workbook: %w", err)
	}
	return nil
}

// roundCents rounds the amount the same way the display does
func roundCents(v float64) float64 {
	if v == 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	rounded, _ := decimalCents(v).Float64()
	return rounded
}
