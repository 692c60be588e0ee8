package views

import (
	"encoding/csv"
	"io"
	"time"

	"apexbank/internal/models"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

// FormatCurrency renders an amount as pounds sterling, e.g. £1,234.56.
func FormatCurrency(amount float64) string {
	d := decimal.NewFromFloat(amount).Round(2)
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Neg()
	}
	return sign + "£" + humanize.FormatFloat("#,###.##", d.InexactFloat64())
}

// FormatDate renders a day as "28 Nov 2018".
func FormatDate(t time.Time) string {
	return t.Format("2 Jan 2006")
}

// FormatTime renders a clock time as "3:04 pm".
func FormatTime(t time.Time) string {
	return t.Format("3:04 pm")
}

var csvHeader = []string{"Date", "Merchant", "Category", "Amount", "Type", "Status"}

// WriteCSV exports transactions in the statement download format.
func WriteCSV(w io.Writer, txns []models.Transaction) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, t := range txns {
		record := []string{
			t.Date.Format(time.RFC3339),
			t.Merchant,
			string(t.Category),
			decimal.NewFromFloat(t.Amount).StringFixed(2),
			string(t.Type),
			string(t.Status),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
