package views

import (
	"slices"
	"time"

	"apexbank/internal/models"

	"github.com/shopspring/decimal"
)

// CategoryTotal represents a category with its spending statistics.
type CategoryTotal struct {
	Category   models.Category `json:"category"`
	Total      float64         `json:"total"`
	Count      int             `json:"count"`
	Percentage float64         `json:"percentage"`
}

// MonthStats is the spending breakdown of one calendar month.
type MonthStats struct {
	Year           int                  `json:"year"`
	Month          int                  `json:"month"`
	MonthName      string               `json:"monthName"`
	Total          float64              `json:"total"`
	Categories     []CategoryTotal      `json:"categories"`
	Transactions   []models.Transaction `json:"transactions"`
	PrevYear       int                  `json:"prevYear"`
	PrevMonth      int                  `json:"prevMonth"`
	NextYear       int                  `json:"nextYear"`
	NextMonth      int                  `json:"nextMonth"`
	IsCurrentMonth bool                 `json:"isCurrentMonth"`
}

// MonthlyCategoryTotals sums the debits of the given month by category,
// largest first. now decides IsCurrentMonth.
func MonthlyCategoryTotals(txns []models.Transaction, year, month int, now time.Time) MonthStats {
	totals := make(map[models.Category]decimal.Decimal)
	counts := make(map[models.Category]int)
	var order []models.Category
	monthTxns := []models.Transaction{}
	grand := decimal.Zero

	for _, t := range txns {
		if t.Type != models.DebitEntry || t.Date.Year() != year || int(t.Date.Month()) != month {
			continue
		}
		if _, ok := totals[t.Category]; !ok {
			order = append(order, t.Category)
			totals[t.Category] = decimal.Zero
		}
		amount := decimal.NewFromFloat(t.Amount)
		totals[t.Category] = totals[t.Category].Add(amount)
		counts[t.Category]++
		grand = grand.Add(amount)
		monthTxns = append(monthTxns, t)
	}

	items := make([]CategoryTotal, 0, len(order))
	for _, c := range order {
		pct := decimal.Zero
		if grand.IsPositive() {
			pct = totals[c].Div(grand).Mul(decimal.NewFromInt(100)).Round(2)
		}
		items = append(items, CategoryTotal{
			Category:   c,
			Total:      totals[c].Round(2).InexactFloat64(),
			Count:      counts[c],
			Percentage: pct.InexactFloat64(),
		})
	}
	slices.SortStableFunc(items, func(a, b CategoryTotal) int {
		switch {
		case a.Total > b.Total:
			return -1
		case a.Total < b.Total:
			return 1
		}
		return 0
	})

	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	prev := first.AddDate(0, -1, 0)
	next := first.AddDate(0, 1, 0)

	return MonthStats{
		Year:           year,
		Month:          month,
		MonthName:      time.Month(month).String(),
		Total:          grand.Round(2).InexactFloat64(),
		Categories:     items,
		Transactions:   monthTxns,
		PrevYear:       prev.Year(),
		PrevMonth:      int(prev.Month()),
		NextYear:       next.Year(),
		NextMonth:      int(next.Month()),
		IsCurrentMonth: year == now.Year() && month == int(now.Month()),
	}
}
