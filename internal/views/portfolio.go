package views

import (
	"apexbank/internal/models"

	"github.com/shopspring/decimal"
)

// BillGroups splits a user's payees the way the bills page lists them.
type BillGroups struct {
	DueSoon   []models.Bill `json:"dueSoon"`
	Scheduled []models.Bill `json:"scheduled"`
	Paid      []models.Bill `json:"paid"`
	TotalDue  float64       `json:"totalDue"`
}

// GroupBills buckets bills by status. Overdue bills count as due soon.
func GroupBills(bills []models.Bill) BillGroups {
	g := BillGroups{DueSoon: []models.Bill{}, Scheduled: []models.Bill{}, Paid: []models.Bill{}}
	due := decimal.Zero
	for _, b := range bills {
		switch b.Status {
		case models.BillDue, models.BillOverdue:
			g.DueSoon = append(g.DueSoon, b)
			due = due.Add(decimal.NewFromFloat(b.Amount))
		case models.BillScheduled:
			g.Scheduled = append(g.Scheduled, b)
		case models.BillPaid:
			g.Paid = append(g.Paid, b)
		}
	}
	g.TotalDue = due.Round(2).InexactFloat64()
	return g
}

// PortfolioSummary totals a user's holdings.
type PortfolioSummary struct {
	TotalValue      float64                     `json:"totalValue"`
	TotalGainLoss   float64                     `json:"totalGainLoss"`
	GainLossPercent float64                     `json:"gainLossPercent"`
	ByType          map[string][]models.Holding `json:"byType"`
	Holdings        []models.Holding            `json:"holdings"`
}

// SummarizeHoldings adds up value and gain/loss. The percentage is taken
// against cost basis (value - gainLoss).
func SummarizeHoldings(holdings []models.Holding) PortfolioSummary {
	value, gain := decimal.Zero, decimal.Zero
	byType := make(map[string][]models.Holding)
	for _, h := range holdings {
		value = value.Add(decimal.NewFromFloat(h.Value))
		gain = gain.Add(decimal.NewFromFloat(h.GainLoss))
		byType[h.Type] = append(byType[h.Type], h)
	}

	pct := decimal.Zero
	if basis := value.Sub(gain); basis.IsPositive() {
		pct = gain.Div(basis).Mul(decimal.NewFromInt(100)).Round(2)
	}

	if holdings == nil {
		holdings = []models.Holding{}
	}
	return PortfolioSummary{
		TotalValue:      value.Round(2).InexactFloat64(),
		TotalGainLoss:   gain.Round(2).InexactFloat64(),
		GainLossPercent: pct.InexactFloat64(),
		ByType:          byType,
		Holdings:        holdings,
	}
}
