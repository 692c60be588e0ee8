// Package views derives the read-only dashboard views (summaries, filters,
// groupings and exports) from collections produced by mockdata.
package views

import (
	"apexbank/internal/models"

	"github.com/shopspring/decimal"
)

// recentWindow is how many of the newest credits/debits feed the dashboard
// income and expense figures.
const recentWindow = 30

// Summary is the headline block of the dashboard.
type Summary struct {
	Income          float64 `json:"income"`
	Expenses        float64 `json:"expenses"`
	Checking        float64 `json:"checking"`
	Savings         float64 `json:"savings"`
	TotalAssets     float64 `json:"totalAssets"`
	CreditOwed      float64 `json:"creditOwed"`
	NetWorth        float64 `json:"netWorth"`
	PendingCount    int     `json:"pendingCount"`
	TransactionRows int     `json:"transactionRows"`
}

// Summarize computes the dashboard figures for one user. Transactions must
// already be sorted newest first.
func Summarize(accounts []models.Account, txns []models.Transaction) Summary {
	var s Summary
	income, expenses := decimal.Zero, decimal.Zero
	credits, debits := 0, 0

	for _, t := range txns {
		amount := decimal.NewFromFloat(t.Amount)
		switch t.Type {
		case models.CreditEntry:
			if credits < recentWindow {
				income = income.Add(amount)
				credits++
			}
		case models.DebitEntry:
			if debits < recentWindow {
				expenses = expenses.Add(amount)
				debits++
			}
		}
		if t.Status == models.StatusPending {
			s.PendingCount++
		}
	}

	assets, owed := decimal.Zero, decimal.Zero
	checkingSeen, savingsSeen := false, false
	for _, a := range accounts {
		balance := decimal.NewFromFloat(a.Balance)
		switch a.Type {
		case models.Credit:
			owed = owed.Add(balance)
			continue
		case models.Checking:
			if !checkingSeen {
				s.Checking = a.Balance
				checkingSeen = true
			}
		case models.Savings:
			if !savingsSeen {
				s.Savings = a.Balance
				savingsSeen = true
			}
		}
		assets = assets.Add(balance)
	}

	s.Income = income.Round(2).InexactFloat64()
	s.Expenses = expenses.Round(2).InexactFloat64()
	s.TotalAssets = assets.InexactFloat64()
	s.CreditOwed = owed.InexactFloat64()
	s.NetWorth = assets.Sub(owed).InexactFloat64()
	s.TransactionRows = len(txns)
	return s
}

// UnreadCount counts notifications not yet read.
func UnreadCount(notes []models.Notification) int {
	n := 0
	for _, note := range notes {
		if !note.IsRead {
			n++
		}
	}
	return n
}
