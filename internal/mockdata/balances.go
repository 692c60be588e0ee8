package mockdata

import (
	"fmt"
	"math"

	"apexbank/internal/models"
)

// BalanceProfile holds the opening balance of each of a user's five accounts.
type BalanceProfile struct {
	Checking    float64 `yaml:"checking"`
	Savings     float64 `yaml:"savings"`
	MoneyMarket float64 `yaml:"money_market"`
	Credit      float64 `yaml:"credit"`
	Investment  float64 `yaml:"investment"`
}

func (p BalanceProfile) balance(t models.AccountType) float64 {
	switch t {
	case models.Checking:
		return p.Checking
	case models.Savings:
		return p.Savings
	case models.MoneyMarket:
		return p.MoneyMarket
	case models.Credit:
		return p.Credit
	case models.Investment:
		return p.Investment
	}
	return 0
}

// DefaultProfile applies to any user without an entry in the profile table.
var DefaultProfile = BalanceProfile{
	Checking:    487320,
	Savings:     3850000,
	MoneyMarket: 1200000,
	Credit:      8340,
	Investment:  454340,
}

// DefaultBalanceProfiles returns the built-in per-user balance table.
func DefaultBalanceProfiles() map[string]BalanceProfile {
	return map[string]BalanceProfile{
		"user-003": {
			Checking:    350000,
			Savings:     3200000,
			MoneyMarket: 1000000,
			Credit:      8340,
			Investment:  441660,
		},
	}
}

// Drift describes a user whose account balances do not add up to the
// declared portfolio total.
type Drift struct {
	UserID   string
	Declared float64
	Actual   float64
}

func (d Drift) String() string {
	return fmt.Sprintf("%s: declared %.2f, accounts sum to %.2f", d.UserID, d.Declared, d.Actual)
}

// CheckTotals compares each user's asset balances with the user's declared
// total and reports everyone off by more than tolerance, a fraction of the
// declared total.
func CheckTotals(users []models.UserProfile, accounts []models.Account, tolerance float64) []Drift {
	sums := make(map[string]float64, len(users))
	for _, a := range accounts {
		if a.Type == models.Credit {
			continue
		}
		sums[a.UserID] += a.Balance
	}

	var drifts []Drift
	for _, u := range users {
		actual := sums[u.ID]
		if math.Abs(actual-u.TotalBalance) > tolerance*u.TotalBalance {
			drifts = append(drifts, Drift{UserID: u.ID, Declared: u.TotalBalance, Actual: actual})
		}
	}
	return drifts
}
