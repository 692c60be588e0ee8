package mockdata

import (
	"fmt"

	"apexbank/internal/models"
)

const routingNumber = "021000021"

type accountTemplate struct {
	name         string
	typ          models.AccountType
	numberBase   int
	interestRate float64
	creditLimit  float64
	routed       bool
}

var accountTemplates = []accountTemplate{
	{name: "Premier Checking", typ: models.Checking, numberBase: 4521, routed: true},
	{name: "High-Yield Savings", typ: models.Savings, numberBase: 7832, interestRate: 4.75, routed: true},
	{name: "Money Market", typ: models.MoneyMarket, numberBase: 9156, interestRate: 5.1, routed: true},
	{name: "Platinum Credit Card", typ: models.Credit, numberBase: 4567, creditLimit: 75000},
	{name: "Investment Brokerage", typ: models.Investment, numberBase: 2891},
}

// accountID builds "acc-<userSeq>-<typeSeq>" where typeSeq is 1-based.
func accountID(userID string, typeIdx int) string {
	seq, _ := userSeq(userID)
	return fmt.Sprintf("acc-%s-%03d", seq, typeIdx+1)
}

// GenerateAccounts produces exactly five accounts per user, one of each
// type. Balances come from profiles, falling back to DefaultProfile.
func GenerateAccounts(users []models.UserProfile, profiles map[string]BalanceProfile) []models.Account {
	accounts := make([]models.Account, 0, len(users)*len(accountTemplates))

	for _, u := range users {
		profile, ok := profiles[u.ID]
		if !ok {
			profile = DefaultProfile
		}
		_, offset := userSeq(u.ID)

		for i, tmpl := range accountTemplates {
			lastFour := fmt.Sprintf("%d", tmpl.numberBase+offset)
			acc := models.Account{
				ID:            accountID(u.ID, i),
				UserID:        u.ID,
				Name:          tmpl.name,
				Type:          tmpl.typ,
				Balance:       profile.balance(tmpl.typ),
				AccountNumber: "****" + lastFour,
				LastFour:      lastFour,
				IsActive:      true,
			}
			if tmpl.routed {
				acc.RoutingNumber = routingNumber
			}
			if tmpl.interestRate > 0 {
				rate := tmpl.interestRate
				acc.InterestRate = &rate
			}
			if tmpl.creditLimit > 0 {
				limit := tmpl.creditLimit
				available := limit - acc.Balance
				acc.CreditLimit = &limit
				acc.AvailableCredit = &available
			}
			accounts = append(accounts, acc)
		}
	}

	return accounts
}
