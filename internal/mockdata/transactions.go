package mockdata

import (
	"fmt"
	"math/rand/v2"
	"slices"
	"time"

	"apexbank/internal/models"

	"github.com/shopspring/decimal"
)

// History controls the shape of the synthetic spending history.
type History struct {
	Name         string
	Days         int
	MinPerDay    int
	MaxPerDay    int
	TransferDays []int
}

var (
	// StandardHistory is 45 days of 1-2 daily expenses.
	StandardHistory = History{Name: "standard", Days: 45, MinPerDay: 1, MaxPerDay: 2, TransferDays: []int{5, 15, 30, 45}}
	// ExtendedHistory is 90 days of 2-4 daily expenses.
	ExtendedHistory = History{Name: "extended", Days: 90, MinPerDay: 2, MaxPerDay: 4, TransferDays: []int{5, 15, 30, 45, 60}}
)

// HistoryByName resolves a preset by name.
func HistoryByName(name string) (History, bool) {
	switch name {
	case "", StandardHistory.Name:
		return StandardHistory, true
	case ExtendedHistory.Name:
		return ExtendedHistory, true
	}
	return History{}, false
}

type merchant struct {
	name string
	logo string
}

var merchants = map[models.Category][]merchant{
	models.CategoryGroceries:     {{"Whole Foods Market", "🥬"}, {"Trader Joe's", "🛒"}, {"Costco", "🏪"}},
	models.CategoryDining:        {{"Nobu Restaurant", "🍣"}, {"The French Laundry", "🍽️"}, {"Blue Bottle Coffee", "☕"}},
	models.CategoryTravel:        {{"United Airlines", "✈️"}, {"Marriott Hotels", "🏨"}, {"Uber", "🚗"}},
	models.CategoryShopping:      {{"Apple Store", "🍎"}, {"Nordstrom", "👔"}, {"Amazon", "📦"}},
	models.CategoryUtilities:     {{"PG&E", "💡"}, {"Comcast Xfinity", "📡"}, {"San Francisco Water", "💧"}},
	models.CategoryEntertainment: {{"Netflix", "🎬"}, {"Spotify", "🎵"}, {"SF Opera House", "🎭"}},
	models.CategoryHealthcare:    {{"Kaiser Permanente", "🏥"}, {"CVS Pharmacy", "💊"}},
	models.CategorySubscription:  {{"Wall Street Journal", "📰"}, {"New York Times", "📰"}, {"Bloomberg Terminal", "📊"}},
}

// spendRange is the [min, min+spread) amount range of a spending category.
type spendRange struct {
	min    float64
	spread float64
}

var expensePool = []models.Category{
	models.CategoryGroceries, models.CategoryDining, models.CategoryTravel, models.CategoryShopping,
	models.CategoryUtilities, models.CategoryEntertainment, models.CategoryHealthcare, models.CategorySubscription,
}

var expenseRanges = map[models.Category]spendRange{
	models.CategoryGroceries:     {80, 320},
	models.CategoryDining:        {45, 455},
	models.CategoryTravel:        {150, 2850},
	models.CategoryShopping:      {50, 950},
	models.CategoryUtilities:     {120, 280},
	models.CategoryEntertainment: {15, 285},
	models.CategoryHealthcare:    {25, 475},
	models.CategorySubscription:  {10, 90},
}

// chargedToCard reports whether a spending category posts to the credit card.
func chargedToCard(c models.Category) bool {
	return c == models.CategoryShopping || c == models.CategoryDining || c == models.CategoryTravel
}

type billPayment struct {
	name   string
	amount float64
	day    int
}

var recurringBills = []billPayment{
	{"Mortgage Payment", 12500, 1},
	{"Property Tax", 2800, 15},
	{"Insurance Premium", 1200, 10},
}

const (
	salaryAmount   = 45000
	salaryMonths   = 6
	dividendCount  = 4
	dividendBase   = 8500
	dividendSpread = 2000
	transferBase   = 25000
	transferSpread = 75000
	billMonths     = 3
)

func roundCents(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}

// userAccounts indexes one user's account ids by type.
type userAccounts map[models.AccountType]string

func groupAccounts(accounts []models.Account) ([]string, map[string]userAccounts) {
	var order []string
	byUser := make(map[string]userAccounts)
	for _, a := range accounts {
		ua, ok := byUser[a.UserID]
		if !ok {
			ua = make(userAccounts)
			byUser[a.UserID] = ua
			order = append(order, a.UserID)
		}
		ua[a.Type] = a.ID
	}
	return order, byUser
}

// GenerateTransactions synthesizes every user's history and returns it
// sorted by date, newest first. Entries sharing a timestamp keep their
// generation order.
func GenerateTransactions(accounts []models.Account, hist History, now time.Time, rng *rand.Rand) []models.Transaction {
	order, byUser := groupAccounts(accounts)

	var txns []models.Transaction
	for _, userID := range order {
		txns = append(txns, userHistory(userID, byUser[userID], hist, now, rng)...)
	}

	slices.SortStableFunc(txns, func(a, b models.Transaction) int {
		return b.Date.Compare(a.Date)
	})
	return txns
}

func userHistory(userID string, ids userAccounts, hist History, now time.Time, rng *rand.Rand) []models.Transaction {
	var txns []models.Transaction
	clock := func(year int, month time.Month, day int) time.Time {
		return time.Date(year, month, day, now.Hour(), now.Minute(), now.Second(), now.Nanosecond(), now.Location())
	}

	for i := range salaryMonths {
		txns = append(txns, models.Transaction{
			ID:          fmt.Sprintf("txn-%s-salary-%d", userID, i),
			AccountID:   ids[models.Checking],
			UserID:      userID,
			Date:        clock(now.Year(), now.Month()-time.Month(i), 1),
			Description: "Monthly Salary Deposit",
			Merchant:    "Apex Technologies Inc.",
			Category:    models.CategorySalary,
			Amount:      salaryAmount,
			Type:        models.CreditEntry,
			Status:      models.StatusCompleted,
			Logo:        "💼",
		})
	}

	for i := range dividendCount {
		txns = append(txns, models.Transaction{
			ID:          fmt.Sprintf("txn-%s-div-%d", userID, i),
			AccountID:   ids[models.Investment],
			UserID:      userID,
			Date:        now.AddDate(0, -3*i, 0),
			Description: "Quarterly Dividend Payment",
			Merchant:    "VOO Distribution",
			Category:    models.CategoryDividend,
			Amount:      roundCents(dividendBase + rng.Float64()*dividendSpread),
			Type:        models.CreditEntry,
			Status:      models.StatusCompleted,
			Logo:        "📈",
		})
	}

	for day := range hist.Days {
		date := now.AddDate(0, 0, -day)
		perDay := hist.MinPerDay + rng.IntN(hist.MaxPerDay-hist.MinPerDay+1)

		for t := range perDay {
			category := expensePool[rng.IntN(len(expensePool))]
			options := merchants[category]
			m := options[rng.IntN(len(options))]
			r := expenseRanges[category]

			accountID := ids[models.Checking]
			if chargedToCard(category) {
				accountID = ids[models.Credit]
			}
			status := models.StatusCompleted
			if day == 0 && t == 0 {
				status = models.StatusPending
			}

			txns = append(txns, models.Transaction{
				ID:          fmt.Sprintf("txn-%s-%d-%d", userID, day, t),
				AccountID:   accountID,
				UserID:      userID,
				Date:        date,
				Description: m.name,
				Merchant:    m.name,
				Category:    category,
				Amount:      roundCents(r.min + rng.Float64()*r.spread),
				Type:        models.DebitEntry,
				Status:      status,
				Logo:        m.logo,
			})
		}
	}

	for i, daysAgo := range hist.TransferDays {
		txns = append(txns, models.Transaction{
			ID:          fmt.Sprintf("txn-%s-transfer-%d", userID, i),
			AccountID:   ids[models.Savings],
			UserID:      userID,
			Date:        now.AddDate(0, 0, -daysAgo),
			Description: "Transfer from Checking",
			Merchant:    "Internal Transfer",
			Category:    models.CategoryTransfer,
			Amount:      roundCents(transferBase + rng.Float64()*transferSpread),
			Type:        models.CreditEntry,
			Status:      models.StatusCompleted,
			Logo:        "🔄",
		})
	}

	for month := range billMonths {
		for i, bill := range recurringBills {
			date := clock(now.Year(), now.Month()-time.Month(month), bill.day)
			// A bill that has not fallen due yet would outrank the pending expense.
			if date.After(now) {
				continue
			}
			txns = append(txns, models.Transaction{
				ID:          fmt.Sprintf("txn-%s-bill-%d-%d", userID, month, i),
				AccountID:   ids[models.Checking],
				UserID:      userID,
				Date:        date,
				Description: bill.name,
				Merchant:    bill.name,
				Category:    models.CategoryBillPayment,
				Amount:      bill.amount,
				Type:        models.DebitEntry,
				Status:      models.StatusCompleted,
				Logo:        "🏠",
			})
		}
	}

	return txns
}
