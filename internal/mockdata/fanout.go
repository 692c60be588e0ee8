package mockdata

import (
	"fmt"
	"time"

	"apexbank/internal/models"

	"github.com/shopspring/decimal"
)

type cardTemplate struct {
	name       string
	typ        string
	account    models.AccountType
	prefix     string
	numberBase int
	expiry     string
	network    string
	color      string
}

var cardTemplates = []cardTemplate{
	{"Premier Debit Card", "debit", models.Checking, "4532 1234 5678", 4521, "12/27", "visa", "navy"},
	{"Platinum Rewards Card", "credit", models.Credit, "5412 7534 8901", 4567, "09/26", "mastercard", "platinum"},
	{"Gold Travel Card", "credit", models.Credit, "4716 8523 9012", 3456, "03/28", "visa", "gold"},
}

// lockedCard is the template index of the card that starts locked for the
// first user.
const lockedCard = 2

// GenerateCards emits three cards per user. Exactly one card in the whole
// dataset, the first user's travel card, starts locked.
func GenerateCards(users []models.UserProfile) []models.Card {
	cards := make([]models.Card, 0, len(users)*len(cardTemplates))
	for idx, u := range users {
		seq, offset := userSeq(u.ID)
		for i, tmpl := range cardTemplates {
			lastFour := fmt.Sprintf("%d", tmpl.numberBase+offset)
			cards = append(cards, models.Card{
				ID:         fmt.Sprintf("card-%s-%03d", seq, i+1),
				UserID:     u.ID,
				AccountID:  accountID(u.ID, typeIndex(tmpl.account)),
				Type:       tmpl.typ,
				Name:       tmpl.name,
				CardNumber: tmpl.prefix + " " + lastFour,
				LastFour:   lastFour,
				ExpiryDate: tmpl.expiry,
				CVV:        "***",
				IsLocked:   idx == 0 && i == lockedCard,
				Network:    tmpl.network,
				Color:      tmpl.color,
			})
		}
	}
	return cards
}

func typeIndex(t models.AccountType) int {
	for i, tmpl := range accountTemplates {
		if tmpl.typ == t {
			return i
		}
	}
	return 0
}

type billTemplate struct {
	payee    string
	category string
	number   string
	amount   float64
	dueIn    int
	autoPay  bool
	logo     string
	status   models.BillStatus
}

var billTemplates = []billTemplate{
	{"Bay Area Mortgage Co.", "Mortgage", "****8901", 12500, 5, true, "🏠", models.BillScheduled},
	{"Amazon Prime", "Subscription", "****2345", 14.99, 12, true, "📦", models.BillScheduled},
	{"Verizon Wireless", "Phone", "****5678", 185, 8, false, "📱", models.BillDue},
	{"PG&E", "Utilities", "****9012", 342.5, 3, true, "💡", models.BillDue},
	{"Comcast Xfinity", "Internet", "****3456", 129.99, 18, true, "📡", models.BillScheduled},
	{"Tesla Financing", "Auto", "****5670", 1850, 10, true, "🚗", models.BillScheduled},
}

// GenerateBills emits six payees per user, due a fixed number of days after now.
func GenerateBills(users []models.UserProfile, now time.Time) []models.Bill {
	bills := make([]models.Bill, 0, len(users)*len(billTemplates))
	for _, u := range users {
		seq, _ := userSeq(u.ID)
		for i, tmpl := range billTemplates {
			bills = append(bills, models.Bill{
				ID:            fmt.Sprintf("bill-%s-%03d", seq, i+1),
				UserID:        u.ID,
				PayeeName:     tmpl.payee,
				Category:      tmpl.category,
				AccountNumber: tmpl.number,
				Amount:        tmpl.amount,
				DueDate:       now.AddDate(0, 0, tmpl.dueIn),
				IsAutoPay:     tmpl.autoPay,
				Logo:          tmpl.logo,
				Status:        tmpl.status,
			})
		}
	}
	return bills
}

type holdingTemplate struct {
	symbol string
	name   string
	shares int64
	cost   string
	price  string
	typ    string
}

var holdingTemplates = []holdingTemplate{
	{"AAPL", "Apple Inc.", 250, "145.00", "178.50", "stock"},
	{"TSLA", "Tesla Inc.", 100, "220.00", "248.75", "stock"},
	{"VOO", "Vanguard S&P 500 ETF", 450, "380.00", "425.00", "etf"},
	{"MSFT", "Microsoft Corp.", 180, "310.00", "378.50", "stock"},
	{"NVDA", "NVIDIA Corp.", 45, "420.00", "485.30", "stock"},
}

// NewHolding derives market value and gain/loss from the position itself:
// value = shares * price, gainLoss = value - shares * avgCost.
func NewHolding(id, userID, symbol, name, typ string, shares, avgCost, price decimal.Decimal) models.Holding {
	value := shares.Mul(price)
	cost := shares.Mul(avgCost)
	gain := value.Sub(cost)
	pct := decimal.Zero
	if !cost.IsZero() {
		pct = gain.Div(cost).Mul(decimal.NewFromInt(100)).Round(2)
	}
	return models.Holding{
		ID:              id,
		UserID:          userID,
		Symbol:          symbol,
		Name:            name,
		Shares:          shares.InexactFloat64(),
		AvgCost:         avgCost.InexactFloat64(),
		CurrentPrice:    price.InexactFloat64(),
		Value:           value.InexactFloat64(),
		GainLoss:        gain.InexactFloat64(),
		GainLossPercent: pct.InexactFloat64(),
		Type:            typ,
	}
}

// GenerateHoldings emits five positions per user.
func GenerateHoldings(users []models.UserProfile) []models.Holding {
	holdings := make([]models.Holding, 0, len(users)*len(holdingTemplates))
	for _, u := range users {
		seq, _ := userSeq(u.ID)
		for i, tmpl := range holdingTemplates {
			holdings = append(holdings, NewHolding(
				fmt.Sprintf("inv-%s-%03d", seq, i+1),
				u.ID, tmpl.symbol, tmpl.name, tmpl.typ,
				decimal.NewFromInt(tmpl.shares),
				decimal.RequireFromString(tmpl.cost),
				decimal.RequireFromString(tmpl.price),
			))
		}
	}
	return holdings
}

type notificationTemplate struct {
	title    string
	message  string
	typ      string
	hoursAgo int
	read     bool
	icon     string
}

var notificationTemplates = []notificationTemplate{
	{"Large Deposit Received", "A deposit of $45,000.00 has been credited to your Premier Checking account.", "success", 2, false, "💰"},
	{"New Card Shipped", "Your replacement Platinum Rewards Card has been shipped.", "info", 24, false, "📦"},
	{"Bill Due Soon", "Your Verizon Wireless bill of $185.00 is due in 3 days.", "warning", 48, false, "📋"},
	{"Investment Alert", "NVDA has increased by 5.2% today.", "info", 4, true, "📈"},
	{"Security Alert", "New login detected from San Francisco, CA.", "alert", 72, true, "🔒"},
}

// GenerateNotifications emits five inbox messages per user.
func GenerateNotifications(users []models.UserProfile, now time.Time) []models.Notification {
	out := make([]models.Notification, 0, len(users)*len(notificationTemplates))
	for _, u := range users {
		seq, _ := userSeq(u.ID)
		for i, tmpl := range notificationTemplates {
			out = append(out, models.Notification{
				ID:        fmt.Sprintf("notif-%s-%03d", seq, i+1),
				UserID:    u.ID,
				Title:     tmpl.title,
				Message:   tmpl.message,
				Type:      tmpl.typ,
				Timestamp: now.Add(-time.Duration(tmpl.hoursAgo) * time.Hour),
				IsRead:    tmpl.read,
				Icon:      tmpl.icon,
			})
		}
	}
	return out
}
