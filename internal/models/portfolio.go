package models

import "time"

// Card represents a payment card linked to an account.
type Card struct {
	ID         string `json:"id"`
	UserID     string `json:"userId"`
	AccountID  string `json:"accountId"`
	Type       string `json:"type"`
	Name       string `json:"name"`
	CardNumber string `json:"cardNumber"`
	LastFour   string `json:"lastFour"`
	ExpiryDate string `json:"expiryDate"`
	CVV        string `json:"cvv"`
	IsLocked   bool   `json:"isLocked"`
	Network    string `json:"network"`
	Color      string `json:"color"`
}

// BillStatus is the payment state of a bill.
type BillStatus string

const (
	BillDue       BillStatus = "due"
	BillPaid      BillStatus = "paid"
	BillOverdue   BillStatus = "overdue"
	BillScheduled BillStatus = "scheduled"
)

// Bill represents a payee with an upcoming or settled payment.
type Bill struct {
	ID            string     `json:"id"`
	UserID        string     `json:"userId"`
	PayeeName     string     `json:"payeeName"`
	Category      string     `json:"category"`
	AccountNumber string     `json:"accountNumber"`
	Amount        float64    `json:"amount"`
	DueDate       time.Time  `json:"dueDate"`
	IsAutoPay     bool       `json:"isAutoPay"`
	Logo          string     `json:"logo"`
	Status        BillStatus `json:"status"`
}

// Holding represents a single investment position.
type Holding struct {
	ID              string  `json:"id"`
	UserID          string  `json:"userId"`
	Symbol          string  `json:"symbol"`
	Name            string  `json:"name"`
	Shares          float64 `json:"shares"`
	AvgCost         float64 `json:"avgCost"`
	CurrentPrice    float64 `json:"currentPrice"`
	Value           float64 `json:"value"`
	GainLoss        float64 `json:"gainLoss"`
	GainLossPercent float64 `json:"gainLossPercent"`
	Type            string  `json:"type"`
}

// Notification represents an inbox message for a user.
type Notification struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	IsRead    bool      `json:"isRead"`
	Icon      string    `json:"icon"`
}
