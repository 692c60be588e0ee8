package models

import "time"

// Category classifies a transaction.
type Category string

const (
	CategorySalary        Category = "salary"
	CategoryInvestment    Category = "investment"
	CategoryTransfer      Category = "transfer"
	CategoryGroceries     Category = "groceries"
	CategoryDining        Category = "dining"
	CategoryTravel        Category = "travel"
	CategoryShopping      Category = "shopping"
	CategoryUtilities     Category = "utilities"
	CategoryEntertainment Category = "entertainment"
	CategoryHealthcare    Category = "healthcare"
	CategoryInsurance     Category = "insurance"
	CategorySubscription  Category = "subscription"
	CategoryDividend      Category = "dividend"
	CategoryRefund        Category = "refund"
	CategoryATM           Category = "atm"
	CategoryBillPayment   Category = "bill-payment"
)

// Categories lists all known transaction categories.
var Categories = []Category{
	CategorySalary, CategoryInvestment, CategoryTransfer, CategoryGroceries,
	CategoryDining, CategoryTravel, CategoryShopping, CategoryUtilities,
	CategoryEntertainment, CategoryHealthcare, CategoryInsurance, CategorySubscription,
	CategoryDividend, CategoryRefund, CategoryATM, CategoryBillPayment,
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Direction tells whether money entered or left the account.
type Direction string

const (
	CreditEntry Direction = "credit"
	DebitEntry  Direction = "debit"
)

// Status is the settlement state of a transaction.
type Status string

const (
	StatusCompleted Status = "completed"
	StatusPending   Status = "pending"
	StatusFailed    Status = "failed"
)

// Transaction represents a posted or pending account entry.
type Transaction struct {
	ID          string    `json:"id"`
	AccountID   string    `json:"accountId"`
	UserID      string    `json:"userId"`
	Date        time.Time `json:"date"`
	Description string    `json:"description"`
	Merchant    string    `json:"merchant"`
	Category    Category  `json:"category"`
	Amount      float64   `json:"amount"`
	Type        Direction `json:"type"`
	Status      Status    `json:"status"`
	Logo        string    `json:"logo,omitempty"`
}
