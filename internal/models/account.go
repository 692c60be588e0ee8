package models

// AccountType is the product kind of an account.
type AccountType string

const (
	Checking    AccountType = "checking"
	Savings     AccountType = "savings"
	MoneyMarket AccountType = "money-market"
	Credit      AccountType = "credit"
	Investment  AccountType = "investment"
)

// AccountTypes lists every account type in generation order.
var AccountTypes = []AccountType{Checking, Savings, MoneyMarket, Credit, Investment}

// Account represents a single bank account owned by one user.
type Account struct {
	ID              string      `json:"id"`
	UserID          string      `json:"userId"`
	Name            string      `json:"name"`
	Type            AccountType `json:"type"`
	Balance         float64     `json:"balance"`
	AccountNumber   string      `json:"accountNumber"`
	LastFour        string      `json:"lastFour"`
	InterestRate    *float64    `json:"interestRate,omitempty"`
	CreditLimit     *float64    `json:"creditLimit,omitempty"`
	AvailableCredit *float64    `json:"availableCredit,omitempty"`
	RoutingNumber   string      `json:"routingNumber,omitempty"`
	IsActive        bool        `json:"isActive"`
}
