package views

import (
	"errors"
	"fmt"

	"apexbank/internal/models"

	"github.com/shopspring/decimal"
)

// QuickTransferAmounts are the preset amounts offered by the transfer form.
var QuickTransferAmounts = []float64{500, 1000, 2500, 5000, 10000}

// TransferKind selects how money leaves the source account.
type TransferKind string

const (
	BetweenAccounts TransferKind = "between-accounts"
	PaySomeone      TransferKind = "pay-someone"
	BankTransfer    TransferKind = "bank-transfer"
)

// Payee is a saved UK recipient.
type Payee struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	SortCode  string `json:"sortCode"`
	AccountNo string `json:"accountNo"`
	Bank      string `json:"bank"`
}

// Payees is the fixed address book offered to every user.
var Payees = []Payee{
	{"payee-1", "John Smith", "20-45-67", "****4523", "Barclays"},
	{"payee-2", "Sarah Williams", "40-12-34", "****7891", "HSBC"},
	{"payee-3", "Thames Water", "30-90-12", "****3456", "NatWest"},
	{"payee-4", "British Gas", "20-00-00", "****8901", "Lloyds"},
}

// TransferRequest is a payment the user wants to make. Nothing is moved;
// the request is only validated.
type TransferRequest struct {
	Kind          TransferKind `json:"type"`
	FromAccount   string       `json:"fromAccount"`
	ToAccount     string       `json:"toAccount"`
	Amount        float64      `json:"amount"`
	SortCode      string       `json:"sortCode"`
	AccountNumber string       `json:"accountNumber"`
	PayeeName     string       `json:"payeeName"`
	Reference     string       `json:"reference"`
}

var (
	ErrInvalidAmount      = errors.New("amount must be greater than zero")
	ErrUnknownSource      = errors.New("source account not found")
	ErrIneligibleSource   = errors.New("payments cannot be made from this account")
	ErrMissingDestination = errors.New("destination is required")
	ErrMissingPayee       = errors.New("sort code, account number and payee name are required")
	ErrInsufficientFunds  = errors.New("insufficient funds")
	ErrUnknownKind        = errors.New("unknown transfer type")
)

// TransferSources lists the accounts money can be sent from.
func TransferSources(accounts []models.Account) []models.Account {
	out := []models.Account{}
	for _, a := range accounts {
		if a.Type != models.Credit && a.Type != models.Investment {
			out = append(out, a)
		}
	}
	return out
}

// ValidateTransfer checks req against the user's own accounts.
func ValidateTransfer(req TransferRequest, accounts []models.Account) error {
	if req.Amount <= 0 {
		return ErrInvalidAmount
	}

	var source *models.Account
	for i := range accounts {
		if accounts[i].ID == req.FromAccount {
			source = &accounts[i]
			break
		}
	}
	if source == nil {
		return ErrUnknownSource
	}
	if source.Type == models.Credit || source.Type == models.Investment {
		return ErrIneligibleSource
	}

	switch req.Kind {
	case BetweenAccounts:
		if req.ToAccount == "" || req.ToAccount == req.FromAccount || !ownsAccount(accounts, req.ToAccount) {
			return ErrMissingDestination
		}
	case PaySomeone:
		if !knownPayee(req.ToAccount) {
			return ErrMissingDestination
		}
	case BankTransfer:
		if req.SortCode == "" || req.AccountNumber == "" || req.PayeeName == "" {
			return ErrMissingPayee
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownKind, req.Kind)
	}

	if decimal.NewFromFloat(req.Amount).GreaterThan(decimal.NewFromFloat(source.Balance)) {
		return ErrInsufficientFunds
	}
	return nil
}

func ownsAccount(accounts []models.Account, id string) bool {
	for _, a := range accounts {
		if a.ID == id {
			return true
		}
	}
	return false
}

func knownPayee(id string) bool {
	for _, p := range Payees {
		if p.ID == id {
			return true
		}
	}
	return false
}
