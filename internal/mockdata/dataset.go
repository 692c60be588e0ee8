package mockdata

import (
	"math/rand/v2"
	"slices"
	"strings"
	"time"

	"apexbank/internal/models"
)

// Options configures a dataset build.
type Options struct {
	// Now anchors every relative date. Zero means time.Now().
	Now time.Time
	// Seed feeds the random source. Zero draws a fresh seed, so the
	// generated amounts differ between runs.
	Seed uint64
	// History selects the spending-history preset. Zero means StandardHistory.
	History History
	// Balances maps user ids to balance profiles. Nil means
	// DefaultBalanceProfiles().
	Balances map[string]BalanceProfile
	// Users overrides the static registry, mostly for tests.
	Users []models.UserProfile
}

// Dataset holds every generated collection. It is built once and is
// read-only afterwards, so it is safe for concurrent readers.
type Dataset struct {
	Users         []models.UserProfile
	Accounts      []models.Account
	Transactions  []models.Transaction
	Cards         []models.Card
	Bills         []models.Bill
	Holdings      []models.Holding
	Notifications []models.Notification

	GeneratedAt time.Time
	Seed        uint64
}

// Generate builds the full dataset: registry, then accounts, then the
// collections that hang off the account ids.
func Generate(opts Options) *Dataset {
	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}
	seed := opts.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	hist := opts.History
	if hist.Days == 0 {
		hist = StandardHistory
	}
	balances := opts.Balances
	if balances == nil {
		balances = DefaultBalanceProfiles()
	}
	users := opts.Users
	if users == nil {
		users = Users()
	}

	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	accounts := GenerateAccounts(users, balances)

	return &Dataset{
		Users:         users,
		Accounts:      accounts,
		Transactions:  GenerateTransactions(accounts, hist, now, rng),
		Cards:         GenerateCards(users),
		Bills:         GenerateBills(users, now),
		Holdings:      GenerateHoldings(users),
		Notifications: GenerateNotifications(users, now),
		GeneratedAt:   now,
		Seed:          seed,
	}
}

// UserByID returns the profile with the given id.
func (d *Dataset) UserByID(id string) (models.UserProfile, bool) {
	for _, u := range d.Users {
		if u.ID == id {
			return u, true
		}
	}
	return models.UserProfile{}, false
}

// UserByEmail matches an email address ignoring case and surrounding space.
func (d *Dataset) UserByEmail(email string) (models.UserProfile, bool) {
	email = strings.TrimSpace(email)
	for _, u := range d.Users {
		if strings.EqualFold(u.Email, email) {
			return u, true
		}
	}
	return models.UserProfile{}, false
}

// ValidOTP reports whether otp is one of the user's static passcodes.
func (d *Dataset) ValidOTP(userID, otp string) bool {
	u, ok := d.UserByID(userID)
	return ok && slices.Contains(u.ValidOTPs, otp)
}

// AccountsByUser returns the user's accounts in generation order.
func (d *Dataset) AccountsByUser(userID string) []models.Account {
	return filter(d.Accounts, func(a models.Account) bool { return a.UserID == userID })
}

// AccountByID returns the account with the given id.
func (d *Dataset) AccountByID(id string) (models.Account, bool) {
	return find(d.Accounts, func(a models.Account) bool { return a.ID == id })
}

// TransactionsByUser returns the user's transactions, newest first.
func (d *Dataset) TransactionsByUser(userID string) []models.Transaction {
	return filter(d.Transactions, func(t models.Transaction) bool { return t.UserID == userID })
}

// TransactionsByAccount returns an account's transactions, newest first.
func (d *Dataset) TransactionsByAccount(accountID string) []models.Transaction {
	return filter(d.Transactions, func(t models.Transaction) bool { return t.AccountID == accountID })
}

// TransactionByID returns the transaction with the given id.
func (d *Dataset) TransactionByID(id string) (models.Transaction, bool) {
	return find(d.Transactions, func(t models.Transaction) bool { return t.ID == id })
}

// CardsByUser returns the user's cards.
func (d *Dataset) CardsByUser(userID string) []models.Card {
	return filter(d.Cards, func(c models.Card) bool { return c.UserID == userID })
}

// CardsByAccount returns the cards drawing on an account.
func (d *Dataset) CardsByAccount(accountID string) []models.Card {
	return filter(d.Cards, func(c models.Card) bool { return c.AccountID == accountID })
}

// CardByID returns the card with the given id.
func (d *Dataset) CardByID(id string) (models.Card, bool) {
	return find(d.Cards, func(c models.Card) bool { return c.ID == id })
}

// BillsByUser returns the user's payees.
func (d *Dataset) BillsByUser(userID string) []models.Bill {
	return filter(d.Bills, func(b models.Bill) bool { return b.UserID == userID })
}

// HoldingsByUser returns the user's investment positions.
func (d *Dataset) HoldingsByUser(userID string) []models.Holding {
	return filter(d.Holdings, func(h models.Holding) bool { return h.UserID == userID })
}

// NotificationsByUser returns the user's inbox.
func (d *Dataset) NotificationsByUser(userID string) []models.Notification {
	return filter(d.Notifications, func(n models.Notification) bool { return n.UserID == userID })
}

// filter never returns nil so that empty results encode as [].
func filter[T any](items []T, keep func(T) bool) []T {
	out := []T{}
	for _, item := range items {
		if keep(item) {
			out = append(out, item)
		}
	}
	return out
}

func find[T any](items []T, match func(T) bool) (T, bool) {
	for _, item := range items {
		if match(item) {
			return item, true
		}
	}
	var zero T
	return zero, false
}
