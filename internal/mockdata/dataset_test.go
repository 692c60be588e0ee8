package mockdata

import (
	"testing"
	"time"

	"apexbank/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

var referenceNow = time.Date(2018, time.November, 28, 12, 0, 0, 0, time.UTC)

// DatasetTestSuite checks the structural invariants of a generated dataset.
type DatasetTestSuite struct {
	suite.Suite
	data *Dataset
}

func (suite *DatasetTestSuite) SetupTest() {
	suite.data = Generate(Options{Now: referenceNow, Seed: 42})
}

func (suite *DatasetTestSuite) TestFiveAccountsPerUser() {
	for _, u := range suite.data.Users {
		accounts := suite.data.AccountsByUser(u.ID)
		require.Len(suite.T(), accounts, 5, "user %s", u.ID)

		seen := map[models.AccountType]int{}
		for _, a := range accounts {
			seen[a.Type]++
		}
		for _, typ := range models.AccountTypes {
			assert.Equal(suite.T(), 1, seen[typ], "user %s account type %s", u.ID, typ)
		}
	}
}

func (suite *DatasetTestSuite) TestAccountIdentifiers() {
	acc, ok := suite.data.AccountByID("acc-002-001")
	require.True(suite.T(), ok)
	assert.Equal(suite.T(), "user-002", acc.UserID)
	assert.Equal(suite.T(), models.Checking, acc.Type)
	assert.Equal(suite.T(), "****4523", acc.AccountNumber)
	assert.Equal(suite.T(), "4523", acc.LastFour)
	assert.Equal(suite.T(), routingNumber, acc.RoutingNumber)

	credit, ok := suite.data.AccountByID("acc-001-004")
	require.True(suite.T(), ok)
	require.NotNil(suite.T(), credit.CreditLimit)
	require.NotNil(suite.T(), credit.AvailableCredit)
	assert.Equal(suite.T(), 75000.0, *credit.CreditLimit)
	assert.Equal(suite.T(), 66660.0, *credit.AvailableCredit)
	assert.Nil(suite.T(), credit.InterestRate)

	savings, ok := suite.data.AccountByID("acc-003-002")
	require.True(suite.T(), ok)
	require.NotNil(suite.T(), savings.InterestRate)
	assert.Equal(suite.T(), 4.75, *savings.InterestRate)
	assert.Equal(suite.T(), 3200000.0, savings.Balance, "user-003 uses its own balance profile")
}

func (suite *DatasetTestSuite) TestTransactionsSortedNewestFirst() {
	txns := suite.data.Transactions
	require.NotEmpty(suite.T(), txns)
	for i := 1; i < len(txns); i++ {
		assert.False(suite.T(), txns[i].Date.After(txns[i-1].Date),
			"transaction %d (%s) is newer than %d (%s)", i, txns[i].ID, i-1, txns[i-1].ID)
	}
}

func (suite *DatasetTestSuite) TestSinglePendingIsMostRecentDebit() {
	for _, u := range suite.data.Users {
		var pending []models.Transaction
		for _, t := range suite.data.TransactionsByUser(u.ID) {
			if t.Status == models.StatusPending {
				pending = append(pending, t)
			}
		}
		require.LessOrEqual(suite.T(), len(pending), 1, "user %s", u.ID)
		if len(pending) == 0 {
			continue
		}

		p := pending[0]
		assert.Equal(suite.T(), models.DebitEntry, p.Type)
		for _, t := range suite.data.TransactionsByUser(u.ID) {
			if t.Type == models.DebitEntry {
				assert.False(suite.T(), t.Date.After(p.Date), "debit %s is newer than pending %s", t.ID, p.ID)
			}
		}
	}
}

func (suite *DatasetTestSuite) TestStreamCounts() {
	counts := map[models.Category]int{}
	for _, t := range suite.data.TransactionsByUser("user-002") {
		counts[t.Category]++
	}
	assert.Equal(suite.T(), salaryMonths, counts[models.CategorySalary])
	assert.Equal(suite.T(), dividendCount, counts[models.CategoryDividend])
	assert.Equal(suite.T(), len(StandardHistory.TransferDays), counts[models.CategoryTransfer])
	// November 28th: every bill day of the current month has passed.
	assert.Equal(suite.T(), billMonths*len(recurringBills), counts[models.CategoryBillPayment])

	expenses := 0
	for _, c := range expensePool {
		expenses += counts[c]
	}
	assert.GreaterOrEqual(suite.T(), expenses, StandardHistory.Days*StandardHistory.MinPerDay)
	assert.LessOrEqual(suite.T(), expenses, StandardHistory.Days*StandardHistory.MaxPerDay)
}

func (suite *DatasetTestSuite) TestAmountRanges() {
	for _, t := range suite.data.Transactions {
		switch t.Category {
		case models.CategorySalary:
			assert.Equal(suite.T(), float64(salaryAmount), t.Amount)
		case models.CategoryDividend:
			assert.GreaterOrEqual(suite.T(), t.Amount, float64(dividendBase))
			assert.LessOrEqual(suite.T(), t.Amount, float64(dividendBase+dividendSpread))
		case models.CategoryTransfer:
			assert.GreaterOrEqual(suite.T(), t.Amount, float64(transferBase))
			assert.LessOrEqual(suite.T(), t.Amount, float64(transferBase+transferSpread))
		case models.CategoryBillPayment:
			assert.Equal(suite.T(), models.DebitEntry, t.Type)
		default:
			r, ok := expenseRanges[t.Category]
			require.True(suite.T(), ok, "unexpected category %s", t.Category)
			assert.GreaterOrEqual(suite.T(), t.Amount, r.min, t.ID)
			assert.LessOrEqual(suite.T(), t.Amount, r.min+r.spread, t.ID)
			assert.Equal(suite.T(), roundCents(t.Amount), t.Amount, "amount is rounded to cents")
		}
	}
}

func (suite *DatasetTestSuite) TestExpensesRoutedByCategory() {
	for _, t := range suite.data.TransactionsByUser("user-001") {
		if _, spend := expenseRanges[t.Category]; !spend {
			continue
		}
		acc, ok := suite.data.AccountByID(t.AccountID)
		require.True(suite.T(), ok)
		if chargedToCard(t.Category) {
			assert.Equal(suite.T(), models.Credit, acc.Type, t.ID)
		} else {
			assert.Equal(suite.T(), models.Checking, acc.Type, t.ID)
		}
	}
}

func (suite *DatasetTestSuite) TestHoldingGainLossIdentity() {
	require.Len(suite.T(), suite.data.Holdings, 5*len(suite.data.Users))
	for _, h := range suite.data.Holdings {
		assert.InDelta(suite.T(), h.Shares*h.CurrentPrice, h.Value, 1e-6, h.ID)
		assert.InDelta(suite.T(), h.Value-h.Shares*h.AvgCost, h.GainLoss, 1e-6, h.ID)
	}

	aapl, ok := find(suite.data.Holdings, func(h models.Holding) bool { return h.ID == "inv-001-001" })
	require.True(suite.T(), ok)
	assert.Equal(suite.T(), 44625.0, aapl.Value)
	assert.Equal(suite.T(), 8375.0, aapl.GainLoss)
	assert.Equal(suite.T(), 23.1, aapl.GainLossPercent)
}

func (suite *DatasetTestSuite) TestExactlyOneLockedCard() {
	var locked []models.Card
	for _, c := range suite.data.Cards {
		if c.IsLocked {
			locked = append(locked, c)
		}
	}
	require.Len(suite.T(), locked, 1)
	assert.Equal(suite.T(), "user-001", locked[0].UserID)
	assert.Equal(suite.T(), "Gold Travel Card", locked[0].Name)

	assert.Len(suite.T(), suite.data.CardsByAccount("acc-002-004"), 2)
	assert.Len(suite.T(), suite.data.CardsByAccount("acc-002-001"), 1)
}

func (suite *DatasetTestSuite) TestFanOutSizes() {
	for _, u := range suite.data.Users {
		assert.Len(suite.T(), suite.data.CardsByUser(u.ID), 3)
		assert.Len(suite.T(), suite.data.BillsByUser(u.ID), 6)
		assert.Len(suite.T(), suite.data.HoldingsByUser(u.ID), 5)
		assert.Len(suite.T(), suite.data.NotificationsByUser(u.ID), 5)
	}

	for _, b := range suite.data.Bills {
		assert.True(suite.T(), b.DueDate.After(referenceNow), b.ID)
	}
	for _, n := range suite.data.Notifications {
		assert.True(suite.T(), n.Timestamp.Before(referenceNow), n.ID)
	}
}

func (suite *DatasetTestSuite) TestLookupMisses() {
	txns := suite.data.TransactionsByAccount("acc-999-001")
	assert.NotNil(suite.T(), txns)
	assert.Empty(suite.T(), txns)

	assert.Empty(suite.T(), suite.data.AccountsByUser("user-404"))
	assert.Empty(suite.T(), suite.data.CardsByUser("user-404"))

	_, ok := suite.data.AccountByID("acc-999-001")
	assert.False(suite.T(), ok)
	_, ok = suite.data.TransactionByID("txn-missing")
	assert.False(suite.T(), ok)
	_, ok = suite.data.CardByID("card-missing")
	assert.False(suite.T(), ok)
	_, ok = suite.data.UserByID("user-404")
	assert.False(suite.T(), ok)
}

func (suite *DatasetTestSuite) TestUserDirectory() {
	u, ok := suite.data.UserByEmail("  GeorgeKinsey@Gmail.com ")
	require.True(suite.T(), ok)
	assert.Equal(suite.T(), "user-002", u.ID)

	assert.True(suite.T(), suite.data.ValidOTP("user-002", "678943"))
	assert.False(suite.T(), suite.data.ValidOTP("user-002", "000000"))
	assert.False(suite.T(), suite.data.ValidOTP("user-001", "678943"), "codes are per user")
	assert.False(suite.T(), suite.data.ValidOTP("user-404", "678943"))
}

func TestDatasetSuite(t *testing.T) {
	suite.Run(t, new(DatasetTestSuite))
}

func TestGenerateIsReproducibleWithSeed(t *testing.T) {
	a := Generate(Options{Now: referenceNow, Seed: 7})
	b := Generate(Options{Now: referenceNow, Seed: 7})
	assert.Equal(t, a.Transactions, b.Transactions)

	c := Generate(Options{Now: referenceNow, Seed: 8})
	assert.NotEqual(t, a.Transactions, c.Transactions)
}

func TestGenerateDrawsSeedWhenUnset(t *testing.T) {
	data := Generate(Options{Now: referenceNow})
	assert.NotZero(t, data.Seed)
}

func TestExtendedHistory(t *testing.T) {
	data := Generate(Options{Now: referenceNow, Seed: 3, History: ExtendedHistory})

	expenses := 0
	transfers := 0
	for _, txn := range data.TransactionsByUser("user-001") {
		if _, spend := expenseRanges[txn.Category]; spend {
			expenses++
		}
		if txn.Category == models.CategoryTransfer {
			transfers++
		}
	}
	assert.GreaterOrEqual(t, expenses, 90*2)
	assert.LessOrEqual(t, expenses, 90*4)
	assert.Equal(t, 5, transfers)
}

func TestFutureBillDaysAreSkipped(t *testing.T) {
	early := time.Date(2024, time.March, 5, 9, 30, 0, 0, time.UTC)
	data := Generate(Options{Now: early, Seed: 1})

	count := 0
	for _, txn := range data.TransactionsByUser("user-001") {
		if txn.Category == models.CategoryBillPayment {
			assert.False(t, txn.Date.After(early), txn.ID)
			count++
		}
	}
	// The 10th and 15th of March have not happened yet.
	assert.Equal(t, billMonths*len(recurringBills)-2, count)
}

func TestHistoryByName(t *testing.T) {
	h, ok := HistoryByName("")
	require.True(t, ok)
	assert.Equal(t, StandardHistory.Days, h.Days)

	h, ok = HistoryByName("extended")
	require.True(t, ok)
	assert.Equal(t, 90, h.Days)

	_, ok = HistoryByName("weekly")
	assert.False(t, ok)
}

func TestCheckTotals(t *testing.T) {
	users := Users()
	accounts := GenerateAccounts(users, DefaultBalanceProfiles())

	assert.Empty(t, CheckTotals(users, accounts, 0.01), "built-in profiles are within 1%")

	drifts := CheckTotals(users, accounts, 0)
	require.Len(t, drifts, len(users))
	assert.Equal(t, "user-001", drifts[0].UserID)
	assert.Equal(t, 5991660.0, drifts[0].Actual)
	assert.Contains(t, drifts[0].String(), "user-001")
}

func TestUsersReturnsCopy(t *testing.T) {
	users := Users()
	users[0].ValidOTPs[0] = "tampered"
	users[0].Email = "x@example.com"

	fresh := Users()
	assert.Equal(t, "345912", fresh[0].ValidOTPs[0])
	assert.Equal(t, "amelia.kinsey@coutts.com", fresh[0].Email)
}
