package main

import (
	"flag"
	"fmt"

	"apexbank/internal/models"
	"apexbank/internal/views"

	"github.com/gosuri/uitable"
)

const maxColWidth = 40

func newTable() *uitable.Table {
	t := uitable.New()
	t.MaxColWidth = maxColWidth
	return t
}

func (a *app) accounts() error {
	userID, err := a.signedInUser()
	if err != nil {
		return err
	}

	t := newTable()
	t.AddRow("ID", "NAME", "TYPE", "NUMBER", "BALANCE")
	for _, acc := range a.data.AccountsByUser(userID) {
		balance := acc.Balance
		if acc.Type == models.Credit {
			balance = -balance
		}
		t.AddRow(acc.ID, acc.Name, acc.Type, acc.AccountNumber, views.FormatCurrency(balance))
	}
	fmt.Fprintln(a.stdout, t)
	return nil
}

func signedAmount(t models.Transaction) float64 {
	if t.Type == models.DebitEntry {
		return -t.Amount
	}
	return t.Amount
}

func (a *app) transactions(args []string) error {
	fs := flag.NewFlagSet("transactions", flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	account := fs.String("account", "", "Only this account id")
	search := fs.String("q", "", "Search merchant and description")
	category := fs.String("category", "all", "Only this category")
	typ := fs.String("type", "all", "credit, debit or all")
	limit := fs.String("limit", "20", "Maximum rows, 0 for all")
	if err := fs.Parse(args); err != nil {
		return err
	}
	n, err := parseLimit(*limit)
	if err != nil {
		return err
	}
	if *category != "" && *category != "all" && !models.Category(*category).Valid() {
		return fmt.Errorf("unknown category %q", *category)
	}

	userID, err := a.signedInUser()
	if err != nil {
		return err
	}

	txns := views.Filter(a.data.TransactionsByUser(userID), views.Query{
		Search:    *search,
		Category:  *category,
		Type:      *typ,
		AccountID: *account,
	})
	total := len(txns)
	if n > 0 && len(txns) > n {
		txns = txns[:n]
	}

	t := newTable()
	t.AddRow("DATE", "MERCHANT", "CATEGORY", "AMOUNT", "STATUS")
	for _, txn := range txns {
		t.AddRow(views.FormatDate(txn.Date), txn.Merchant, txn.Category, views.FormatCurrency(signedAmount(txn)), txn.Status)
	}
	fmt.Fprintln(a.stdout, t)
	fmt.Fprintf(a.stdout, "%d of %d transactions\n", len(txns), total)
	return nil
}

func (a *app) summary() error {
	userID, err := a.signedInUser()
	if err != nil {
		return err
	}

	s := views.Summarize(a.data.AccountsByUser(userID), a.data.TransactionsByUser(userID))
	bills := views.GroupBills(a.data.BillsByUser(userID))
	portfolio := views.SummarizeHoldings(a.data.HoldingsByUser(userID))

	t := newTable()
	t.AddRow("Net worth", views.FormatCurrency(s.NetWorth))
	t.AddRow("Total assets", views.FormatCurrency(s.TotalAssets))
	t.AddRow("Credit owed", views.FormatCurrency(s.CreditOwed))
	t.AddRow("Checking", views.FormatCurrency(s.Checking))
	t.AddRow("Savings", views.FormatCurrency(s.Savings))
	t.AddRow("Recent income", views.FormatCurrency(s.Income))
	t.AddRow("Recent spending", views.FormatCurrency(s.Expenses))
	t.AddRow("Pending", s.PendingCount)
	t.AddRow("Bills due", views.FormatCurrency(bills.TotalDue))
	t.AddRow("Investments", fmt.Sprintf("%s (%+.2f%%)", views.FormatCurrency(portfolio.TotalValue), portfolio.GainLossPercent))
	t.AddRow("Unread notifications", views.UnreadCount(a.data.NotificationsByUser(userID)))
	fmt.Fprintln(a.stdout, t)
	return nil
}
