package handlers

import (
	"net/http"
	"strconv"

	"apexbank/internal/logger"
	"apexbank/internal/models"
	"apexbank/internal/views"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// recentTransactions is how many rows the dashboard lists.
const recentTransactions = 5

type dashboardResponse struct {
	User          models.PublicUser    `json:"user"`
	Summary       views.Summary        `json:"summary"`
	Accounts      []models.Account     `json:"accounts"`
	Recent        []models.Transaction `json:"recentTransactions"`
	UpcomingBills []models.Bill        `json:"upcomingBills"`
	Portfolio     portfolioTotals      `json:"portfolio"`
	UnreadCount   int                  `json:"unreadNotifications"`
}

type portfolioTotals struct {
	TotalValue      float64 `json:"totalValue"`
	TotalGainLoss   float64 `json:"totalGainLoss"`
	GainLossPercent float64 `json:"gainLossPercent"`
}

// Dashboard returns the headline figures for the signed-in user.
func (h *Handlers) Dashboard(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r)
	accounts := h.data.AccountsByUser(user.ID)
	txns := h.data.TransactionsByUser(user.ID)

	recent := txns
	if len(recent) > recentTransactions {
		recent = recent[:recentTransactions]
	}
	holdings := views.SummarizeHoldings(h.data.HoldingsByUser(user.ID))
	portfolio := portfolioTotals{
		TotalValue:      holdings.TotalValue,
		TotalGainLoss:   holdings.TotalGainLoss,
		GainLossPercent: holdings.GainLossPercent,
	}

	writeJSON(w, http.StatusOK, dashboardResponse{
		User:          user.Public(),
		Summary:       views.Summarize(accounts, txns),
		Accounts:      accounts,
		Recent:        recent,
		UpcomingBills: views.GroupBills(h.data.BillsByUser(user.ID)).DueSoon,
		Portfolio:     portfolio,
		UnreadCount:   views.UnreadCount(h.data.NotificationsByUser(user.ID)),
	})
}

// ListAccounts returns every account of the signed-in user.
func (h *Handlers) ListAccounts(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r)
	writeJSON(w, http.StatusOK, h.data.AccountsByUser(user.ID))
}

type accountResponse struct {
	models.Account
	Cards []models.Card `json:"cards"`
}

// ownedAccount resolves the {id} path parameter to an account of the
// signed-in user, answering 404 for unknown or foreign ids.
func (h *Handlers) ownedAccount(w http.ResponseWriter, r *http.Request) (models.Account, bool) {
	user := GetUserFromContext(r)
	account, ok := h.data.AccountByID(chi.URLParam(r, "id"))
	if !ok || account.UserID != user.ID {
		writeError(w, http.StatusNotFound, "Account not found", "")
		return models.Account{}, false
	}
	return account, true
}

// GetAccount returns one account with its cards.
func (h *Handlers) GetAccount(w http.ResponseWriter, r *http.Request) {
	account, ok := h.ownedAccount(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, accountResponse{
		Account: account,
		Cards:   h.data.CardsByAccount(account.ID),
	})
}

type transactionListResponse struct {
	Transactions []models.Transaction `json:"transactions"`
	Groups       []views.DayGroup     `json:"groups"`
	Categories   []models.Category    `json:"categories"`
	Total        int                  `json:"total"`
}

// queryFromRequest reads the list filters. It writes a 400 and returns false
// when the category is not one of the known kinds.
func queryFromRequest(w http.ResponseWriter, r *http.Request) (views.Query, bool) {
	q := r.URL.Query()
	category := q.Get("category")
	if category != "" && category != "all" && !models.Category(category).Valid() {
		writeError(w, http.StatusBadRequest, "Unknown category", "")
		return views.Query{}, false
	}
	return views.Query{
		Search:    q.Get("q"),
		Category:  category,
		Type:      q.Get("type"),
		AccountID: q.Get("account"),
	}, true
}

func newTransactionList(all []models.Transaction, q views.Query) transactionListResponse {
	filtered := views.Filter(all, q)
	groups := views.GroupByDay(filtered)
	if groups == nil {
		groups = []views.DayGroup{}
	}
	return transactionListResponse{
		Transactions: filtered,
		Groups:       groups,
		Categories:   views.Categories(all),
		Total:        len(filtered),
	}
}

// AccountTransactions lists the transactions of one account.
func (h *Handlers) AccountTransactions(w http.ResponseWriter, r *http.Request) {
	account, ok := h.ownedAccount(w, r)
	if !ok {
		return
	}
	q, ok := queryFromRequest(w, r)
	if !ok {
		return
	}
	q.AccountID = ""
	writeJSON(w, http.StatusOK, newTransactionList(h.data.TransactionsByAccount(account.ID), q))
}

// ListTransactions lists the signed-in user's transactions, optionally
// filtered by search text, category and direction.
func (h *Handlers) ListTransactions(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r)
	q, ok := queryFromRequest(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, newTransactionList(h.data.TransactionsByUser(user.ID), q))
}

// GetTransaction returns a single transaction.
func (h *Handlers) GetTransaction(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r)
	txn, ok := h.data.TransactionByID(chi.URLParam(r, "id"))
	if !ok || txn.UserID != user.ID {
		writeError(w, http.StatusNotFound, "Transaction not found", "")
		return
	}
	writeJSON(w, http.StatusOK, txn)
}

// ExportTransactions downloads the filtered transaction list as CSV.
func (h *Handlers) ExportTransactions(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r)
	q, ok := queryFromRequest(w, r)
	if !ok {
		return
	}
	txns := views.Filter(h.data.TransactionsByUser(user.ID), q)

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="transactions-`+user.ID+`.csv"`)
	w.Header().Set("X-Row-Count", strconv.Itoa(len(txns)))
	if err := views.WriteCSV(w, txns); err != nil {
		logger.Get().Error("failed to write csv export", zap.Error(err))
	}
}
