package handlers

import (
	"net/http"
	"strconv"

	"apexbank/internal/views"
)

// Statistics returns the monthly spending breakdown. year and month default
// to the month the dataset was generated in.
func (h *Handlers) Statistics(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r)

	// Get year and month from query params, default to current month
	yearStr := r.URL.Query().Get("year")
	monthStr := r.URL.Query().Get("month")

	now := h.data.GeneratedAt
	year := now.Year()
	month := int(now.Month())

	if yearStr != "" {
		y, err := strconv.Atoi(yearStr)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid year", "")
			return
		}
		year = y
	}
	if monthStr != "" {
		m, err := strconv.Atoi(monthStr)
		if err != nil || m < 1 || m > 12 {
			writeError(w, http.StatusBadRequest, "Invalid month", "")
			return
		}
		month = m
	}

	writeJSON(w, http.StatusOK, views.MonthlyCategoryTotals(h.data.TransactionsByUser(user.ID), year, month, now))
}
