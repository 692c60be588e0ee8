package views

import (
	"strings"

	"apexbank/internal/models"
)

// Query narrows a transaction list. Empty fields (or "all") match everything.
type Query struct {
	Search    string
	Category  string
	Type      string
	AccountID string
}

func matchesAll(v string) bool {
	return v == "" || v == "all"
}

// Filter keeps the transactions matching q, preserving order.
func Filter(txns []models.Transaction, q Query) []models.Transaction {
	search := strings.ToLower(strings.TrimSpace(q.Search))
	out := []models.Transaction{}
	for _, t := range txns {
		if search != "" &&
			!strings.Contains(strings.ToLower(t.Merchant), search) &&
			!strings.Contains(strings.ToLower(t.Description), search) {
			continue
		}
		if !matchesAll(q.Category) && string(t.Category) != q.Category {
			continue
		}
		if !matchesAll(q.Type) && string(t.Type) != q.Type {
			continue
		}
		if q.AccountID != "" && t.AccountID != q.AccountID {
			continue
		}
		out = append(out, t)
	}
	return out
}

// Categories lists the distinct categories in order of first appearance.
func Categories(txns []models.Transaction) []models.Category {
	seen := make(map[models.Category]bool)
	out := []models.Category{}
	for _, t := range txns {
		if !seen[t.Category] {
			seen[t.Category] = true
			out = append(out, t.Category)
		}
	}
	return out
}

// DayGroup is a run of transactions sharing a calendar day.
type DayGroup struct {
	Date  string               `json:"date"`
	Title string               `json:"title"`
	Items []models.Transaction `json:"items"`
}

// GroupByDay buckets transactions by calendar day, keeping the input order
// of both the groups and their items.
func GroupByDay(txns []models.Transaction) []DayGroup {
	var groups []DayGroup
	index := make(map[string]int)
	for _, t := range txns {
		key := t.Date.Format("2006-01-02")
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, DayGroup{Date: key, Title: FormatDate(t.Date)})
		}
		groups[i].Items = append(groups[i].Items, t)
	}
	return groups
}
