package handlers

import (
	"net/http"

	"apexbank/internal/logger"
	"apexbank/internal/models"
	"apexbank/internal/views"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// applyLocks overlays the card locks toggled in this session. The dataset
// itself is never modified.
func (c *client) applyLocks(cards []models.Card) []models.Card {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]models.Card, len(cards))
	for i, card := range cards {
		if locked, ok := c.locked[card.ID]; ok {
			card.IsLocked = locked
		}
		out[i] = card
	}
	return out
}

// ListCards returns the signed-in user's cards.
func (h *Handlers) ListCards(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r)
	writeJSON(w, http.StatusOK, clientFromContext(r).applyLocks(h.data.CardsByUser(user.ID)))
}

// ToggleCardLock freezes or unfreezes a card for the rest of the session.
func (h *Handlers) ToggleCardLock(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r)
	card, ok := h.data.CardByID(chi.URLParam(r, "id"))
	if !ok || card.UserID != user.ID {
		writeError(w, http.StatusNotFound, "Card not found", "")
		return
	}

	c := clientFromContext(r)
	c.mu.Lock()
	current, toggled := c.locked[card.ID]
	if !toggled {
		current = card.IsLocked
	}
	c.locked[card.ID] = !current
	card.IsLocked = !current
	c.mu.Unlock()

	logger.Get().Info("card lock toggled",
		zap.String("user_id", user.ID),
		zap.String("card_id", card.ID),
		zap.Bool("locked", card.IsLocked),
	)
	writeJSON(w, http.StatusOK, card)
}

// ListBills returns the signed-in user's payees grouped by status.
func (h *Handlers) ListBills(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r)
	writeJSON(w, http.StatusOK, views.GroupBills(h.data.BillsByUser(user.ID)))
}

// Investments returns the signed-in user's holdings and totals.
func (h *Handlers) Investments(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r)
	writeJSON(w, http.StatusOK, views.SummarizeHoldings(h.data.HoldingsByUser(user.ID)))
}

type notificationsResponse struct {
	Notifications []models.Notification `json:"notifications"`
	Unread        int                   `json:"unread"`
}

// ListNotifications returns the signed-in user's inbox.
func (h *Handlers) ListNotifications(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r)
	notes := h.data.NotificationsByUser(user.ID)
	writeJSON(w, http.StatusOK, notificationsResponse{
		Notifications: notes,
		Unread:        views.UnreadCount(notes),
	})
}
