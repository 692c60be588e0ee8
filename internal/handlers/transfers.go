package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"apexbank/internal/logger"
	"apexbank/internal/models"
	"apexbank/internal/views"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type transferOptionsResponse struct {
	Sources      []models.Account `json:"sources"`
	Accounts     []models.Account `json:"accounts"`
	Payees       []views.Payee    `json:"payees"`
	QuickAmounts []float64        `json:"quickAmounts"`
}

// TransferOptions lists what the transfer form can offer.
func (h *Handlers) TransferOptions(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r)
	accounts := h.data.AccountsByUser(user.ID)
	writeJSON(w, http.StatusOK, transferOptionsResponse{
		Sources:      views.TransferSources(accounts),
		Accounts:     accounts,
		Payees:       views.Payees,
		QuickAmounts: views.QuickTransferAmounts,
	})
}

// transferReceipt confirms an accepted transfer. No money moves.
type transferReceipt struct {
	Reference   string                `json:"reference"`
	Status      models.Status         `json:"status"`
	SubmittedAt time.Time             `json:"submittedAt"`
	Request     views.TransferRequest `json:"request"`
}

// CreateTransfer validates a transfer and returns a receipt.
func (h *Handlers) CreateTransfer(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r)

	var req views.TransferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", "")
		return
	}

	if err := views.ValidateTransfer(req, h.data.AccountsByUser(user.ID)); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error(), "transfer-rejected")
		return
	}

	receipt := transferReceipt{
		Reference:   uuid.NewString(),
		Status:      models.StatusPending,
		SubmittedAt: time.Now().UTC(),
		Request:     req,
	}
	logger.Get().Info("transfer accepted",
		zap.String("user_id", user.ID),
		zap.String("reference", receipt.Reference),
		zap.String("type", string(req.Kind)),
		zap.Float64("amount", req.Amount),
	)
	writeJSON(w, http.StatusCreated, receipt)
}
