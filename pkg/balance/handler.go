package balance

import (
	"encoding/json"
	"net/http"

	"github.com/digitalive/digitalive/internal/currency"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

type BalanceDTO struct {
	Amount  decimal.Decimal `json:"amount"`
	Display string          `json:"display"`
}

type DepositDTO struct {
	Amount decimal.Decimal `json:"amount"`
}

type Handler struct {
	ledger Ledger
}

func NewHandler(ledger Ledger) *Handler {
	return &Handler{ledger}
}

func (h *Handler) GetBalance(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	amount, err := h.ledger.Read(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(toDTO(amount)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (h *Handler) Deposit(w http.ResponseWriter, r *http.Request) {
	log.Debug("Adding funds to company balance")
	w.Header().Set("Content-Type", "application/json")

	var depositDTO DepositDTO
	if err := json.NewDecoder(r.Body).Decode(&depositDTO); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if depositDTO.Amount.LessThanOrEqual(decimal.Zero) {
		http.Error(w, "Amount must be positive", http.StatusBadRequest)
		return
	}

	newAmount, err := h.ledger.ApplyDelta(r.Context(), depositDTO.Amount)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(toDTO(newAmount)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func toDTO(amount decimal.Decimal) BalanceDTO {
	return BalanceDTO{
		Amount:  amount,
		Display: currency.Format(amount),
	}
}
