package bill

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/digitalive/digitalive/internal/currency"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

type BillDTO struct {
	ID            string          `json:"id"`
	Vendor        string          `json:"vendor"`
	Amount        decimal.Decimal `json:"amount"`
	Month         string          `json:"month"`
	Description   string          `json:"description,omitempty"`
	Date          *time.Time      `json:"date,omitempty"`
	AmountDisplay string          `json:"amountDisplay,omitempty"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service}
}

func (handler *Handler) GetBills(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	bills, err := handler.service.ListBills(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	billsDTO := make([]BillDTO, 0, len(bills))
	for _, bill := range bills {
		billsDTO = append(billsDTO, billToDTO(bill))
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(billsDTO); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (handler *Handler) AddBill(w http.ResponseWriter, r *http.Request) {
	log.Debug("Adding new bill")
	w.Header().Set("Content-Type", "application/json")

	var billDTO BillDTO
	if err := json.NewDecoder(r.Body).Decode(&billDTO); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	created, err := handler.service.AddBill(r.Context(), Bill{
		Vendor:      billDTO.Vendor,
		Amount:      billDTO.Amount,
		Month:       billDTO.Month,
		Description: billDTO.Description,
	})
	if err != nil {
		if errors.Is(err, ErrValidation) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(billToDTO(created)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (handler *Handler) DeleteBill(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	billId := mux.Vars(r)["billId"]

	ok, err := handler.service.DeleteBill(r.Context(), billId)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if !ok {
		http.Error(w, "Bill not found", http.StatusNotFound)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func billToDTO(bill Bill) BillDTO {
	var date *time.Time
	if !bill.Date.IsZero() {
		date = &bill.Date
	}
	return BillDTO{
		ID:            bill.ID,
		Vendor:        bill.Vendor,
		Amount:        bill.Amount,
		Month:         bill.Month,
		Description:   bill.Description,
		Date:          date,
		AmountDisplay: currency.Format(bill.Amount),
	}
}
