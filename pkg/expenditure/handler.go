package expenditure

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

type MonthDTO struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Total        decimal.Decimal `json:"total"`
	TotalDisplay string          `json:"totalDisplay"`
}

type ExpenditureDTO struct {
	ID            string          `json:"id"`
	Description   string          `json:"description"`
	Amount        decimal.Decimal `json:"amount"`
	Date          *time.Time      `json:"date,omitempty"`
	AmountDisplay string          `json:"amountDisplay,omitempty"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service}
}

func (handler *Handler) GetMonths(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	months, err := handler.service.ListMonths(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	monthsDTO := make([]MonthDTO, 0, len(months))
	for _, month := range months {
		monthsDTO = append(monthsDTO, monthToDTO(month))
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(monthsDTO); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (handler *Handler) GetExpenditures(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	monthId := mux.Vars(r)["monthId"]

	expenditures, err := handler.service.ListExpenditures(r.Context(), monthId)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	expendituresDTO := make([]ExpenditureDTO, 0, len(expenditures))
	for _, expenditure := range expenditures {
		expendituresDTO = append(expendituresDTO, expenditureToDTO(expenditure))
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(expendituresDTO); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (handler *Handler) AddExpenditure(w http.ResponseWriter, r *http.Request) {
	log.Debug("Adding new expenditure")
	w.Header().Set("Content-Type", "application/json")
	monthId := mux.Vars(r)["monthId"]

	var expenditureDTO ExpenditureDTO
	if err := json.NewDecoder(r.Body).Decode(&expenditureDTO); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	created, err := handler.service.AddExpenditure(r.Context(), monthId, Expenditure{
		Description: expenditureDTO.Description,
		Amount:      expenditureDTO.Amount,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(expenditureToDTO(created)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (handler *Handler) DeleteExpenditure(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	vars := mux.Vars(r)

	ok, err := handler.service.DeleteExpenditure(r.Context(), vars["monthId"], vars["expenditureId"])
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if !ok {
		http.Error(w, "Expenditure not found", http.StatusNotFound)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrValidation):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrMonthNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func monthToDTO(month Month) MonthDTO {
	return MonthDTO{
		ID:           month.ID,
		Name:         month.Name,
		Total:        month.Total,
		TotalDisplay: currency.Format(month.Total),
	}
}

func expenditureToDTO(expenditure Expenditure) ExpenditureDTO {
	var date *time.Time
	if !expenditure.Date.IsZero() {
		date = &expenditure.Date
	}
	return ExpenditureDTO{
		ID:            expenditure.ID,
		Description:   expenditure.Description,
		Amount:        expenditure.Amount,
		Date:          date,
		AmountDisplay: currency.Format(expenditure.Amount),
	}
}
