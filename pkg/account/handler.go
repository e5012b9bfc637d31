package account

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

type AccountDTO struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Description string            `json:"description,omitempty"`
	Color       string            `json:"color,omitempty"`
	Months      []MonthSummaryDTO `json:"months"`
}

type MonthSummaryDTO struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Orders        int             `json:"orders"`
	Income        decimal.Decimal `json:"income"`
	Cost          decimal.Decimal `json:"cost"`
	Profit        decimal.Decimal `json:"profit"`
	IncomeDisplay string          `json:"incomeDisplay"`
	CostDisplay   string          `json:"costDisplay"`
	ProfitDisplay string          `json:"profitDisplay"`
}

type EntryDTO struct {
	ID              string          `json:"id"`
	ProductName     string          `json:"productName"`
	AmountReceived  decimal.Decimal `json:"amountReceived"`
	ProductionCost  decimal.Decimal `json:"productionCost,omitempty"`
	DeliveryCost    decimal.Decimal `json:"deliveryCost,omitempty"`
	Date            *time.Time      `json:"date,omitempty"`
	ReceivedDisplay string          `json:"receivedDisplay,omitempty"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service}
}

func (handler *Handler) GetAccounts(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	accounts, err := handler.service.ListAccounts(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	accountsDTO := make([]AccountDTO, 0, len(accounts))
	for _, account := range accounts {
		accountsDTO = append(accountsDTO, accountToDTO(account))
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(accountsDTO); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (handler *Handler) CreateAccount(w http.ResponseWriter, r *http.Request) {
	log.Debug("Creating new account")
	w.Header().Set("Content-Type", "application/json")

	var accountDTO AccountDTO
	if err := json.NewDecoder(r.Body).Decode(&accountDTO); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	created, err := handler.service.CreateAccount(r.Context(), dtoToAccount(accountDTO))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(accountToDTO(created)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (handler *Handler) UpdateAccount(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	accountId := mux.Vars(r)["accountId"]

	var accountDTO AccountDTO
	if err := json.NewDecoder(r.Body).Decode(&accountDTO); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if accountDTO.ID == "" || accountDTO.ID != accountId {
		http.Error(w, "Invalid account id in request body", http.StatusBadRequest)
		return
	}

	updated, err := handler.service.UpdateAccount(r.Context(), dtoToAccount(accountDTO))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(accountToDTO(updated)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (handler *Handler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	accountId := mux.Vars(r)["accountId"]

	ok, err := handler.service.DeleteAccount(r.Context(), accountId)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if !ok {
		http.Error(w, "Account not found", http.StatusNotFound)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (handler *Handler) GetEntries(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	vars := mux.Vars(r)

	entries, err := handler.service.ListEntries(r.Context(), vars["accountId"], vars["monthId"])
	if err != nil {
		writeServiceError(w, err)
		return
	}

	entriesDTO := make([]EntryDTO, 0, len(entries))
	for _, entry := range entries {
		entriesDTO = append(entriesDTO, entryToDTO(entry))
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(entriesDTO); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (handler *Handler) AddEntry(w http.ResponseWriter, r *http.Request) {
	log.Debug("Adding new entry")
	w.Header().Set("Content-Type", "application/json")
	vars := mux.Vars(r)

	var entryDTO EntryDTO
	if err := json.NewDecoder(r.Body).Decode(&entryDTO); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	created, err := handler.service.AddEntry(r.Context(), vars["accountId"], vars["monthId"], dtoToEntry(entryDTO))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(entryToDTO(created)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (handler *Handler) UpdateEntry(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	vars := mux.Vars(r)

	var entryDTO EntryDTO
	if err := json.NewDecoder(r.Body).Decode(&entryDTO); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if entryDTO.ID == "" || entryDTO.ID != vars["entryId"] {
		http.Error(w, "Invalid entry id in request body", http.StatusBadRequest)
		return
	}

	updated, err := handler.service.UpdateEntry(r.Context(), vars["accountId"], vars["monthId"], dtoToEntry(entryDTO))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(entryToDTO(updated)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (handler *Handler) DeleteEntry(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	vars := mux.Vars(r)

	ok, err := handler.service.DeleteEntry(r.Context(), vars["accountId"], vars["monthId"], vars["entryId"])
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if !ok {
		http.Error(w, "Entry not found", http.StatusNotFound)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrValidation):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrAccountNotFound), errors.Is(err, ErrMonthNotFound), errors.Is(err, ErrEntryNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func accountToDTO(account Account) AccountDTO {
	months := make([]MonthSummaryDTO, 0, len(account.Months))
	for _, month := range account.Months {
		months = append(months, MonthSummaryDTO{
			ID:            month.ID,
			Name:          month.Name,
			Orders:        month.Orders,
			Income:        month.Income,
			Cost:          month.Cost,
			Profit:        month.Profit,
			IncomeDisplay: currency.Format(month.Income),
			CostDisplay:   currency.Format(month.Cost),
			ProfitDisplay: currency.Format(month.Profit),
		})
	}
	return AccountDTO{
		ID:          account.ID,
		Name:        account.Name,
		Description: account.Description,
		Color:       account.Color,
		Months:      months,
	}
}

func dtoToAccount(accountDTO AccountDTO) Account {
	return Account{
		ID:          accountDTO.ID,
		Name:        accountDTO.Name,
		Description: accountDTO.Description,
		Color:       accountDTO.Color,
	}
}

func entryToDTO(entry Entry) EntryDTO {
	var date *time.Time
	if !entry.Date.IsZero() {
		date = &entry.Date
	}
	return EntryDTO{
		ID:              entry.ID,
		ProductName:     entry.ProductName,
		AmountReceived:  entry.AmountReceived,
		ProductionCost:  entry.ProductionCost,
		DeliveryCost:    entry.DeliveryCost,
		Date:            date,
		ReceivedDisplay: currency.Format(entry.AmountReceived),
	}
}

func dtoToEntry(entryDTO EntryDTO) Entry {
	return Entry{
		ID:             entryDTO.ID,
		ProductName:    entryDTO.ProductName,
		AmountReceived: entryDTO.AmountReceived,
		ProductionCost: entryDTO.ProductionCost,
		DeliveryCost:   entryDTO.DeliveryCost,
	}
}
