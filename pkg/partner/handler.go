package partner

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

type PartnerDTO struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	Drawings        decimal.Decimal `json:"drawings"`
	DrawingsDisplay string          `json:"drawingsDisplay"`
	DrawingsList    []DrawingDTO    `json:"drawingsList"`
}

type DrawingDTO struct {
	ID            string          `json:"id"`
	Title         string          `json:"title"`
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

func (handler *Handler) GetPartners(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	partners, err := handler.service.ListPartners(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	partnersDTO := make([]PartnerDTO, 0, len(partners))
	for _, partner := range partners {
		partnersDTO = append(partnersDTO, partnerToDTO(partner))
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(partnersDTO); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (handler *Handler) CreatePartner(w http.ResponseWriter, r *http.Request) {
	log.Debug("Creating new partner")
	w.Header().Set("Content-Type", "application/json")

	var partnerDTO PartnerDTO
	if err := json.NewDecoder(r.Body).Decode(&partnerDTO); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	created, err := handler.service.CreatePartner(r.Context(), Partner{Name: partnerDTO.Name})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(partnerToDTO(created)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (handler *Handler) AddDrawing(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	partnerId := mux.Vars(r)["partnerId"]

	var drawingDTO DrawingDTO
	if err := json.NewDecoder(r.Body).Decode(&drawingDTO); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	created, err := handler.service.AddDrawing(r.Context(), partnerId, Drawing{
		Title:  drawingDTO.Title,
		Amount: drawingDTO.Amount,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(drawingToDTO(created)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (handler *Handler) DeleteDrawing(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	vars := mux.Vars(r)

	ok, err := handler.service.DeleteDrawing(r.Context(), vars["partnerId"], vars["drawingId"])
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if !ok {
		http.Error(w, "Drawing not found", http.StatusNotFound)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrValidation):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrPartnerNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func partnerToDTO(partner Partner) PartnerDTO {
	drawingsDTO := make([]DrawingDTO, 0, len(partner.DrawingsList))
	for _, drawing := range partner.DrawingsList {
		drawingsDTO = append(drawingsDTO, drawingToDTO(drawing))
	}
	return PartnerDTO{
		ID:              partner.ID,
		Name:            partner.Name,
		Drawings:        partner.Drawings,
		DrawingsDisplay: currency.Format(partner.Drawings),
		DrawingsList:    drawingsDTO,
	}
}

func drawingToDTO(drawing Drawing) DrawingDTO {
	var date *time.Time
	if !drawing.Date.IsZero() {
		date = &drawing.Date
	}
	return DrawingDTO{
		ID:            drawing.ID,
		Title:         drawing.Title,
		Amount:        drawing.Amount,
		Date:          date,
		AmountDisplay: currency.Format(drawing.Amount),
	}
}
