package asset

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

type AssetDTO struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Amount        decimal.Decimal `json:"amount"`
	CreatedAt     *time.Time      `json:"createdAt,omitempty"`
	AmountDisplay string          `json:"amountDisplay,omitempty"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service}
}

func (handler *Handler) GetAssets(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	assets, err := handler.service.ListAssets(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	assetsDTO := make([]AssetDTO, 0, len(assets))
	for _, asset := range assets {
		assetsDTO = append(assetsDTO, assetToDTO(asset))
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(assetsDTO); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (handler *Handler) AddAsset(w http.ResponseWriter, r *http.Request) {
	log.Debug("Adding new asset")
	w.Header().Set("Content-Type", "application/json")

	var assetDTO AssetDTO
	if err := json.NewDecoder(r.Body).Decode(&assetDTO); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	created, err := handler.service.AddAsset(r.Context(), Asset{
		Name:   assetDTO.Name,
		Amount: assetDTO.Amount,
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrValidation):
			http.Error(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, ErrInsufficientBalance):
			http.Error(w, err.Error(), http.StatusConflict)
		default:
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(assetToDTO(created)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (handler *Handler) DeleteAsset(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	assetId := mux.Vars(r)["assetId"]

	ok, err := handler.service.DeleteAsset(r.Context(), assetId)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if !ok {
		http.Error(w, "Asset not found", http.StatusNotFound)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func assetToDTO(asset Asset) AssetDTO {
	var createdAt *time.Time
	if !asset.CreatedAt.IsZero() {
		createdAt = &asset.CreatedAt
	}
	return AssetDTO{
		ID:            asset.ID,
		Name:          asset.Name,
		Amount:        asset.Amount,
		CreatedAt:     createdAt,
		AmountDisplay: currency.Format(asset.Amount),
	}
}
