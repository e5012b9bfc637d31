package partner

import (
	"context"
	"errors"
	"fmt"

	"github.com/digitalive/digitalive/internal/utils"
	"github.com/digitalive/digitalive/pkg/balance"
	"github.com/digitalive/digitalive/pkg/ledger"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

var ErrValidation = errors.New("invalid input")
var ErrPartnerNotFound = errors.New("partner not found")

type Service interface {
	// ListPartners returns all partners, seeding the default set on first
	// use so the collection is never empty.
	ListPartners(ctx context.Context) ([]Partner, error)
	CreatePartner(ctx context.Context, partner Partner) (Partner, error)
	AddDrawing(ctx context.Context, partnerId string, drawing Drawing) (Drawing, error)
	DeleteDrawing(ctx context.Context, partnerId, drawingId string) (bool, error)
}

type ServiceImpl struct {
	repo   Repository
	ledger balance.Ledger
	clock  utils.Clock
}

func NewService(repo Repository, ledger balance.Ledger, clock utils.Clock) Service {
	return &ServiceImpl{repo: repo, ledger: ledger, clock: clock}
}

func (s *ServiceImpl) ListPartners(ctx context.Context) ([]Partner, error) {
	partners, ok, err := s.repo.GetPartners(ctx)
	if err != nil {
		return nil, err
	}
	if !ok {
		log.Info("No partners stored yet, seeding defaults")
		partners = defaultPartners()
		if err := s.repo.SavePartners(ctx, partners); err != nil {
			return nil, err
		}
	}
	return partners, nil
}

func (s *ServiceImpl) CreatePartner(ctx context.Context, partner Partner) (Partner, error) {
	if partner.Name == "" {
		return Partner{}, fmt.Errorf("%w: partner name is required", ErrValidation)
	}

	partners, err := s.ListPartners(ctx)
	if err != nil {
		return Partner{}, err
	}

	partner.ID = uuid.NewString()
	partner.Drawings = decimal.Zero
	partner.DrawingsList = []Drawing{}
	partners = append(partners, partner)

	if err := s.repo.SavePartners(ctx, partners); err != nil {
		return Partner{}, err
	}
	return partner, nil
}

func (s *ServiceImpl) AddDrawing(ctx context.Context, partnerId string, drawing Drawing) (Drawing, error) {
	if drawing.Title == "" {
		return Drawing{}, fmt.Errorf("%w: title and amount are required", ErrValidation)
	}
	if drawing.Amount.LessThanOrEqual(decimal.Zero) {
		return Drawing{}, fmt.Errorf("%w: amount must be positive", ErrValidation)
	}

	partners, err := s.ListPartners(ctx)
	if err != nil {
		return Drawing{}, err
	}
	index := indexOfPartner(partners, partnerId)
	if index < 0 {
		return Drawing{}, ErrPartnerNotFound
	}

	drawing.ID = uuid.NewString()
	drawing.Date = s.clock.Now()

	// Debit the shared balance before persisting the drawing, so every
	// stored drawing has already been paired with its delta.
	if _, err := s.ledger.ApplyDelta(ctx, drawing.Amount.Neg()); err != nil {
		return Drawing{}, err
	}

	partners[index].DrawingsList = append(partners[index].DrawingsList, drawing)
	partners[index].Drawings = ledger.SumAmounts(partners[index].DrawingsList)
	if err := s.repo.SavePartners(ctx, partners); err != nil {
		return Drawing{}, err
	}
	return drawing, nil
}

func (s *ServiceImpl) DeleteDrawing(ctx context.Context, partnerId, drawingId string) (bool, error) {
	partners, err := s.ListPartners(ctx)
	if err != nil {
		return false, err
	}
	index := indexOfPartner(partners, partnerId)
	if index < 0 {
		return false, ErrPartnerNotFound
	}

	var deleted *Drawing
	remaining := make([]Drawing, 0, len(partners[index].DrawingsList))
	for _, drawing := range partners[index].DrawingsList {
		if drawing.ID == drawingId {
			d := drawing
			deleted = &d
			continue
		}
		remaining = append(remaining, drawing)
	}
	if deleted == nil {
		return false, nil
	}

	// Credit back exactly what the addition debited.
	if _, err := s.ledger.ApplyDelta(ctx, deleted.Amount); err != nil {
		return false, err
	}

	partners[index].DrawingsList = remaining
	partners[index].Drawings = ledger.SumAmounts(remaining)
	if err := s.repo.SavePartners(ctx, partners); err != nil {
		return false, err
	}
	return true, nil
}

func indexOfPartner(partners []Partner, partnerId string) int {
	for i, partner := range partners {
		if partner.ID == partnerId {
			return i
		}
	}
	return -1
}
