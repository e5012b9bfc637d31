package asset

import (
	"context"
	"errors"
	"fmt"

	"github.com/digitalive/digitalive/internal/utils"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var ErrValidation = errors.New("invalid input")

type Service interface {
	ListAssets(ctx context.Context) ([]Asset, error)
	// AddAsset records a purchase, debiting the balance atomically with the
	// insert. Fails with ErrInsufficientBalance when the balance cannot
	// cover the amount.
	AddAsset(ctx context.Context, asset Asset) (Asset, error)
	// DeleteAsset removes the purchase and credits its amount back.
	DeleteAsset(ctx context.Context, assetId string) (bool, error)
}

type ServiceImpl struct {
	repo  Repository
	clock utils.Clock
}

func NewService(repo Repository, clock utils.Clock) Service {
	return &ServiceImpl{repo: repo, clock: clock}
}

func (s *ServiceImpl) ListAssets(ctx context.Context) ([]Asset, error) {
	return s.repo.GetAll(ctx)
}

func (s *ServiceImpl) AddAsset(ctx context.Context, asset Asset) (Asset, error) {
	if asset.Name == "" {
		return Asset{}, fmt.Errorf("%w: asset name and amount are required", ErrValidation)
	}
	if asset.Amount.LessThanOrEqual(decimal.Zero) {
		return Asset{}, fmt.Errorf("%w: amount must be positive", ErrValidation)
	}

	asset.ID = uuid.NewString()
	asset.CreatedAt = s.clock.Now()

	if err := s.repo.Store(ctx, asset); err != nil {
		return Asset{}, err
	}
	return asset, nil
}

func (s *ServiceImpl) DeleteAsset(ctx context.Context, assetId string) (bool, error) {
	return s.repo.Delete(ctx, assetId)
}
