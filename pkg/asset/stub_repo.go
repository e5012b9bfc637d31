package asset

import (
	"context"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
)

// StubRepository mimics the transactional repository in memory, including
// the sufficiency check and the paired balance adjustment.
type StubRepository struct {
	Balance decimal.Decimal
	data    map[string]Asset
}

func NewStubRepository() *StubRepository {
	return &StubRepository{Balance: decimal.Zero, data: map[string]Asset{}}
}

func (s *StubRepository) GetAll(ctx context.Context) ([]Asset, error) {
	assets := make([]Asset, 0, len(s.data))
	for _, asset := range s.data {
		assets = append(assets, asset)
	}
	sort.Slice(assets, func(i, j int) bool {
		return assets[i].CreatedAt.After(assets[j].CreatedAt)
	})
	return assets, nil
}

func (s *StubRepository) Store(ctx context.Context, asset Asset) error {
	if s.Balance.LessThan(asset.Amount) {
		return fmt.Errorf("%w: have %s, need %s", ErrInsufficientBalance, s.Balance, asset.Amount)
	}
	s.Balance = s.Balance.Sub(asset.Amount)
	s.data[asset.ID] = asset
	return nil
}

func (s *StubRepository) Delete(ctx context.Context, assetId string) (bool, error) {
	asset, ok := s.data[assetId]
	if !ok {
		return false, nil
	}
	s.Balance = s.Balance.Add(asset.Amount)
	delete(s.data, assetId)
	return true, nil
}

func (s *StubRepository) Cleanup() {
	s.Balance = decimal.Zero
	s.data = map[string]Asset{}
}
