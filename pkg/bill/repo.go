package bill

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/digitalive/digitalive/internal/kvstore"
	log "github.com/sirupsen/logrus"
)

const billsKey = "@company_bills"

type Repository interface {
	GetBills(ctx context.Context) ([]Bill, error)
	SaveBills(ctx context.Context, bills []Bill) error
}

type RepositoryImpl struct {
	store kvstore.Store
}

func NewRepository(store kvstore.Store) *RepositoryImpl {
	return &RepositoryImpl{store: store}
}

func (r *RepositoryImpl) GetBills(ctx context.Context) ([]Bill, error) {
	raw, ok, err := r.store.Get(ctx, billsKey)
	if err != nil {
		return nil, fmt.Errorf("failed to load bills: %w", err)
	}
	if !ok {
		return []Bill{}, nil
	}
	var bills []Bill
	if err := json.Unmarshal(raw, &bills); err != nil {
		err := fmt.Errorf("failed to decode bills: %w", err)
		log.Error(err)
		return nil, err
	}
	return bills, nil
}

func (r *RepositoryImpl) SaveBills(ctx context.Context, bills []Bill) error {
	raw, err := json.Marshal(bills)
	if err != nil {
		return fmt.Errorf("failed to encode bills: %w", err)
	}
	if err := r.store.Set(ctx, billsKey, raw); err != nil {
		return fmt.Errorf("failed to save bills: %w", err)
	}
	return nil
}
