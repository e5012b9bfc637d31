package partner

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/digitalive/digitalive/internal/kvstore"
	log "github.com/sirupsen/logrus"
)

const partnersKey = "@partners"

type Repository interface {
	// GetPartners returns the stored collection, or ok=false when nothing
	// has been stored yet.
	GetPartners(ctx context.Context) ([]Partner, bool, error)
	SavePartners(ctx context.Context, partners []Partner) error
}

type RepositoryImpl struct {
	store kvstore.Store
}

func NewRepository(store kvstore.Store) *RepositoryImpl {
	return &RepositoryImpl{store: store}
}

func (r *RepositoryImpl) GetPartners(ctx context.Context) ([]Partner, bool, error) {
	raw, ok, err := r.store.Get(ctx, partnersKey)
	if err != nil {
		return nil, false, fmt.Errorf("failed to load partners: %w", err)
	}
	if !ok {
		return nil, false, nil
	}
	var partners []Partner
	if err := json.Unmarshal(raw, &partners); err != nil {
		err := fmt.Errorf("failed to decode partners: %w", err)
		log.Error(err)
		return nil, false, err
	}
	return partners, true, nil
}

func (r *RepositoryImpl) SavePartners(ctx context.Context, partners []Partner) error {
	raw, err := json.Marshal(partners)
	if err != nil {
		return fmt.Errorf("failed to encode partners: %w", err)
	}
	if err := r.store.Set(ctx, partnersKey, raw); err != nil {
		return fmt.Errorf("failed to save partners: %w", err)
	}
	return nil
}
