package expenditure

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/digitalive/digitalive/internal/kvstore"
	log "github.com/sirupsen/logrus"
)

const monthsKey = "@monthly_expenditures"

func expendituresKey(monthId string) string {
	return fmt.Sprintf("@expenditures_%s", monthId)
}

type Repository interface {
	GetMonths(ctx context.Context) ([]Month, error)
	SaveMonths(ctx context.Context, months []Month) error
	GetExpenditures(ctx context.Context, monthId string) ([]Expenditure, error)
	SaveExpenditures(ctx context.Context, monthId string, expenditures []Expenditure) error
}

type RepositoryImpl struct {
	store kvstore.Store
}

func NewRepository(store kvstore.Store) *RepositoryImpl {
	return &RepositoryImpl{store: store}
}

func (r *RepositoryImpl) GetMonths(ctx context.Context) ([]Month, error) {
	raw, ok, err := r.store.Get(ctx, monthsKey)
	if err != nil {
		return nil, fmt.Errorf("failed to load expenditure months: %w", err)
	}
	if !ok {
		return []Month{}, nil
	}
	var months []Month
	if err := json.Unmarshal(raw, &months); err != nil {
		err := fmt.Errorf("failed to decode expenditure months: %w", err)
		log.Error(err)
		return nil, err
	}
	return months, nil
}

func (r *RepositoryImpl) SaveMonths(ctx context.Context, months []Month) error {
	raw, err := json.Marshal(months)
	if err != nil {
		return fmt.Errorf("failed to encode expenditure months: %w", err)
	}
	if err := r.store.Set(ctx, monthsKey, raw); err != nil {
		return fmt.Errorf("failed to save expenditure months: %w", err)
	}
	return nil
}

func (r *RepositoryImpl) GetExpenditures(ctx context.Context, monthId string) ([]Expenditure, error) {
	raw, ok, err := r.store.Get(ctx, expendituresKey(monthId))
	if err != nil {
		return nil, fmt.Errorf("failed to load expenditures: %w", err)
	}
	if !ok {
		return []Expenditure{}, nil
	}
	var expenditures []Expenditure
	if err := json.Unmarshal(raw, &expenditures); err != nil {
		err := fmt.Errorf("failed to decode expenditures: %w", err)
		log.Error(err)
		return nil, err
	}
	return expenditures, nil
}

func (r *RepositoryImpl) SaveExpenditures(ctx context.Context, monthId string, expenditures []Expenditure) error {
	raw, err := json.Marshal(expenditures)
	if err != nil {
		return fmt.Errorf("failed to encode expenditures: %w", err)
	}
	if err := r.store.Set(ctx, expendituresKey(monthId), raw); err != nil {
		return fmt.Errorf("failed to save expenditures: %w", err)
	}
	return nil
}
