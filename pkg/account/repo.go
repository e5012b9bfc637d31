package account

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/digitalive/digitalive/internal/kvstore"
	log "github.com/sirupsen/logrus"
)

const accountsKey = "@all_accounts"

func entriesKey(accountId, monthId string) string {
	return fmt.Sprintf("@entries_%s_%s", accountId, monthId)
}

type Repository interface {
	// GetAccounts returns the whole account collection.
	GetAccounts(ctx context.Context) ([]Account, error)
	// SaveAccounts persists the whole account collection wholesale.
	SaveAccounts(ctx context.Context, accounts []Account) error
	GetEntries(ctx context.Context, accountId, monthId string) ([]Entry, error)
	SaveEntries(ctx context.Context, accountId, monthId string, entries []Entry) error
	DeleteEntries(ctx context.Context, accountId, monthId string) error
}

type RepositoryImpl struct {
	store kvstore.Store
}

func NewRepository(store kvstore.Store) *RepositoryImpl {
	return &RepositoryImpl{store: store}
}

func (r *RepositoryImpl) GetAccounts(ctx context.Context) ([]Account, error) {
	raw, ok, err := r.store.Get(ctx, accountsKey)
	if err != nil {
		return nil, fmt.Errorf("failed to load accounts: %w", err)
	}
	if !ok {
		return []Account{}, nil
	}
	var accounts []Account
	if err := json.Unmarshal(raw, &accounts); err != nil {
		err := fmt.Errorf("failed to decode accounts: %w", err)
		log.Error(err)
		return nil, err
	}
	return accounts, nil
}

func (r *RepositoryImpl) SaveAccounts(ctx context.Context, accounts []Account) error {
	raw, err := json.Marshal(accounts)
	if err != nil {
		return fmt.Errorf("failed to encode accounts: %w", err)
	}
	if err := r.store.Set(ctx, accountsKey, raw); err != nil {
		return fmt.Errorf("failed to save accounts: %w", err)
	}
	return nil
}

func (r *RepositoryImpl) GetEntries(ctx context.Context, accountId, monthId string) ([]Entry, error) {
	raw, ok, err := r.store.Get(ctx, entriesKey(accountId, monthId))
	if err != nil {
		return nil, fmt.Errorf("failed to load entries: %w", err)
	}
	if !ok {
		return []Entry{}, nil
	}
	var entries []Entry
	if err := json.Unmarshal(raw, &entries); err != nil {
		err := fmt.Errorf("failed to decode entries: %w", err)
		log.Error(err)
		return nil, err
	}
	return entries, nil
}

func (r *RepositoryImpl) SaveEntries(ctx context.Context, accountId, monthId string, entries []Entry) error {
	raw, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("failed to encode entries: %w", err)
	}
	if err := r.store.Set(ctx, entriesKey(accountId, monthId), raw); err != nil {
		return fmt.Errorf("failed to save entries: %w", err)
	}
	return nil
}

func (r *RepositoryImpl) DeleteEntries(ctx context.Context, accountId, monthId string) error {
	return r.store.Delete(ctx, entriesKey(accountId, monthId))
}
