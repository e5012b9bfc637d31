package account

import (
	"context"
	"errors"
	"fmt"

	"github.com/digitalive/digitalive/internal/event_bus"
	"github.com/digitalive/digitalive/internal/utils"
	"github.com/digitalive/digitalive/pkg/ledger"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

var ErrValidation = errors.New("invalid input")
var ErrAccountNotFound = errors.New("account not found")
var ErrMonthNotFound = errors.New("month not found")
var ErrEntryNotFound = errors.New("entry not found")

type Service interface {
	// ListAccounts returns all accounts, guaranteeing each carries a
	// bucket for the current calendar month.
	ListAccounts(ctx context.Context) ([]Account, error)
	CreateAccount(ctx context.Context, account Account) (Account, error)
	UpdateAccount(ctx context.Context, account Account) (Account, error)
	DeleteAccount(ctx context.Context, id string) (bool, error)
	ListEntries(ctx context.Context, accountId, monthId string) ([]Entry, error)
	AddEntry(ctx context.Context, accountId, monthId string, entry Entry) (Entry, error)
	UpdateEntry(ctx context.Context, accountId, monthId string, entry Entry) (Entry, error)
	DeleteEntry(ctx context.Context, accountId, monthId, entryId string) (bool, error)
	// EnsureCurrentMonths re-runs the current-month check over all stored
	// accounts. Idempotent with the check performed by ListAccounts.
	EnsureCurrentMonths(ctx context.Context) error
}

type ServiceImpl struct {
	repo  Repository
	clock utils.Clock
}

func NewService(repo Repository, clock utils.Clock, eventBus *event_bus.EventBus) Service {
	service := &ServiceImpl{repo: repo, clock: clock}
	if eventBus != nil {
		event_bus.SubscribeTyped[event_bus.MonthRolloverCheck](
			eventBus,
			"rollover.check",
			func(e event_bus.EventT[event_bus.MonthRolloverCheck]) error {
				log.Debug("received month rollover check for accounts")
				return service.EnsureCurrentMonths(e.Context())
			},
		)
	}
	return service
}

func (s *ServiceImpl) ListAccounts(ctx context.Context) ([]Account, error) {
	accounts, err := s.repo.GetAccounts(ctx)
	if err != nil {
		return nil, err
	}

	accounts, changed := s.ensureCurrentMonth(accounts)
	if changed {
		// Persist immediately so the bucket is not re-created on next load.
		if err := s.repo.SaveAccounts(ctx, accounts); err != nil {
			return nil, err
		}
	}
	return accounts, nil
}

func (s *ServiceImpl) CreateAccount(ctx context.Context, account Account) (Account, error) {
	if account.Name == "" {
		return Account{}, fmt.Errorf("%w: account name is required", ErrValidation)
	}
	if account.Color == "" {
		account.Color = DefaultColor
	}

	account.ID = uuid.NewString()
	account.Months, _ = ledger.EnsureCurrentBucket(nil, s.clock.Now(), newMonthSummary)

	accounts, err := s.repo.GetAccounts(ctx)
	if err != nil {
		return Account{}, err
	}
	accounts = append(accounts, account)
	if err := s.repo.SaveAccounts(ctx, accounts); err != nil {
		return Account{}, err
	}
	return account, nil
}

func (s *ServiceImpl) UpdateAccount(ctx context.Context, account Account) (Account, error) {
	if account.Name == "" {
		return Account{}, fmt.Errorf("%w: account name is required", ErrValidation)
	}

	accounts, err := s.repo.GetAccounts(ctx)
	if err != nil {
		return Account{}, err
	}
	idx := findAccount(accounts, account.ID)
	if idx == -1 {
		return Account{}, ErrAccountNotFound
	}

	// Only name, description and color are mutable; the month list stays
	// owned by the ledger.
	accounts[idx].Name = account.Name
	accounts[idx].Description = account.Description
	accounts[idx].Color = account.Color

	if err := s.repo.SaveAccounts(ctx, accounts); err != nil {
		return Account{}, err
	}
	return accounts[idx], nil
}

func (s *ServiceImpl) DeleteAccount(ctx context.Context, id string) (bool, error) {
	accounts, err := s.repo.GetAccounts(ctx)
	if err != nil {
		return false, err
	}
	idx := findAccount(accounts, id)
	if idx == -1 {
		return false, nil
	}
	deleted := accounts[idx]

	accounts = append(accounts[:idx], accounts[idx+1:]...)
	if err := s.repo.SaveAccounts(ctx, accounts); err != nil {
		return false, err
	}

	for _, month := range deleted.Months {
		if err := s.repo.DeleteEntries(ctx, deleted.ID, month.ID); err != nil {
			log.Warnf("failed to delete entries of account %s month %s: %v", deleted.ID, month.ID, err)
		}
	}
	return true, nil
}

func (s *ServiceImpl) ListEntries(ctx context.Context, accountId, monthId string) ([]Entry, error) {
	accounts, err := s.repo.GetAccounts(ctx)
	if err != nil {
		return nil, err
	}
	if _, _, err := findMonth(accounts, accountId, monthId); err != nil {
		return nil, err
	}
	return s.repo.GetEntries(ctx, accountId, monthId)
}

func (s *ServiceImpl) AddEntry(ctx context.Context, accountId, monthId string, entry Entry) (Entry, error) {
	if err := validateEntry(entry); err != nil {
		return Entry{}, err
	}
	entry.ID = uuid.NewString()
	entry.Date = s.clock.Now()

	entries, err := s.repo.GetEntries(ctx, accountId, monthId)
	if err != nil {
		return Entry{}, err
	}
	entries = append(entries, entry)

	if err := s.saveEntriesAndRecompute(ctx, accountId, monthId, entries); err != nil {
		return Entry{}, err
	}
	return entry, nil
}

func (s *ServiceImpl) UpdateEntry(ctx context.Context, accountId, monthId string, entry Entry) (Entry, error) {
	if err := validateEntry(entry); err != nil {
		return Entry{}, err
	}

	entries, err := s.repo.GetEntries(ctx, accountId, monthId)
	if err != nil {
		return Entry{}, err
	}
	updated := false
	for i, existing := range entries {
		if existing.ID == entry.ID {
			entry.Date = existing.Date
			entries[i] = entry
			updated = true
			break
		}
	}
	if !updated {
		return Entry{}, ErrEntryNotFound
	}

	if err := s.saveEntriesAndRecompute(ctx, accountId, monthId, entries); err != nil {
		return Entry{}, err
	}
	return entry, nil
}

func (s *ServiceImpl) DeleteEntry(ctx context.Context, accountId, monthId, entryId string) (bool, error) {
	entries, err := s.repo.GetEntries(ctx, accountId, monthId)
	if err != nil {
		return false, err
	}
	remaining := make([]Entry, 0, len(entries))
	for _, entry := range entries {
		if entry.ID != entryId {
			remaining = append(remaining, entry)
		}
	}
	if len(remaining) == len(entries) {
		return false, nil
	}

	if err := s.saveEntriesAndRecompute(ctx, accountId, monthId, remaining); err != nil {
		return false, err
	}
	return true, nil
}

func (s *ServiceImpl) EnsureCurrentMonths(ctx context.Context) error {
	accounts, err := s.repo.GetAccounts(ctx)
	if err != nil {
		return err
	}
	accounts, changed := s.ensureCurrentMonth(accounts)
	if !changed {
		return nil
	}
	return s.repo.SaveAccounts(ctx, accounts)
}

// saveEntriesAndRecompute persists the full entry list and then re-derives
// the owning month summary from it, replacing the summary row in the parent
// collection and persisting that too.
func (s *ServiceImpl) saveEntriesAndRecompute(ctx context.Context, accountId, monthId string, entries []Entry) error {
	accounts, err := s.repo.GetAccounts(ctx)
	if err != nil {
		return err
	}
	accountIdx, monthIdx, err := findMonth(accounts, accountId, monthId)
	if err != nil {
		return err
	}

	if err := s.repo.SaveEntries(ctx, accountId, monthId, entries); err != nil {
		return err
	}

	totals := ledger.RecomputeTotals(entries)
	month := &accounts[accountIdx].Months[monthIdx]
	month.Orders = totals.Orders
	month.Income = totals.Income
	month.Cost = totals.Cost
	month.Profit = totals.Profit

	return s.repo.SaveAccounts(ctx, accounts)
}

func (s *ServiceImpl) ensureCurrentMonth(accounts []Account) ([]Account, bool) {
	now := s.clock.Now()
	changed := false
	for i, account := range accounts {
		months, added := ledger.EnsureCurrentBucket(account.Months, now, newMonthSummary)
		if added {
			accounts[i].Months = months
			changed = true
		}
	}
	return accounts, changed
}

func validateEntry(entry Entry) error {
	if entry.ProductName == "" {
		return fmt.Errorf("%w: product name and amount received are required", ErrValidation)
	}
	if entry.AmountReceived.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("%w: product name and amount received are required", ErrValidation)
	}
	if entry.ProductionCost.IsNegative() || entry.DeliveryCost.IsNegative() {
		return fmt.Errorf("%w: costs must not be negative", ErrValidation)
	}
	return nil
}

func findAccount(accounts []Account, id string) int {
	for idx, account := range accounts {
		if account.ID == id {
			return idx
		}
	}
	return -1
}

func findMonth(accounts []Account, accountId, monthId string) (int, int, error) {
	accountIdx := findAccount(accounts, accountId)
	if accountIdx == -1 {
		return 0, 0, ErrAccountNotFound
	}
	for monthIdx, month := range accounts[accountIdx].Months {
		if month.ID == monthId {
			return accountIdx, monthIdx, nil
		}
	}
	return 0, 0, ErrMonthNotFound
}
