package expenditure

import (
	"context"
	"errors"
	"fmt"

	"github.com/digitalive/digitalive/internal/event_bus"
	"github.com/digitalive/digitalive/internal/utils"
	"github.com/digitalive/digitalive/pkg/balance"
	"github.com/digitalive/digitalive/pkg/ledger"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

var ErrValidation = errors.New("invalid input")
var ErrMonthNotFound = errors.New("expenditure month not found")

type Service interface {
	// ListMonths returns all expenditure months, guaranteeing the current
	// calendar month bucket exists.
	ListMonths(ctx context.Context) ([]Month, error)
	ListExpenditures(ctx context.Context, monthId string) ([]Expenditure, error)
	AddExpenditure(ctx context.Context, monthId string, expenditure Expenditure) (Expenditure, error)
	DeleteExpenditure(ctx context.Context, monthId, expenditureId string) (bool, error)
	// EnsureCurrentMonth re-runs the current-month check. Idempotent with
	// the check performed by ListMonths.
	EnsureCurrentMonth(ctx context.Context) error
}

type ServiceImpl struct {
	repo   Repository
	ledger balance.Ledger
	clock  utils.Clock
}

func NewService(repo Repository, ledger balance.Ledger, clock utils.Clock, eventBus *event_bus.EventBus) Service {
	service := &ServiceImpl{repo: repo, ledger: ledger, clock: clock}
	if eventBus != nil {
		event_bus.SubscribeTyped[event_bus.MonthRolloverCheck](
			eventBus,
			"rollover.check",
			func(e event_bus.EventT[event_bus.MonthRolloverCheck]) error {
				log.Debug("received month rollover check for expenditures")
				return service.EnsureCurrentMonth(e.Context())
			},
		)
	}
	return service
}

func (s *ServiceImpl) ListMonths(ctx context.Context) ([]Month, error) {
	months, err := s.repo.GetMonths(ctx)
	if err != nil {
		return nil, err
	}

	months, changed := ledger.EnsureCurrentBucket(months, s.clock.Now(), newMonth)
	if changed {
		// Persist immediately so the bucket is not re-created on next load.
		if err := s.repo.SaveMonths(ctx, months); err != nil {
			return nil, err
		}
	}
	return months, nil
}

func (s *ServiceImpl) ListExpenditures(ctx context.Context, monthId string) ([]Expenditure, error) {
	if err := s.requireMonth(ctx, monthId); err != nil {
		return nil, err
	}
	return s.repo.GetExpenditures(ctx, monthId)
}

func (s *ServiceImpl) AddExpenditure(ctx context.Context, monthId string, expenditure Expenditure) (Expenditure, error) {
	if expenditure.Description == "" {
		return Expenditure{}, fmt.Errorf("%w: description and amount are required", ErrValidation)
	}
	if expenditure.Amount.LessThanOrEqual(decimal.Zero) {
		return Expenditure{}, fmt.Errorf("%w: amount must be positive", ErrValidation)
	}
	if err := s.requireMonth(ctx, monthId); err != nil {
		return Expenditure{}, err
	}

	expenditure.ID = uuid.NewString()
	expenditure.Date = s.clock.Now()

	// Debit the shared balance before persisting the line, so every
	// stored expenditure has already been paired with its delta.
	if _, err := s.ledger.ApplyDelta(ctx, expenditure.Amount.Neg()); err != nil {
		return Expenditure{}, err
	}

	expenditures, err := s.repo.GetExpenditures(ctx, monthId)
	if err != nil {
		return Expenditure{}, err
	}
	expenditures = append(expenditures, expenditure)
	if err := s.saveAndRecompute(ctx, monthId, expenditures); err != nil {
		return Expenditure{}, err
	}
	return expenditure, nil
}

func (s *ServiceImpl) DeleteExpenditure(ctx context.Context, monthId, expenditureId string) (bool, error) {
	expenditures, err := s.repo.GetExpenditures(ctx, monthId)
	if err != nil {
		return false, err
	}
	var deleted *Expenditure
	remaining := make([]Expenditure, 0, len(expenditures))
	for _, expenditure := range expenditures {
		if expenditure.ID == expenditureId {
			e := expenditure
			deleted = &e
			continue
		}
		remaining = append(remaining, expenditure)
	}
	if deleted == nil {
		return false, nil
	}

	// Credit back exactly what the addition debited.
	if _, err := s.ledger.ApplyDelta(ctx, deleted.Amount); err != nil {
		return false, err
	}

	if err := s.saveAndRecompute(ctx, monthId, remaining); err != nil {
		return false, err
	}
	return true, nil
}

func (s *ServiceImpl) EnsureCurrentMonth(ctx context.Context) error {
	months, err := s.repo.GetMonths(ctx)
	if err != nil {
		return err
	}
	months, changed := ledger.EnsureCurrentBucket(months, s.clock.Now(), newMonth)
	if !changed {
		return nil
	}
	return s.repo.SaveMonths(ctx, months)
}

func (s *ServiceImpl) saveAndRecompute(ctx context.Context, monthId string, expenditures []Expenditure) error {
	if err := s.repo.SaveExpenditures(ctx, monthId, expenditures); err != nil {
		return err
	}

	months, err := s.repo.GetMonths(ctx)
	if err != nil {
		return err
	}
	for i, month := range months {
		if month.ID == monthId {
			months[i].Total = ledger.SumAmounts(expenditures)
			return s.repo.SaveMonths(ctx, months)
		}
	}
	return ErrMonthNotFound
}

func (s *ServiceImpl) requireMonth(ctx context.Context, monthId string) error {
	months, err := s.repo.GetMonths(ctx)
	if err != nil {
		return err
	}
	for _, month := range months {
		if month.ID == monthId {
			return nil
		}
	}
	return ErrMonthNotFound
}
