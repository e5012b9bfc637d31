package bill

import (
	"context"
	"errors"
	"fmt"

	"github.com/digitalive/digitalive/internal/utils"
	"github.com/digitalive/digitalive/pkg/balance"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var ErrValidation = errors.New("invalid input")

type Service interface {
	ListBills(ctx context.Context) ([]Bill, error)
	// AddBill debits the company balance by the bill amount and prepends
	// the bill to the collection.
	AddBill(ctx context.Context, bill Bill) (Bill, error)
	// DeleteBill removes the bill and credits its amount back.
	DeleteBill(ctx context.Context, billId string) (bool, error)
}

type ServiceImpl struct {
	repo   Repository
	ledger balance.Ledger
	clock  utils.Clock
}

func NewService(repo Repository, ledger balance.Ledger, clock utils.Clock) Service {
	return &ServiceImpl{repo: repo, ledger: ledger, clock: clock}
}

func (s *ServiceImpl) ListBills(ctx context.Context) ([]Bill, error) {
	return s.repo.GetBills(ctx)
}

func (s *ServiceImpl) AddBill(ctx context.Context, bill Bill) (Bill, error) {
	if bill.Vendor == "" || bill.Month == "" {
		return Bill{}, fmt.Errorf("%w: vendor, amount and month are required", ErrValidation)
	}
	if bill.Amount.LessThanOrEqual(decimal.Zero) {
		return Bill{}, fmt.Errorf("%w: amount must be positive", ErrValidation)
	}

	bill.ID = uuid.NewString()
	bill.Date = s.clock.Now()

	// Debit the shared balance before persisting the bill, so every stored
	// bill has already been paired with its delta.
	if _, err := s.ledger.ApplyDelta(ctx, bill.Amount.Neg()); err != nil {
		return Bill{}, err
	}

	bills, err := s.repo.GetBills(ctx)
	if err != nil {
		return Bill{}, err
	}
	bills = append([]Bill{bill}, bills...)
	if err := s.repo.SaveBills(ctx, bills); err != nil {
		return Bill{}, err
	}
	return bill, nil
}

func (s *ServiceImpl) DeleteBill(ctx context.Context, billId string) (bool, error) {
	bills, err := s.repo.GetBills(ctx)
	if err != nil {
		return false, err
	}
	var deleted *Bill
	remaining := make([]Bill, 0, len(bills))
	for _, bill := range bills {
		if bill.ID == billId {
			b := bill
			deleted = &b
			continue
		}
		remaining = append(remaining, bill)
	}
	if deleted == nil {
		return false, nil
	}

	// Credit back exactly what the addition debited.
	if _, err := s.ledger.ApplyDelta(ctx, deleted.Amount); err != nil {
		return false, err
	}

	if err := s.repo.SaveBills(ctx, remaining); err != nil {
		return false, err
	}
	return true, nil
}
