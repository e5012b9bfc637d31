package expenditure

import (
	"context"
	"testing"
	"time"

	"github.com/digitalive/digitalive/internal/kvstore"
	"github.com/digitalive/digitalive/internal/utils"
	"github.com/digitalive/digitalive/pkg/balance"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ctx = context.Background()

func setupService(t *testing.T) (Service, balance.Ledger, *utils.MockClock) {
	store := kvstore.NewMemoryStore()
	clock := &utils.MockClock{FixedNow: time.Date(2025, time.June, 17, 10, 0, 0, 0, time.UTC)}
	ledger := balance.NewKVLedger(store, nil)
	service := NewService(NewRepository(store), ledger, clock, nil)
	t.Cleanup(store.Cleanup)
	return service, ledger, clock
}

func seedBalance(t *testing.T, ledger balance.Ledger, amount int64) {
	_, err := ledger.ApplyDelta(ctx, decimal.NewFromInt(amount))
	require.NoError(t, err)
}

func currentMonth(t *testing.T, service Service) Month {
	months, err := service.ListMonths(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, months)
	return months[0]
}

func TestServiceImpl_ListMonths(t *testing.T) {
	t.Run("should create the current month on first load", func(t *testing.T) {
		// given
		service, _, _ := setupService(t)

		// when
		months, err := service.ListMonths(ctx)

		// then
		require.NoError(t, err)
		require.Len(t, months, 1)
		assert.Equal(t, "June 2025", months[0].Name)
		assert.True(t, months[0].Total.IsZero())
	})

	t.Run("should not duplicate the current month on repeated loads", func(t *testing.T) {
		// given
		service, _, _ := setupService(t)
		_, err := service.ListMonths(ctx)
		require.NoError(t, err)

		// when
		months, err := service.ListMonths(ctx)

		// then
		require.NoError(t, err)
		assert.Len(t, months, 1)
	})

	t.Run("should prepend a fresh month after rollover", func(t *testing.T) {
		// given
		service, _, clock := setupService(t)
		_, err := service.ListMonths(ctx)
		require.NoError(t, err)

		// when
		clock.SetNow(time.Date(2025, time.July, 1, 0, 0, 0, 0, time.UTC))
		months, err := service.ListMonths(ctx)

		// then
		require.NoError(t, err)
		require.Len(t, months, 2)
		assert.Equal(t, "July 2025", months[0].Name)
		assert.Equal(t, "June 2025", months[1].Name)
	})
}

func TestServiceImpl_AddExpenditure(t *testing.T) {
	t.Run("should debit the balance and recompute the month total", func(t *testing.T) {
		// given
		service, ledger, _ := setupService(t)
		seedBalance(t, ledger, 10000)
		month := currentMonth(t, service)

		// when
		created, err := service.AddExpenditure(ctx, month.ID, Expenditure{
			Description: "Office rent",
			Amount:      decimal.NewFromInt(3000),
		})

		// then
		require.NoError(t, err)
		assert.NotEmpty(t, created.ID)
		months, err := service.ListMonths(ctx)
		require.NoError(t, err)
		assert.True(t, months[0].Total.Equal(decimal.NewFromInt(3000)))
		remaining, err := ledger.Read(ctx)
		require.NoError(t, err)
		assert.True(t, remaining.Equal(decimal.NewFromInt(7000)))
	})

	t.Run("should reject a missing description with no state change", func(t *testing.T) {
		// given
		service, ledger, _ := setupService(t)
		seedBalance(t, ledger, 10000)
		month := currentMonth(t, service)

		// when
		_, err := service.AddExpenditure(ctx, month.ID, Expenditure{Amount: decimal.NewFromInt(100)})

		// then
		assert.ErrorIs(t, err, ErrValidation)
		remaining, readErr := ledger.Read(ctx)
		require.NoError(t, readErr)
		assert.True(t, remaining.Equal(decimal.NewFromInt(10000)))
	})

	t.Run("should reject a non-positive amount", func(t *testing.T) {
		service, _, _ := setupService(t)
		month := currentMonth(t, service)

		_, err := service.AddExpenditure(ctx, month.ID, Expenditure{Description: "Rent"})

		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("should fail for an unknown month", func(t *testing.T) {
		service, _, _ := setupService(t)

		_, err := service.AddExpenditure(ctx, "missing", Expenditure{
			Description: "Rent",
			Amount:      decimal.NewFromInt(100),
		})

		assert.ErrorIs(t, err, ErrMonthNotFound)
	})
}

func TestServiceImpl_DeleteExpenditure(t *testing.T) {
	t.Run("deleting should be the exact inverse of adding", func(t *testing.T) {
		// given
		service, ledger, _ := setupService(t)
		seedBalance(t, ledger, 10000)
		month := currentMonth(t, service)
		created, err := service.AddExpenditure(ctx, month.ID, Expenditure{
			Description: "Office rent",
			Amount:      decimal.RequireFromString("3000.50"),
		})
		require.NoError(t, err)

		// when
		ok, err := service.DeleteExpenditure(ctx, month.ID, created.ID)

		// then
		require.NoError(t, err)
		assert.True(t, ok)
		remaining, err := ledger.Read(ctx)
		require.NoError(t, err)
		assert.True(t, remaining.Equal(decimal.NewFromInt(10000)))
		months, err := service.ListMonths(ctx)
		require.NoError(t, err)
		assert.True(t, months[0].Total.IsZero())
		expenditures, err := service.ListExpenditures(ctx, month.ID)
		require.NoError(t, err)
		assert.Empty(t, expenditures)
	})

	t.Run("should not touch the balance for an unknown expenditure", func(t *testing.T) {
		// given
		service, ledger, _ := setupService(t)
		seedBalance(t, ledger, 10000)
		month := currentMonth(t, service)

		// when
		ok, err := service.DeleteExpenditure(ctx, month.ID, "missing")

		// then
		require.NoError(t, err)
		assert.False(t, ok)
		remaining, err := ledger.Read(ctx)
		require.NoError(t, err)
		assert.True(t, remaining.Equal(decimal.NewFromInt(10000)))
	})
}

func TestServiceImpl_BalanceConservation(t *testing.T) {
	t.Run("final balance should equal seed minus present expenditures", func(t *testing.T) {
		// given
		service, ledger, _ := setupService(t)
		seedBalance(t, ledger, 100000)
		month := currentMonth(t, service)

		// when a sequence of adds and deletes runs
		first, err := service.AddExpenditure(ctx, month.ID, Expenditure{Description: "Rent", Amount: decimal.NewFromInt(5000)})
		require.NoError(t, err)
		_, err = service.AddExpenditure(ctx, month.ID, Expenditure{Description: "Fuel", Amount: decimal.NewFromInt(1200)})
		require.NoError(t, err)
		_, err = service.AddExpenditure(ctx, month.ID, Expenditure{Description: "Tea", Amount: decimal.NewFromInt(300)})
		require.NoError(t, err)
		ok, err := service.DeleteExpenditure(ctx, month.ID, first.ID)
		require.NoError(t, err)
		require.True(t, ok)

		// then
		remaining, err := ledger.Read(ctx)
		require.NoError(t, err)
		assert.True(t, remaining.Equal(decimal.NewFromInt(100000-1200-300)))
		months, err := service.ListMonths(ctx)
		require.NoError(t, err)
		assert.True(t, months[0].Total.Equal(decimal.NewFromInt(1500)))
	})
}
