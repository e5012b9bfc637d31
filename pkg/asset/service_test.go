package asset

import (
	"context"
	"testing"
	"time"

	"github.com/digitalive/digitalive/internal/utils"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ctx = context.Background()

func setupService(t *testing.T) (Service, *StubRepository, *utils.MockClock) {
	repo := NewStubRepository()
	clock := &utils.MockClock{FixedNow: time.Date(2025, time.June, 17, 10, 0, 0, 0, time.UTC)}
	service := NewService(repo, clock)
	t.Cleanup(repo.Cleanup)
	return service, repo, clock
}

func TestServiceImpl_AddAsset(t *testing.T) {
	t.Run("should debit the balance and store the purchase", func(t *testing.T) {
		// given
		service, repo, _ := setupService(t)
		repo.Balance = decimal.NewFromInt(100000)

		// when
		created, err := service.AddAsset(ctx, Asset{
			Name:   "Embroidery machine",
			Amount: decimal.NewFromInt(75000),
		})

		// then
		require.NoError(t, err)
		assert.NotEmpty(t, created.ID)
		assert.False(t, created.CreatedAt.IsZero())
		assert.True(t, repo.Balance.Equal(decimal.NewFromInt(25000)))
		assets, err := service.ListAssets(ctx)
		require.NoError(t, err)
		require.Len(t, assets, 1)
		assert.Equal(t, "Embroidery machine", assets[0].Name)
	})

	t.Run("should reject a purchase exceeding the balance with no writes", func(t *testing.T) {
		// given
		service, repo, _ := setupService(t)
		repo.Balance = decimal.NewFromInt(50000)

		// when
		_, err := service.AddAsset(ctx, Asset{
			Name:   "Embroidery machine",
			Amount: decimal.NewFromInt(75000),
		})

		// then
		assert.ErrorIs(t, err, ErrInsufficientBalance)
		assert.True(t, repo.Balance.Equal(decimal.NewFromInt(50000)))
		assets, listErr := service.ListAssets(ctx)
		require.NoError(t, listErr)
		assert.Empty(t, assets)
	})

	t.Run("should reject a nameless asset", func(t *testing.T) {
		service, _, _ := setupService(t)

		_, err := service.AddAsset(ctx, Asset{Amount: decimal.NewFromInt(100)})

		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("should reject a non-positive amount", func(t *testing.T) {
		service, _, _ := setupService(t)

		_, err := service.AddAsset(ctx, Asset{Name: "Machine"})

		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("should list newest purchases first", func(t *testing.T) {
		// given
		service, repo, clock := setupService(t)
		repo.Balance = decimal.NewFromInt(100000)
		_, err := service.AddAsset(ctx, Asset{Name: "Iron press", Amount: decimal.NewFromInt(5000)})
		require.NoError(t, err)
		clock.SetNow(clock.FixedNow.Add(time.Hour))
		_, err = service.AddAsset(ctx, Asset{Name: "Generator", Amount: decimal.NewFromInt(30000)})
		require.NoError(t, err)

		// when
		assets, err := service.ListAssets(ctx)

		// then
		require.NoError(t, err)
		require.Len(t, assets, 2)
		assert.Equal(t, "Generator", assets[0].Name)
		assert.Equal(t, "Iron press", assets[1].Name)
	})
}

func TestServiceImpl_DeleteAsset(t *testing.T) {
	t.Run("deleting should be the exact inverse of adding", func(t *testing.T) {
		// given
		service, repo, _ := setupService(t)
		repo.Balance = decimal.NewFromInt(100000)
		created, err := service.AddAsset(ctx, Asset{
			Name:   "Embroidery machine",
			Amount: decimal.RequireFromString("75000.50"),
		})
		require.NoError(t, err)

		// when
		ok, err := service.DeleteAsset(ctx, created.ID)

		// then
		require.NoError(t, err)
		assert.True(t, ok)
		assert.True(t, repo.Balance.Equal(decimal.NewFromInt(100000)))
		assets, err := service.ListAssets(ctx)
		require.NoError(t, err)
		assert.Empty(t, assets)
	})

	t.Run("should not touch the balance for an unknown asset", func(t *testing.T) {
		// given
		service, repo, _ := setupService(t)
		repo.Balance = decimal.NewFromInt(100000)

		// when
		ok, err := service.DeleteAsset(ctx, "missing")

		// then
		require.NoError(t, err)
		assert.False(t, ok)
		assert.True(t, repo.Balance.Equal(decimal.NewFromInt(100000)))
	})
}
