package balance

import (
	"context"
	"testing"

	"github.com/digitalive/digitalive/internal/config"
	"github.com/digitalive/digitalive/internal/event_bus"
	"github.com/digitalive/digitalive/internal/kvstore"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKVLedger_Read(t *testing.T) {
	t.Run("should return zero when no balance is stored", func(t *testing.T) {
		ledger := NewKVLedger(kvstore.NewMemoryStore(), nil)

		amount, err := ledger.Read(context.Background())

		require.NoError(t, err)
		assert.True(t, amount.IsZero())
	})

	t.Run("should return the stored balance", func(t *testing.T) {
		store := kvstore.NewMemoryStore()
		require.NoError(t, store.Set(context.Background(), "@current_balance", []byte("800000")))
		ledger := NewKVLedger(store, nil)

		amount, err := ledger.Read(context.Background())

		require.NoError(t, err)
		assert.True(t, amount.Equal(decimal.NewFromInt(800000)))
	})

	t.Run("should fail when the stored value is not a number", func(t *testing.T) {
		store := kvstore.NewMemoryStore()
		require.NoError(t, store.Set(context.Background(), "@current_balance", []byte("not-a-number")))
		ledger := NewKVLedger(store, nil)

		_, err := ledger.Read(context.Background())

		assert.Error(t, err)
	})
}

func TestKVLedger_ApplyDelta(t *testing.T) {
	t.Run("should apply a negative delta and persist the result", func(t *testing.T) {
		// given
		store := kvstore.NewMemoryStore()
		ledger := NewKVLedger(store, nil)
		_, err := ledger.ApplyDelta(context.Background(), decimal.NewFromInt(10000))
		require.NoError(t, err)

		// when
		newAmount, err := ledger.ApplyDelta(context.Background(), decimal.NewFromInt(-5000))

		// then
		require.NoError(t, err)
		assert.True(t, newAmount.Equal(decimal.NewFromInt(5000)))
		persisted, err := ledger.Read(context.Background())
		require.NoError(t, err)
		assert.True(t, persisted.Equal(decimal.NewFromInt(5000)))
	})

	t.Run("opposite deltas should cancel out exactly", func(t *testing.T) {
		// given
		ledger := NewKVLedger(kvstore.NewMemoryStore(), nil)
		start, err := ledger.ApplyDelta(context.Background(), decimal.NewFromInt(10000))
		require.NoError(t, err)

		// when
		amount := decimal.RequireFromString("1234.56")
		_, err = ledger.ApplyDelta(context.Background(), amount.Neg())
		require.NoError(t, err)
		final, err := ledger.ApplyDelta(context.Background(), amount)
		require.NoError(t, err)

		// then
		assert.True(t, final.Equal(start))
	})

	t.Run("final balance should equal seed minus present amounts", func(t *testing.T) {
		// given a seed balance
		ledger := NewKVLedger(kvstore.NewMemoryStore(), nil)
		_, err := ledger.ApplyDelta(context.Background(), decimal.NewFromInt(100000))
		require.NoError(t, err)

		// when records are added and some deleted again
		added := []int64{5000, 2500, 300}
		for _, a := range added {
			_, err := ledger.ApplyDelta(context.Background(), decimal.NewFromInt(-a))
			require.NoError(t, err)
		}
		_, err = ledger.ApplyDelta(context.Background(), decimal.NewFromInt(2500))
		require.NoError(t, err)

		// then only the records still present weigh on the balance
		final, err := ledger.Read(context.Background())
		require.NoError(t, err)
		assert.True(t, final.Equal(decimal.NewFromInt(100000-5000-300)))
	})

	t.Run("should publish a balance change event", func(t *testing.T) {
		// given
		bus := event_bus.NewEventBus()
		var received []event_bus.BalanceChanged
		event_bus.SubscribeTyped[event_bus.BalanceChanged](bus, "balance.changed",
			func(e event_bus.EventT[event_bus.BalanceChanged]) error {
				received = append(received, e.Data)
				return nil
			})
		ledger := NewKVLedger(kvstore.NewMemoryStore(), bus)

		// when
		_, err := ledger.ApplyDelta(context.Background(), decimal.NewFromInt(-42))

		// then
		require.NoError(t, err)
		require.Len(t, received, 1)
		assert.True(t, received[0].Delta.Equal(decimal.NewFromInt(-42)))
		assert.True(t, received[0].NewAmount.Equal(decimal.NewFromInt(-42)))
	})
}

func configBalance(backend string) config.Balance {
	return config.Balance{Backend: backend}
}

func TestNewLedger(t *testing.T) {
	t.Run("should reject an unknown backend", func(t *testing.T) {
		cfg := configBalance("firestore")

		_, err := NewLedger(cfg, kvstore.NewMemoryStore(), nil, nil)

		assert.Error(t, err)
	})

	t.Run("should build the kv backend", func(t *testing.T) {
		ledger, err := NewLedger(configBalance("kv"), kvstore.NewMemoryStore(), nil, nil)

		require.NoError(t, err)
		assert.IsType(t, &KVLedger{}, ledger)
	})

	t.Run("should build the sql backend", func(t *testing.T) {
		ledger, err := NewLedger(configBalance("sql"), nil, nil, nil)

		require.NoError(t, err)
		assert.IsType(t, &SQLLedger{}, ledger)
	})
}
