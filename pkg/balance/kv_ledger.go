package balance

import (
	"context"
	"fmt"

	"github.com/digitalive/digitalive/internal/event_bus"
	"github.com/digitalive/digitalive/internal/kvstore"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

const balanceKey = "@current_balance"

// KVLedger keeps the balance as a plain decimal string in the key-value
// store and applies deltas by read-modify-write. The sequence is not atomic
// across concurrent callers; under the single-active-screen usage model of a
// single-user app the last write wins.
type KVLedger struct {
	store kvstore.Store
	bus   *event_bus.EventBus
}

func NewKVLedger(store kvstore.Store, bus *event_bus.EventBus) *KVLedger {
	return &KVLedger{store: store, bus: bus}
}

func (l *KVLedger) Read(ctx context.Context) (decimal.Decimal, error) {
	raw, ok, err := l.store.Get(ctx, balanceKey)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to read balance: %w", err)
	}
	if !ok {
		return decimal.Zero, nil
	}
	amount, err := decimal.NewFromString(string(raw))
	if err != nil {
		return decimal.Zero, fmt.Errorf("stored balance is not a number: %w", err)
	}
	return amount, nil
}

func (l *KVLedger) ApplyDelta(ctx context.Context, delta decimal.Decimal) (decimal.Decimal, error) {
	current, err := l.Read(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	newAmount := current.Add(delta)
	if err := l.store.Set(ctx, balanceKey, []byte(newAmount.String())); err != nil {
		return decimal.Zero, fmt.Errorf("failed to write balance: %w", err)
	}
	l.publishChange(ctx, delta, newAmount)
	return newAmount, nil
}

func (l *KVLedger) publishChange(ctx context.Context, delta, newAmount decimal.Decimal) {
	if l.bus == nil {
		return
	}
	event := event_bus.NewEvent(ctx, "balance.changed", event_bus.BalanceChanged{
		Delta:     delta,
		NewAmount: newAmount,
	})
	if err := l.bus.Publish(event); err != nil {
		log.Warnf("failed to publish balance change: %v", err)
	}
}
