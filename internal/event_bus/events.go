package event_bus

import (
	"time"

	"github.com/shopspring/decimal"
)

// MonthRolloverCheck is published by the background rollover poller. Services
// owning month-bucketed collections subscribe and re-run their
// ensure-current-bucket pass. The check must be idempotent with the ensure
// performed on every collection load, so the ordering between the two does
// not matter.
type MonthRolloverCheck struct {
	Now time.Time
}

// BalanceChanged is published after a delta has been applied to the shared
// company balance.
type BalanceChanged struct {
	Delta     decimal.Decimal
	NewAmount decimal.Decimal
}
