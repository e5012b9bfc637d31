// Package balance owns the single shared company balance. Every screen that
// moves money goes through the Ledger interface instead of touching store
// keys on its own, so the add/delete pairing rule lives in one place.
package balance

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/digitalive/digitalive/internal/config"
	"github.com/digitalive/digitalive/internal/event_bus"
	"github.com/digitalive/digitalive/internal/kvstore"
	"github.com/shopspring/decimal"
)

// Ledger reads the shared company balance and applies signed deltas to it.
// Adding a money-moving record of amount a applies a delta of -a; deleting
// that record applies +a. Deletion is always the exact inverse of the
// corresponding addition.
type Ledger interface {
	Read(ctx context.Context) (decimal.Decimal, error)
	// ApplyDelta adjusts the balance by delta and returns the new amount.
	ApplyDelta(ctx context.Context, delta decimal.Decimal) (decimal.Decimal, error)
}

// NewLedger selects the balance backend from configuration: "kv" for the
// read-modify-write key-value path, "sql" for the atomic increment path.
func NewLedger(cfg config.Balance, store kvstore.Store, db *sql.DB, bus *event_bus.EventBus) (Ledger, error) {
	switch cfg.Backend {
	case "kv":
		return NewKVLedger(store, bus), nil
	case "sql":
		return NewSQLLedger(db, bus), nil
	default:
		return nil, fmt.Errorf("unsupported balance backend: %q", cfg.Backend)
	}
}
