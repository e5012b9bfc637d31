package balance

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/digitalive/digitalive/internal/event_bus"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

// Querier is satisfied by *sql.DB and *sql.Tx, so a balance delta can be
// applied either standalone or inside a caller-owned transaction.
type Querier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// SQLLedger keeps the balance in a singleton database row and applies deltas
// with an atomic in-place increment.
type SQLLedger struct {
	db  *sql.DB
	bus *event_bus.EventBus
}

func NewSQLLedger(db *sql.DB, bus *event_bus.EventBus) *SQLLedger {
	return &SQLLedger{db: db, bus: bus}
}

func (l *SQLLedger) Read(ctx context.Context) (decimal.Decimal, error) {
	query := `SELECT amount FROM company_balance WHERE id = 1`

	var amount decimal.Decimal
	if err := l.db.QueryRowContext(ctx, query).Scan(&amount); err != nil {
		err := fmt.Errorf("failed to read balance: %w", err)
		log.Error(err)
		return decimal.Zero, err
	}
	return amount, nil
}

func (l *SQLLedger) ApplyDelta(ctx context.Context, delta decimal.Decimal) (decimal.Decimal, error) {
	newAmount, err := ApplyDeltaTx(ctx, l.db, delta)
	if err != nil {
		return decimal.Zero, err
	}
	l.publishChange(ctx, delta, newAmount)
	return newAmount, nil
}

// ApplyDeltaTx increments the balance row by delta on the given querier and
// returns the new amount. Passing a *sql.Tx bundles the increment atomically
// with other writes in that transaction; the asset repository uses this to
// pair the balance adjustment with the asset insert or delete.
func ApplyDeltaTx(ctx context.Context, q Querier, delta decimal.Decimal) (decimal.Decimal, error) {
	query := `UPDATE company_balance SET amount = amount + $1 WHERE id = 1 RETURNING amount`

	var newAmount decimal.Decimal
	if err := q.QueryRowContext(ctx, query, delta).Scan(&newAmount); err != nil {
		err := fmt.Errorf("failed to apply balance delta: %w", err)
		log.Error(err)
		return decimal.Zero, err
	}
	return newAmount, nil
}

func (l *SQLLedger) publishChange(ctx context.Context, delta, newAmount decimal.Decimal) {
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
