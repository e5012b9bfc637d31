package asset

import (
	"time"

	"github.com/shopspring/decimal"
)

// Asset is a company purchase funded from the shared balance. Unlike the
// other collections it lives in relational rows, because a purchase must be
// bundled atomically with its balance debit.
type Asset struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Amount    decimal.Decimal `json:"amount"`
	CreatedAt time.Time       `json:"createdAt"`
}
