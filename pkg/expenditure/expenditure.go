package expenditure

import (
	"time"

	"github.com/digitalive/digitalive/pkg/ledger"
	"github.com/shopspring/decimal"
)

// Month is a globally scoped expenditure bucket for one calendar month.
// Total is always recomputed from the full expenditure list.
type Month struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Year        int             `json:"year,omitempty"`
	MonthOfYear time.Month      `json:"month,omitempty"`
	Total       decimal.Decimal `json:"total"`
}

func (m Month) BucketName() string { return m.Name }

func (m Month) BucketKey() ledger.MonthKey {
	return ledger.MonthKey{Year: m.Year, Month: m.MonthOfYear}
}

// Expenditure is a single spending line. Every add debits the company
// balance by its amount; every delete credits it back.
type Expenditure struct {
	ID          string          `json:"id"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Date        time.Time       `json:"date"`
}

func (e Expenditure) LineAmount() decimal.Decimal { return e.Amount }

func newMonth(id string, key ledger.MonthKey) Month {
	return Month{
		ID:          id,
		Name:        key.Label(),
		Year:        key.Year,
		MonthOfYear: key.Month,
		Total:       decimal.Zero,
	}
}
