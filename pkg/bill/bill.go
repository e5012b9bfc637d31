package bill

import (
	"time"

	"github.com/shopspring/decimal"
)

// Bill is a vendor invoice paid out of the company balance. Month is a free
// form label of the billing period the vendor invoiced for.
type Bill struct {
	ID          string          `json:"id"`
	Vendor      string          `json:"vendor"`
	Amount      decimal.Decimal `json:"amount"`
	Month       string          `json:"month"`
	Description string          `json:"description"`
	Date        time.Time       `json:"date"`
}

func (b Bill) LineAmount() decimal.Decimal { return b.Amount }
