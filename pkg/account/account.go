package account

import (
	"time"

	"github.com/digitalive/digitalive/pkg/ledger"
	"github.com/shopspring/decimal"
)

// Account is a business account tracked per calendar month. Its month list
// grows monotonically, newest-first, and is never pruned.
type Account struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Color       string         `json:"color"`
	Months      []MonthSummary `json:"months"`
}

// DefaultColor is used for accounts created without an explicit color.
const DefaultColor = "#6a11cb"

// MonthSummary is the aggregate row for one (account, calendar month) pair.
// Orders, Income, Cost and Profit are always recomputed from the full entry
// list, never stored independently of their inputs. Year and Month carry the
// structured bucket identity; they are zero on buckets stored before
// structured keys existed, which are then identified by Name alone.
type MonthSummary struct {
	ID     string          `json:"id"`
	Name   string          `json:"name"`
	Year   int             `json:"year,omitempty"`
	Month  time.Month      `json:"month,omitempty"`
	Orders int             `json:"orders"`
	Income decimal.Decimal `json:"income"`
	Cost   decimal.Decimal `json:"cost"`
	Profit decimal.Decimal `json:"profit"`
}

func (m MonthSummary) BucketName() string { return m.Name }

func (m MonthSummary) BucketKey() ledger.MonthKey {
	return ledger.MonthKey{Year: m.Year, Month: m.Month}
}

// Entry is a single order line belonging to exactly one (account, month)
// pair. Optional cost fields left blank are zero.
type Entry struct {
	ID             string          `json:"id"`
	ProductName    string          `json:"productName"`
	AmountReceived decimal.Decimal `json:"amountReceived"`
	ProductionCost decimal.Decimal `json:"productionCost"`
	DeliveryCost   decimal.Decimal `json:"deliveryCost"`
	Date           time.Time       `json:"date"`
}

func (e Entry) ReceivedAmount() decimal.Decimal { return e.AmountReceived }

func (e Entry) CostAmount() decimal.Decimal { return e.ProductionCost.Add(e.DeliveryCost) }

func newMonthSummary(id string, key ledger.MonthKey) MonthSummary {
	return MonthSummary{
		ID:     id,
		Name:   key.Label(),
		Year:   key.Year,
		Month:  key.Month,
		Orders: 0,
		Income: decimal.Zero,
		Cost:   decimal.Zero,
		Profit: decimal.Zero,
	}
}
