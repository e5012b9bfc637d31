package ledger

import "github.com/shopspring/decimal"

// EntryLine is a single order line contributing to a month's totals.
type EntryLine interface {
	// ReceivedAmount is the amount received for the order.
	ReceivedAmount() decimal.Decimal
	// CostAmount is the full cost of the order (production plus delivery).
	CostAmount() decimal.Decimal
}

// AmountLine is a single line carrying one monetary amount.
type AmountLine interface {
	LineAmount() decimal.Decimal
}

// Totals are the aggregate fields of an order month bucket.
type Totals struct {
	Orders int
	Income decimal.Decimal
	Cost   decimal.Decimal
	Profit decimal.Decimal
}

// RecomputeTotals derives a bucket's aggregates from the full current line
// list. Recomputation is total: it never adjusts a running counter, so it
// cannot drift when an individual update is missed, at the price of being
// O(n) per mutation.
func RecomputeTotals[L EntryLine](lines []L) Totals {
	income := decimal.Zero
	cost := decimal.Zero
	for _, line := range lines {
		income = income.Add(line.ReceivedAmount())
		cost = cost.Add(line.CostAmount())
	}
	return Totals{
		Orders: len(lines),
		Income: income,
		Cost:   cost,
		Profit: income.Sub(cost),
	}
}

// SumAmounts derives a bucket's total from the full current line list.
func SumAmounts[L AmountLine](lines []L) decimal.Decimal {
	total := decimal.Zero
	for _, line := range lines {
		total = total.Add(line.LineAmount())
	}
	return total
}
