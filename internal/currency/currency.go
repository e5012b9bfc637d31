package currency

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// All monetary values are rendered with a literal "Rs." prefix and a fixed
// thousand-separator grouping. Formatting is intentionally not
// locale-sensitive.
var printer = message.NewPrinter(language.English)

// Format renders an amount for display, e.g. "Rs. 1,234.5".
func Format(amount decimal.Decimal) string {
	f, _ := amount.Float64()
	return printer.Sprintf("Rs. %v", number.Decimal(f))
}
