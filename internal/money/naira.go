// Package money formats naira amounts for receipts and API responses.
package money

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var printer = message.NewPrinter(language.English)

// FormatNaira renders an amount with the naira sign, grouped thousands
// and two decimal places only when the amount has a fractional part.
// Non-finite amounts render as zero.
func FormatNaira(amount float64) string {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return "₦0"
	}
	if amount == math.Trunc(amount) {
		return printer.Sprintf("₦%v", number.Decimal(amount, number.MaxFractionDigits(0)))
	}
	return printer.Sprintf("₦%v", number.Decimal(amount, number.MinFractionDigits(2), number.MaxFractionDigits(2)))
}

// ToKobo converts a naira amount to the integer minor unit payment
// providers expect.
func ToKobo(amount float64) int64 {
	return int64(math.Round(amount * 100))
}
