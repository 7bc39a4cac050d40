package valueobject

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ParsePercent parses a stored percentage string ("19.25", "19,25 %", " 18 ")
// into a decimal rate. Legacy company records store the VAT rate as free text,
// so unparseable or empty input yields zero rather than an error.
func ParsePercent(s string) decimal.Decimal {
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "%")
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, ",", ".")
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// RatioPercent returns part / whole * 100 rounded to two decimal places.
// Returns zero when whole is zero so report percentages never divide by zero.
func RatioPercent(part, whole decimal.Decimal) decimal.Decimal {
	if whole.IsZero() {
		return decimal.Zero
	}
	return part.Div(whole).Mul(decimal.NewFromInt(100)).Round(2)
}
