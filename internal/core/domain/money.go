package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// DisplayPlaces is the fixed number of decimals every rendered amount carries.
const DisplayPlaces = 2

// Bounds on accepted amounts. Rendering a decimal expands its exponent, so
// unbounded input would cost time and memory proportional to it.
const (
	maxAmountLength   = 64
	maxAmountDigits   = 30
	maxAmountExponent = 18
)

// ParseAmount parses user or backend supplied amounts. Empty, non-numeric and
// oversized input reports ok == false.
func ParseAmount(raw string) (decimal.Decimal, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" || len(raw) > maxAmountLength {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, false
	}
	if exp := d.Exponent(); exp > maxAmountExponent || exp < -maxAmountExponent {
		return decimal.Zero, false
	}
	if d.NumDigits() > maxAmountDigits {
		return decimal.Zero, false
	}
	return d, true
}

// FormatAmount renders d with DisplayPlaces decimals and no grouping.
func FormatAmount(d decimal.Decimal) string {
	return d.StringFixed(DisplayPlaces)
}
