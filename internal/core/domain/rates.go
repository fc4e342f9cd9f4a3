package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// RateTable maps a currency code to the units of that currency per one unit of base currency.
type RateTable map[string]decimal.Decimal

// DefaultBaseCurrency is the currency DefaultRates are quoted against and the
// only base the portal runs with.
const DefaultBaseCurrency = "PKR"

// DefaultRates are used until the first successful fetch or cache hit.
func DefaultRates() RateTable {
	return RateTable{
		DefaultBaseCurrency: decimal.NewFromInt(1),
		"USDT":              decimal.RequireFromString("0.0036"),
		"TRX":               decimal.RequireFromString("0.018"),
	}
}

// Normalize returns a copy with upper-cased codes, non-positive rates removed
// and the base currency pinned to 1.
func (t RateTable) Normalize(base string) RateTable {
	out := make(RateTable, len(t)+1)
	for code, rate := range t {
		if !rate.IsPositive() {
			continue
		}
		out[strings.ToUpper(code)] = rate
	}
	out[strings.ToUpper(base)] = decimal.NewFromInt(1)
	return out
}

// Clone copies the table.
func (t RateTable) Clone() RateTable {
	out := make(RateTable, len(t))
	for k, v := range t {
		out[k] = v
	}
	return out
}

// Merge copies every entry of other over t and returns t.
func (t RateTable) Merge(other RateTable) RateTable {
	for k, v := range other {
		t[k] = v
	}
	return t
}
