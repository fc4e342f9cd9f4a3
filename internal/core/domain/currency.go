package domain

import "strings"

// Currency represents a currency the portal can display amounts in.
type Currency struct {
	Code   string `json:"code"`   // e.g. "PKR"
	Symbol string `json:"symbol"` // e.g. "Rs"
	Name   string `json:"name"`
}

// SupportedCurrencies is the fixed set offered by the currency selector.
var SupportedCurrencies = []Currency{
	{Code: "PKR", Symbol: "Rs", Name: "Pakistani Rupee"},
	{Code: "USDT", Symbol: "₮", Name: "Tether"},
	{Code: "TRX", Symbol: "TRX", Name: "Tron"},
}

// LookupCurrency finds a supported currency by code, case-insensitively.
func LookupCurrency(code string) (Currency, bool) {
	code = strings.ToUpper(strings.TrimSpace(code))
	for _, c := range SupportedCurrencies {
		if c.Code == code {
			return c, true
		}
	}
	return Currency{}, false
}
