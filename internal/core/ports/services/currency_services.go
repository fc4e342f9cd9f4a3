package services

import (
	"context"
	"time"

	"github.com/SscSPs/invest_portal/internal/core/domain"
	"github.com/shopspring/decimal"
)

// RateReaderSvc defines read access to the shared rate table.
type RateReaderSvc interface {
	// Rate returns the rate for code relative to the base currency.
	Rate(code string) (decimal.Decimal, bool)
	// Table returns a copy of the current table.
	Table() domain.RateTable
	// Loading reports whether neither a cache hit nor a first fetch has completed.
	Loading() bool
	// Base returns the base currency code.
	Base() string
	// UpdatedAt returns when the table was last replaced; zero while on defaults.
	UpdatedAt() time.Time
	// Source names the configured rate source.
	Source() string
}

// RateWriterSvc defines operations that populate the rate table.
type RateWriterSvc interface {
	// Hydrate loads the cached table, discarding corrupt entries.
	Hydrate(ctx context.Context)
	// Refresh fetches a fresh table from the rate source.
	Refresh(ctx context.Context) error
	// Start hydrates and then refreshes in the background until ctx ends.
	Start(ctx context.Context)
}

// RateStoreSvc combines read and write access to the rate table.
type RateStoreSvc interface {
	RateReaderSvc
	RateWriterSvc
}

// CurrencyReaderSvc exposes the selected display currency.
type CurrencyReaderSvc interface {
	// Current returns the selected currency.
	Current() domain.Currency
	// Supported lists the currencies a user can pick.
	Supported() []domain.Currency
}

// CurrencyWriterSvc changes the selected display currency.
type CurrencyWriterSvc interface {
	// SetCurrency selects and persists code.
	SetCurrency(ctx context.Context, code string) (domain.Currency, error)
}

// CurrencySelectorSvc combines read and write access to the selected currency.
type CurrencySelectorSvc interface {
	CurrencyReaderSvc
	CurrencyWriterSvc
}

// ConverterSvc converts between base and selected currency amounts.
type ConverterSvc interface {
	// ToDisplay converts a base amount to the selected currency, or "..." while rates load.
	ToDisplay(baseAmount string) string
	// ToBase converts a selected-currency amount back to base.
	ToBase(displayAmount string) string
	// FormatDisplay is ToDisplay for decimals.
	FormatDisplay(baseAmount decimal.Decimal) string
	// DisplayDecimal converts a base amount to the selected currency, rounded for display.
	DisplayDecimal(baseAmount decimal.Decimal) decimal.Decimal
	// BaseDecimal converts a selected-currency amount to base, rounded for display.
	BaseDecimal(displayAmount decimal.Decimal) decimal.Decimal
	// RateToBase returns the multiplier from the selected currency back to base.
	RateToBase() decimal.Decimal
	// Grouped is ToDisplay with thousands separators.
	Grouped(baseAmount string) string
	// Currency returns the selected currency.
	Currency() domain.Currency
}
