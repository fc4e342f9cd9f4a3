package services

import (
	"github.com/SscSPs/invest_portal/internal/core/domain"
	portssvc "github.com/SscSPs/invest_portal/internal/core/ports/services"
	"github.com/SscSPs/invest_portal/internal/utils"
	"github.com/shopspring/decimal"
)

// LoadingPlaceholder is rendered instead of an amount while rates load.
const LoadingPlaceholder = "..."

type converter struct {
	rates    portssvc.RateReaderSvc
	selector portssvc.CurrencyReaderSvc
}

// NewConverter combines the shared rate table with one profile's selection.
func NewConverter(rates portssvc.RateReaderSvc, selector portssvc.CurrencyReaderSvc) portssvc.ConverterSvc {
	return &converter{rates: rates, selector: selector}
}

var _ portssvc.ConverterSvc = (*converter)(nil)

// rate returns the selected currency's rate, or ok == false when amounts
// should pass through unconverted.
func (c *converter) rate() (decimal.Decimal, bool) {
	code := c.selector.Current().Code
	if code == c.rates.Base() {
		return decimal.Zero, false
	}
	rate, ok := c.rates.Rate(code)
	if !ok || !rate.IsPositive() {
		return decimal.Zero, false
	}
	return rate, true
}

func (c *converter) ToDisplay(baseAmount string) string {
	if c.rates.Loading() {
		return LoadingPlaceholder
	}
	amount, _ := domain.ParseAmount(baseAmount)
	return domain.FormatAmount(c.DisplayDecimal(amount))
}

func (c *converter) ToBase(displayAmount string) string {
	amount, _ := domain.ParseAmount(displayAmount)
	return domain.FormatAmount(c.BaseDecimal(amount))
}

func (c *converter) FormatDisplay(baseAmount decimal.Decimal) string {
	if c.rates.Loading() {
		return LoadingPlaceholder
	}
	return domain.FormatAmount(c.DisplayDecimal(baseAmount))
}

func (c *converter) DisplayDecimal(baseAmount decimal.Decimal) decimal.Decimal {
	rate, ok := c.rate()
	if !ok {
		return baseAmount.Round(domain.DisplayPlaces)
	}
	return baseAmount.Mul(rate).Round(domain.DisplayPlaces)
}

func (c *converter) BaseDecimal(displayAmount decimal.Decimal) decimal.Decimal {
	rate, ok := c.rate()
	if !ok {
		return displayAmount.Round(domain.DisplayPlaces)
	}
	return displayAmount.Div(rate).Round(domain.DisplayPlaces)
}

func (c *converter) RateToBase() decimal.Decimal {
	rate, ok := c.rate()
	if !ok {
		return decimal.NewFromInt(1)
	}
	return decimal.NewFromInt(1).Div(rate)
}

func (c *converter) Grouped(baseAmount string) string {
	return utils.GroupThousands(c.ToDisplay(baseAmount))
}

func (c *converter) Currency() domain.Currency {
	return c.selector.Current()
}
