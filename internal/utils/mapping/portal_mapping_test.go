package mapping

import (
	"context"
	"testing"

	"github.com/SscSPs/invest_portal/internal/adapters/pricing"
	"github.com/SscSPs/invest_portal/internal/adapters/storage"
	"github.com/SscSPs/invest_portal/internal/core/domain"
	portssvc "github.com/SscSPs/invest_portal/internal/core/ports/services"
	"github.com/SscSPs/invest_portal/internal/core/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func usdtConverter(t *testing.T, refreshed bool) portssvc.ConverterSvc {
	t.Helper()
	ctx := context.Background()
	rates := services.NewRateStore("PKR", pricing.NewStaticSource(domain.DefaultRates()))
	if refreshed {
		require.NoError(t, rates.Refresh(ctx))
	}
	selector := services.NewCurrencySelector(ctx, storage.NewMemoryStore(), "USDT", nil)
	return services.NewConverter(rates, selector)
}

func TestToDashboardResponse(t *testing.T) {
	conv := usdtConverter(t, true)
	summary := &domain.DashboardSummary{
		Wallet: domain.Wallet{Balance: decimal.NewFromInt(10000)},
		Plans:  []domain.Plan{{ID: 7, Title: "Gold", Amount: decimal.NewFromInt(5000), DailyProfit: decimal.NewFromInt(250)}},
	}

	resp := ToDashboardResponse(conv, summary)

	assert.Equal(t, "USDT", resp.Currency.Code)
	assert.Equal(t, "10000.00", resp.Balance.Base)
	assert.Equal(t, "36.00", resp.Balance.Display)
	assert.Len(t, resp.Plans, 1)
	assert.Equal(t, "18.00", resp.Plans[0].Amount.Display)
	assert.Equal(t, "0.90", resp.Plans[0].DailyProfit.Display)
}

func TestAmountsShowPlaceholderWhileLoading(t *testing.T) {
	conv := usdtConverter(t, false)

	view := ToAmountView(conv, decimal.NewFromInt(3000))

	assert.Equal(t, "3000.00", view.Base)
	assert.Equal(t, "...", view.Display)
}

func TestToPlansResponseWithoutActivePlan(t *testing.T) {
	resp := ToPlansResponse(usdtConverter(t, true), &domain.PlansOverview{})

	assert.Nil(t, resp.Active)
	assert.NotNil(t, resp.PreviousVideos)
	assert.Empty(t, resp.Plans)
}

func TestToProfitHistoryResponse(t *testing.T) {
	overview := &domain.ProfitOverview{
		Plans:           []domain.ActivePlan{{Title: "Gold", Amount: decimal.NewFromInt(10000), Progress: decimal.RequireFromString("33.33")}},
		TotalProfit:     decimal.NewFromInt(1500),
		TotalInvestment: decimal.NewFromInt(10000),
	}

	resp := ToProfitHistoryResponse(usdtConverter(t, true), overview)

	assert.Equal(t, "33.33", resp.Plans[0].Progress)
	assert.Equal(t, "5.40", resp.TotalProfit.Display)
	assert.Equal(t, "36.00", resp.TotalInvestment.Display)
}
