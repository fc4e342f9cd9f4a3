package mapping

import (
	"github.com/SscSPs/invest_portal/internal/core/domain"
	portssvc "github.com/SscSPs/invest_portal/internal/core/ports/services"
	"github.com/SscSPs/invest_portal/internal/dto"
	"github.com/shopspring/decimal"
)

// ToAmountView renders a base currency amount with the profile's converter.
func ToAmountView(conv portssvc.ConverterSvc, base decimal.Decimal) dto.AmountView {
	return dto.AmountView{
		Base:    domain.FormatAmount(base),
		Display: conv.FormatDisplay(base),
	}
}

// ToCurrencyResponse converts a domain Currency to a CurrencyResponse
func ToCurrencyResponse(c domain.Currency) dto.CurrencyResponse {
	return dto.CurrencyResponse{Code: c.Code, Symbol: c.Symbol, Name: c.Name}
}

// ToPlanResponse converts a domain Plan to a PlanResponse
func ToPlanResponse(conv portssvc.ConverterSvc, p domain.Plan) dto.PlanResponse {
	return dto.PlanResponse{
		ID:           p.ID,
		Title:        p.Title,
		Amount:       ToAmountView(conv, p.Amount),
		DailyProfit:  ToAmountView(conv, p.DailyProfit),
		TotalProfit:  ToAmountView(conv, p.TotalProfit),
		DurationDays: p.DurationDays,
		Image:        p.Image,
	}
}

// ToPlanResponseSlice converts a slice of domain Plans to a slice of PlanResponses
func ToPlanResponseSlice(conv portssvc.ConverterSvc, plans []domain.Plan) []dto.PlanResponse {
	out := make([]dto.PlanResponse, len(plans))
	for i, p := range plans {
		out[i] = ToPlanResponse(conv, p)
	}
	return out
}

// ToDashboardResponse converts a DashboardSummary to a DashboardResponse
func ToDashboardResponse(conv portssvc.ConverterSvc, s *domain.DashboardSummary) dto.DashboardResponse {
	return dto.DashboardResponse{
		Currency: ToCurrencyResponse(conv.Currency()),
		Balance:  ToAmountView(conv, s.Wallet.Balance),
		Plans:    ToPlanResponseSlice(conv, s.Plans),
	}
}

// ToPlansResponse converts a PlansOverview to a PlansResponse
func ToPlansResponse(conv portssvc.ConverterSvc, o *domain.PlansOverview) dto.PlansResponse {
	resp := dto.PlansResponse{
		Currency:       ToCurrencyResponse(conv.Currency()),
		Plans:          ToPlanResponseSlice(conv, o.Plans),
		TodayVideo:     o.TodayVideo,
		PreviousVideos: o.PreviousVideos,
	}
	if resp.PreviousVideos == nil {
		resp.PreviousVideos = []domain.PastVideo{}
	}
	if o.Active != nil {
		resp.Active = &dto.ActiveUserPlanResponse{
			Plan:          o.Active.Plan,
			DailyProfit:   ToAmountView(conv, o.Active.DailyProfit),
			TotalEarned:   ToAmountView(conv, o.Active.TotalEarned),
			RemainingDays: o.Active.RemainingDays,
		}
	}
	return resp
}

// ToDepositHistoryResponse converts a DepositHistory to a DepositHistoryResponse
func ToDepositHistoryResponse(conv portssvc.ConverterSvc, h *domain.DepositHistory) dto.DepositHistoryResponse {
	entries := make([]dto.DepositEntryResponse, len(h.Entries))
	for i, d := range h.Entries {
		entries[i] = dto.DepositEntryResponse{
			ID:            d.ID,
			Amount:        ToAmountView(conv, d.Amount),
			Method:        d.Method,
			TransactionID: d.TransactionID,
			Status:        d.Status,
			CreatedAt:     d.CreatedAt,
		}
	}
	return dto.DepositHistoryResponse{
		Currency:     ToCurrencyResponse(conv.Currency()),
		Entries:      entries,
		Approved:     ToAmountView(conv, h.Approved),
		Pending:      ToAmountView(conv, h.Pending),
		ApprovalRate: h.ApprovalRate,
	}
}

// ToWithdrawalHistoryResponse converts a WithdrawalHistory to a WithdrawalHistoryResponse
func ToWithdrawalHistoryResponse(conv portssvc.ConverterSvc, h *domain.WithdrawalHistory) dto.WithdrawalHistoryResponse {
	entries := make([]dto.WithdrawalEntryResponse, len(h.Entries))
	for i, w := range h.Entries {
		entries[i] = dto.WithdrawalEntryResponse{
			ID:           w.ID,
			Amount:       ToAmountView(conv, w.Amount),
			Method:       w.Method,
			BankName:     w.BankName,
			AccountOwner: w.AccountOwner,
			BankAccount:  w.BankAccount,
			Status:       w.Status,
			CreatedAt:    w.CreatedAt,
		}
	}
	return dto.WithdrawalHistoryResponse{
		Currency:      ToCurrencyResponse(conv.Currency()),
		Entries:       entries,
		NextPageToken: h.NextPageToken,
		Total:         h.Total,
		Successful:    h.Successful,
		Pending:       h.Pending,
		TotalAmount:   ToAmountView(conv, h.TotalAmount),
	}
}

// ToProfitHistoryResponse converts a ProfitOverview to a ProfitHistoryResponse
func ToProfitHistoryResponse(conv portssvc.ConverterSvc, o *domain.ProfitOverview) dto.ProfitHistoryResponse {
	plans := make([]dto.ActivePlanResponse, len(o.Plans))
	for i, p := range o.Plans {
		plans[i] = dto.ActivePlanResponse{
			Title:         p.Title,
			Amount:        ToAmountView(conv, p.Amount),
			DailyProfit:   ToAmountView(conv, p.DailyProfit),
			TotalEarned:   ToAmountView(conv, p.TotalEarned),
			StartDate:     p.StartDate,
			EndDate:       p.EndDate,
			RemainingDays: p.RemainingDays,
			Progress:      p.Progress.StringFixed(domain.DisplayPlaces),
		}
	}
	return dto.ProfitHistoryResponse{
		Currency:        ToCurrencyResponse(conv.Currency()),
		Plans:           plans,
		TotalProfit:     ToAmountView(conv, o.TotalProfit),
		TotalInvestment: ToAmountView(conv, o.TotalInvestment),
	}
}
