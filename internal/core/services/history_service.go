package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/invest_portal/internal/apperrors"
	"github.com/SscSPs/invest_portal/internal/core/domain"
	"github.com/SscSPs/invest_portal/internal/core/ports/clients"
	portssvc "github.com/SscSPs/invest_portal/internal/core/ports/services"
	"github.com/SscSPs/invest_portal/internal/utils/pagination"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

var (
	hundred     = decimal.NewFromInt(100)
	progressCap = decimal.RequireFromString("99.99")
)

// planDateLayouts are the date formats the backend uses for plan periods.
var planDateLayouts = []string{time.DateOnly, time.RFC3339, "2006-01-02T15:04:05.999999", time.DateTime}

type historyService struct {
	BaseService
	session     portssvc.SessionSvc
	wallet      clients.WalletAPI
	investments clients.InvestmentAPI
	now         func() time.Time
}

// HistoryOption configures the history service.
type HistoryOption func(*historyService)

// WithHistoryClock replaces the clock used for plan progress.
func WithHistoryClock(now func() time.Time) HistoryOption {
	return func(s *historyService) {
		s.now = now
	}
}

// NewHistoryService creates the history pages service of one profile.
func NewHistoryService(session portssvc.SessionSvc, wallet clients.WalletAPI, investments clients.InvestmentAPI, logger *slog.Logger, opts ...HistoryOption) portssvc.HistorySvc {
	s := &historyService{
		BaseService: BaseService{Logger: logger},
		session:     session,
		wallet:      wallet,
		investments: investments,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ portssvc.HistorySvc = (*historyService)(nil)

func (s *historyService) Deposits(ctx context.Context) (*domain.DepositHistory, error) {
	entries, err := authorized(ctx, &s.BaseService, s.session, func(token string) ([]domain.Deposit, error) {
		return s.wallet.Deposits(ctx, token)
	})
	if err != nil {
		return nil, fmt.Errorf("loading deposit history: %w", err)
	}
	return SummarizeDeposits(entries), nil
}

func (s *historyService) Withdrawals(ctx context.Context, filter domain.WithdrawalFilter) (*domain.WithdrawalHistory, error) {
	entries, err := authorized(ctx, &s.BaseService, s.session, func(token string) ([]domain.Withdrawal, error) {
		return s.wallet.Withdrawals(ctx, token)
	})
	if err != nil {
		return nil, fmt.Errorf("loading withdrawal history: %w", err)
	}

	history := SummarizeWithdrawals(entries, filter)
	page, next, err := pagination.Page(history.Entries, filter.Limit, filter.PageToken)
	if err != nil {
		s.LogWarn(ctx, err, "Invalid withdrawal page token")
		return nil, apperrors.Validationf("Invalid page token.")
	}
	history.Entries, history.NextPageToken = page, next
	return history, nil
}

func (s *historyService) Profits(ctx context.Context) (*domain.ProfitOverview, error) {
	type results struct {
		profits []domain.ProfitEntry
		plans   []domain.PlanHistoryEntry
	}

	res, err := authorized(ctx, &s.BaseService, s.session, func(token string) (results, error) {
		var r results
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			profits, err := s.investments.ProfitHistory(gctx, token)
			r.profits = profits
			return err
		})
		g.Go(func() error {
			plans, err := s.investments.PlanHistory(gctx, token)
			r.plans = plans
			return err
		})
		err := g.Wait()
		return r, err
	})
	if err != nil {
		return nil, fmt.Errorf("loading profit history: %w", err)
	}
	return MergeActivePlans(res.plans, res.profits, s.now()), nil
}

// SummarizeDeposits totals approved and pending amounts. The approval rate is
// the share of approved entries by count.
func SummarizeDeposits(entries []domain.Deposit) *domain.DepositHistory {
	h := &domain.DepositHistory{
		Entries:  entries,
		Approved: decimal.Zero,
		Pending:  decimal.Zero,
	}
	approved := 0
	for _, d := range entries {
		switch d.Status {
		case domain.DepositApproved:
			approved++
			h.Approved = h.Approved.Add(d.Amount)
		case domain.DepositPending:
			h.Pending = h.Pending.Add(d.Amount)
		}
	}
	if len(entries) > 0 {
		h.ApprovalRate = decimal.NewFromInt(int64(approved)).
			Mul(hundred).
			Div(decimal.NewFromInt(int64(len(entries)))).
			Round(0).
			IntPart()
	}
	return h
}

// SummarizeWithdrawals filters entries and counts the whole history.
func SummarizeWithdrawals(entries []domain.Withdrawal, filter domain.WithdrawalFilter) *domain.WithdrawalHistory {
	h := &domain.WithdrawalHistory{
		Entries:     make([]domain.Withdrawal, 0, len(entries)),
		Total:       len(entries),
		TotalAmount: decimal.Zero,
	}
	for _, w := range entries {
		switch w.Status {
		case domain.WithdrawalSuccessful:
			h.Successful++
		case domain.WithdrawalPending:
			h.Pending++
		}
		h.TotalAmount = h.TotalAmount.Add(w.Amount)
		if matchesWithdrawal(w, filter) {
			h.Entries = append(h.Entries, w)
		}
	}
	return h
}

func matchesWithdrawal(w domain.Withdrawal, filter domain.WithdrawalFilter) bool {
	if filter.Status != "" && filter.Status != domain.StatusAll && w.Status != filter.Status {
		return false
	}
	term := strings.TrimSpace(filter.Search)
	if term == "" {
		return true
	}
	lower := strings.ToLower(term)
	return strings.Contains(strings.ToLower(w.Method), lower) ||
		strings.Contains(strings.ToLower(w.BankAccount), lower) ||
		strings.Contains(w.Amount.String(), term) ||
		strings.Contains(w.Amount.StringFixed(domain.DisplayPlaces), term)
}

// MergeActivePlans joins running plans with their profit records by title.
// Total profit counts active profit records only.
func MergeActivePlans(plans []domain.PlanHistoryEntry, profits []domain.ProfitEntry, now time.Time) *domain.ProfitOverview {
	overview := &domain.ProfitOverview{
		Plans:           []domain.ActivePlan{},
		TotalProfit:     decimal.Zero,
		TotalInvestment: decimal.Zero,
	}

	byTitle := make(map[string]domain.ProfitEntry, len(profits))
	for _, p := range profits {
		byTitle[p.Plan] = p
		if p.IsActive {
			overview.TotalProfit = overview.TotalProfit.Add(p.TotalEarned)
		}
	}

	for _, plan := range plans {
		if plan.Status != domain.PlanStatusActive {
			continue
		}
		profit := byTitle[plan.Title]
		remaining := profit.RemainingDays
		if remaining < 0 {
			remaining = 0
		}
		overview.TotalInvestment = overview.TotalInvestment.Add(plan.Amount)
		overview.Plans = append(overview.Plans, domain.ActivePlan{
			Title:         plan.Title,
			Amount:        plan.Amount,
			StartDate:     plan.StartDate,
			EndDate:       plan.EndDate,
			DailyProfit:   profit.DailyProfit,
			TotalEarned:   profit.TotalEarned,
			RemainingDays: remaining,
			Progress:      PlanProgress(plan.StartDate, plan.EndDate, now),
		})
	}
	return overview
}

// PlanProgress is the elapsed share of a plan in whole days: 0 before the start,
// 100 after the end and at most 99.99 while running. Unparseable periods report 0.
func PlanProgress(start, end string, now time.Time) decimal.Decimal {
	startDay, okStart := parsePlanDate(start, now.Location())
	endDay, okEnd := parsePlanDate(end, now.Location())
	if !okStart || !okEnd {
		return decimal.Zero
	}
	today := truncateDay(now)

	if today.Before(startDay) {
		return decimal.Zero
	}
	if today.After(endDay) {
		return hundred
	}

	total := endDay.Sub(startDay)
	if total <= 0 {
		return decimal.Zero
	}
	elapsed := today.Sub(startDay)
	progress := decimal.NewFromInt(int64(elapsed)).
		Div(decimal.NewFromInt(int64(total))).
		Mul(hundred).
		Round(2)
	return decimal.Min(progress, progressCap)
}

func parsePlanDate(raw string, loc *time.Location) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	for _, layout := range planDateLayouts {
		if t, err := time.ParseInLocation(layout, raw, loc); err == nil {
			return truncateDay(t.In(loc)), true
		}
	}
	return time.Time{}, false
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
