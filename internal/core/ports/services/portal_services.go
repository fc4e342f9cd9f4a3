package services

import (
	"context"

	"github.com/SscSPs/invest_portal/internal/core/domain"
	"github.com/SscSPs/invest_portal/internal/dto"
)

// DashboardSvc loads the landing page.
type DashboardSvc interface {
	Dashboard(ctx context.Context) (*domain.DashboardSummary, error)
}

// InvestmentReaderSvc reads plans and the daily task.
type InvestmentReaderSvc interface {
	Plans(ctx context.Context) (*domain.PlansOverview, error)
}

// InvestmentWriterSvc activates plans.
type InvestmentWriterSvc interface {
	// Activate returns the notice to show on success.
	Activate(ctx context.Context, planID int64) (string, error)
}

// InvestmentSvc combines reading and activating plans.
type InvestmentSvc interface {
	InvestmentReaderSvc
	InvestmentWriterSvc
}

// HistorySvc aggregates the user's transaction history.
type HistorySvc interface {
	Deposits(ctx context.Context) (*domain.DepositHistory, error)
	Withdrawals(ctx context.Context, filter domain.WithdrawalFilter) (*domain.WithdrawalHistory, error)
	Profits(ctx context.Context) (*domain.ProfitOverview, error)
}

// ProfileReaderSvc reads the signed-in user's account data.
type ProfileReaderSvc interface {
	Profile(ctx context.Context) (*domain.Profile, error)
	Referrals(ctx context.Context) (*domain.ReferralSummary, error)
}

// ProfileWriterSvc updates the signed-in user's account data.
type ProfileWriterSvc interface {
	UpdateProfile(ctx context.Context, req dto.UpdateProfileRequest) (*domain.Profile, error)
}

// ProfileSvc combines profile reads and updates.
type ProfileSvc interface {
	ProfileReaderSvc
	ProfileWriterSvc
}
