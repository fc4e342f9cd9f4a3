package clients

import (
	"context"

	"github.com/SscSPs/invest_portal/internal/core/domain"
	"github.com/SscSPs/invest_portal/internal/dto"
)

// AccountsAPI covers the unauthenticated account endpoints.
type AccountsAPI interface {
	Login(ctx context.Context, req dto.LoginRequest) (*domain.Tokens, error)
	Register(ctx context.Context, req dto.RegisterRequest) (*dto.MessageResponse, error)
	VerifyOTP(ctx context.Context, req dto.VerifyOTPRequest) (*dto.MessageResponse, error)
	ForgotPassword(ctx context.Context, req dto.ForgotPasswordRequest) (*dto.MessageResponse, error)
	ResetPassword(ctx context.Context, req dto.ResetPasswordRequest) (*dto.MessageResponse, error)
}

// ProfileAPI covers the signed-in user's own account data.
type ProfileAPI interface {
	Profile(ctx context.Context, token string) (*domain.Profile, error)
	UpdateProfile(ctx context.Context, token string, req dto.UpdateProfileRequest) (*domain.Profile, error)
	Referrals(ctx context.Context, token string) (*domain.ReferralSummary, error)
}

// WalletAPI covers balances and money movement.
type WalletAPI interface {
	Wallet(ctx context.Context, token string) (*domain.Wallet, error)
	ReceivingAccounts(ctx context.Context, token string) ([]domain.ReceivingAccount, error)
	SubmitDeposit(ctx context.Context, token string, req dto.DepositRequest) (*dto.MessageResponse, error)
	Deposits(ctx context.Context, token string) ([]domain.Deposit, error)
	SubmitWithdrawal(ctx context.Context, token string, req dto.WithdrawalRequest) (*dto.MessageResponse, error)
	Withdrawals(ctx context.Context, token string) ([]domain.Withdrawal, error)
}

// InvestmentAPI covers plans, accrual history and the daily task.
type InvestmentAPI interface {
	Plans(ctx context.Context, token string) ([]domain.Plan, error)
	UserPlans(ctx context.Context, token string) ([]domain.UserPlan, error)
	Invest(ctx context.Context, token string, planID int64) (*dto.MessageResponse, error)
	PlanHistory(ctx context.Context, token string) ([]domain.PlanHistoryEntry, error)
	ProfitHistory(ctx context.Context, token string) ([]domain.ProfitEntry, error)
	TodayVideo(ctx context.Context, token string) (*domain.TodayVideo, error)
	PreviousVideos(ctx context.Context, token string) ([]domain.PastVideo, error)
}

// BackendFacade combines every backend API group.
type BackendFacade interface {
	AccountsAPI
	ProfileAPI
	WalletAPI
	InvestmentAPI
}
