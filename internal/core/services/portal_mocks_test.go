package services_test

import (
	"context"

	"github.com/SscSPs/invest_portal/internal/core/domain"
	"github.com/SscSPs/invest_portal/internal/core/ports/clients"
	portssvc "github.com/SscSPs/invest_portal/internal/core/ports/services"
	"github.com/SscSPs/invest_portal/internal/dto"
	"github.com/stretchr/testify/mock"
)

// --- Mock Session ---
type MockSession struct {
	mock.Mock
}

func (m *MockSession) Token(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}
func (m *MockSession) Authenticated(ctx context.Context) bool {
	return m.Called(ctx).Bool(0)
}
func (m *MockSession) Login(ctx context.Context, form dto.LoginForm) error {
	return m.Called(ctx, form).Error(0)
}
func (m *MockSession) Logout(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}
func (m *MockSession) Clear(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

var _ portssvc.SessionSvc = (*MockSession)(nil)

// --- Mock WalletAPI ---
type MockWalletAPI struct {
	mock.Mock
}

func (m *MockWalletAPI) Wallet(ctx context.Context, token string) (*domain.Wallet, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Wallet), args.Error(1)
}
func (m *MockWalletAPI) ReceivingAccounts(ctx context.Context, token string) ([]domain.ReceivingAccount, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ReceivingAccount), args.Error(1)
}
func (m *MockWalletAPI) SubmitDeposit(ctx context.Context, token string, req dto.DepositRequest) (*dto.MessageResponse, error) {
	args := m.Called(ctx, token, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.MessageResponse), args.Error(1)
}
func (m *MockWalletAPI) Deposits(ctx context.Context, token string) ([]domain.Deposit, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Deposit), args.Error(1)
}
func (m *MockWalletAPI) SubmitWithdrawal(ctx context.Context, token string, req dto.WithdrawalRequest) (*dto.MessageResponse, error) {
	args := m.Called(ctx, token, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.MessageResponse), args.Error(1)
}
func (m *MockWalletAPI) Withdrawals(ctx context.Context, token string) ([]domain.Withdrawal, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Withdrawal), args.Error(1)
}

var _ clients.WalletAPI = (*MockWalletAPI)(nil)

// --- Mock InvestmentAPI ---
type MockInvestmentAPI struct {
	mock.Mock
}

func (m *MockInvestmentAPI) Plans(ctx context.Context, token string) ([]domain.Plan, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Plan), args.Error(1)
}
func (m *MockInvestmentAPI) UserPlans(ctx context.Context, token string) ([]domain.UserPlan, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.UserPlan), args.Error(1)
}
func (m *MockInvestmentAPI) Invest(ctx context.Context, token string, planID int64) (*dto.MessageResponse, error) {
	args := m.Called(ctx, token, planID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.MessageResponse), args.Error(1)
}
func (m *MockInvestmentAPI) PlanHistory(ctx context.Context, token string) ([]domain.PlanHistoryEntry, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PlanHistoryEntry), args.Error(1)
}
func (m *MockInvestmentAPI) ProfitHistory(ctx context.Context, token string) ([]domain.ProfitEntry, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ProfitEntry), args.Error(1)
}
func (m *MockInvestmentAPI) TodayVideo(ctx context.Context, token string) (*domain.TodayVideo, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TodayVideo), args.Error(1)
}
func (m *MockInvestmentAPI) PreviousVideos(ctx context.Context, token string) ([]domain.PastVideo, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PastVideo), args.Error(1)
}

var _ clients.InvestmentAPI = (*MockInvestmentAPI)(nil)

// --- Mock ProfileAPI ---
type MockProfileAPI struct {
	mock.Mock
}

func (m *MockProfileAPI) Profile(ctx context.Context, token string) (*domain.Profile, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Profile), args.Error(1)
}
func (m *MockProfileAPI) UpdateProfile(ctx context.Context, token string, req dto.UpdateProfileRequest) (*domain.Profile, error) {
	args := m.Called(ctx, token, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Profile), args.Error(1)
}
func (m *MockProfileAPI) Referrals(ctx context.Context, token string) (*domain.ReferralSummary, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReferralSummary), args.Error(1)
}

var _ clients.ProfileAPI = (*MockProfileAPI)(nil)

// --- Mock AccountsAPI ---
type MockAccountsAPI struct {
	mock.Mock
}

func (m *MockAccountsAPI) Login(ctx context.Context, req dto.LoginRequest) (*domain.Tokens, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Tokens), args.Error(1)
}

func (m *MockAccountsAPI) Register(ctx context.Context, req dto.RegisterRequest) (*dto.MessageResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.MessageResponse), args.Error(1)
}

func (m *MockAccountsAPI) VerifyOTP(ctx context.Context, req dto.VerifyOTPRequest) (*dto.MessageResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.MessageResponse), args.Error(1)
}

func (m *MockAccountsAPI) ForgotPassword(ctx context.Context, req dto.ForgotPasswordRequest) (*dto.MessageResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.MessageResponse), args.Error(1)
}

func (m *MockAccountsAPI) ResetPassword(ctx context.Context, req dto.ResetPasswordRequest) (*dto.MessageResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.MessageResponse), args.Error(1)
}
