package flows_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/invest_portal/internal/adapters/pricing"
	"github.com/SscSPs/invest_portal/internal/adapters/storage"
	"github.com/SscSPs/invest_portal/internal/core/domain"
	portssvc "github.com/SscSPs/invest_portal/internal/core/ports/services"
	"github.com/SscSPs/invest_portal/internal/core/services"
	"github.com/SscSPs/invest_portal/internal/dto"
	"github.com/SscSPs/invest_portal/internal/testutil"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

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

// fixture wires a logged-in profile with rates loaded and USDT selected.
type fixture struct {
	ctx       context.Context
	store     *storage.MemoryStore
	session   portssvc.SessionSvc
	selector  portssvc.CurrencySelectorSvc
	converter portssvc.ConverterSvc
	token     string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()

	rates := services.NewRateStore("PKR", pricing.NewStaticSource(domain.DefaultRates()))
	require.NoError(t, rates.Refresh(ctx))

	store := storage.NewMemoryStore()
	selector := services.NewCurrencySelector(ctx, storage.Scope(store, "local", 0), "USDT", nil)
	session := services.NewSessionService(storage.Scope(store, "session", 0), new(MockAccountsAPI), nil)

	token, err := testutil.GenerateJWT("user-1", "secret", time.Hour, "backend")
	require.NoError(t, err)
	require.NoError(t, store.Set(ctx, "session/"+services.AccessTokenKey, token, 0))

	return &fixture{
		ctx:       ctx,
		store:     store,
		session:   session,
		selector:  selector,
		converter: services.NewConverter(rates, selector),
		token:     token,
	}
}

func strPtr(s string) *string { return &s }
