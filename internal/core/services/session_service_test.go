package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/SscSPs/invest_portal/internal/adapters/storage"
	"github.com/SscSPs/invest_portal/internal/apperrors"
	"github.com/SscSPs/invest_portal/internal/core/domain"
	portssvc "github.com/SscSPs/invest_portal/internal/core/ports/services"
	"github.com/SscSPs/invest_portal/internal/core/services"
	"github.com/SscSPs/invest_portal/internal/dto"
	"github.com/SscSPs/invest_portal/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type SessionServiceTestSuite struct {
	suite.Suite
	ctx      context.Context
	store    *storage.MemoryStore
	accounts *MockAccountsAPI
	svc      portssvc.SessionSvc
}

func (suite *SessionServiceTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.store = storage.NewMemoryStore()
	suite.accounts = new(MockAccountsAPI)
	suite.svc = services.NewSessionService(suite.store, suite.accounts, nil)
}

func TestSessionServiceTestSuite(t *testing.T) {
	suite.Run(t, new(SessionServiceTestSuite))
}

func (suite *SessionServiceTestSuite) jwt(expiry time.Duration) string {
	token, err := testutil.GenerateJWT("42", "backend-secret", expiry, "backend")
	suite.Require().NoError(err)
	return token
}

func (suite *SessionServiceTestSuite) TestLoginStoresTokens() {
	access := suite.jwt(time.Hour)
	suite.accounts.On("Login", mock.Anything, dto.LoginRequest{Email: "ali@example.com", Password: "pw"}).
		Return(&domain.Tokens{Access: access, Refresh: "refresh"}, nil).Once()

	err := suite.svc.Login(suite.ctx, dto.LoginForm{Identifier: " ali@example.com ", Password: "pw"})

	suite.Require().NoError(err)
	suite.True(suite.svc.Authenticated(suite.ctx))
	token, err := suite.svc.Token(suite.ctx)
	suite.Require().NoError(err)
	suite.Equal(access, token)
	refresh, err := suite.store.Get(suite.ctx, services.RefreshTokenKey)
	suite.Require().NoError(err)
	suite.Equal("refresh", refresh)
	suite.accounts.AssertExpectations(suite.T())
}

func (suite *SessionServiceTestSuite) TestLoginRequiresCredentials() {
	err := suite.svc.Login(suite.ctx, dto.LoginForm{Identifier: "  ", Password: "pw"})

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.accounts.AssertNotCalled(suite.T(), "Login", mock.Anything, mock.Anything)
}

func (suite *SessionServiceTestSuite) TestLoginFailureKeepsSignedOut() {
	suite.accounts.On("Login", mock.Anything, mock.Anything).
		Return(nil, &apperrors.APIError{Status: 401, Payload: map[string]any{"detail": "No active account"}}).Once()

	err := suite.svc.Login(suite.ctx, dto.LoginForm{Identifier: "03001234567", Password: "bad"})

	suite.ErrorIs(err, apperrors.ErrUnauthorized)
	suite.False(suite.svc.Authenticated(suite.ctx))
}

func (suite *SessionServiceTestSuite) TestExpiredTokenIsDropped() {
	suite.Require().NoError(suite.store.Set(suite.ctx, services.AccessTokenKey, suite.jwt(-time.Minute), 0))

	_, err := suite.svc.Token(suite.ctx)

	suite.ErrorIs(err, apperrors.ErrUnauthorized)
	_, err = suite.store.Get(suite.ctx, services.AccessTokenKey)
	suite.True(errors.Is(err, apperrors.ErrNotFound))
}

func (suite *SessionServiceTestSuite) TestMalformedTokenIsDropped() {
	suite.Require().NoError(suite.store.Set(suite.ctx, services.AccessTokenKey, "not-a-jwt", 0))

	suite.False(suite.svc.Authenticated(suite.ctx))
	suite.Equal(0, suite.store.Len())
}

func (suite *SessionServiceTestSuite) TestLogoutClearsTokens() {
	suite.Require().NoError(suite.store.Set(suite.ctx, services.AccessTokenKey, suite.jwt(time.Hour), 0))
	suite.Require().NoError(suite.store.Set(suite.ctx, services.RefreshTokenKey, "refresh", 0))

	suite.Require().NoError(suite.svc.Logout(suite.ctx))

	suite.False(suite.svc.Authenticated(suite.ctx))
	suite.Equal(0, suite.store.Len())
}

func TestLoginRequestFor(t *testing.T) {
	assert.Equal(t, dto.LoginRequest{Email: "a@b.co", Password: "pw"},
		services.LoginRequestFor(dto.LoginForm{Identifier: "a@b.co", Password: "pw"}))
	assert.Equal(t, dto.LoginRequest{PhoneNumber: "03001234567", Password: "pw"},
		services.LoginRequestFor(dto.LoginForm{Identifier: "03001234567", Password: "pw"}))
}
