package services_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/SscSPs/invest_portal/internal/apperrors"
	"github.com/SscSPs/invest_portal/internal/core/domain"
	portssvc "github.com/SscSPs/invest_portal/internal/core/ports/services"
	"github.com/SscSPs/invest_portal/internal/core/services"
	"github.com/SscSPs/invest_portal/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

const testToken = "token-1"

type InvestmentServiceTestSuite struct {
	suite.Suite
	ctx     context.Context
	session *MockSession
	api     *MockInvestmentAPI
	wallet  *MockWalletAPI
	svc     portssvc.InvestmentSvc
}

func (suite *InvestmentServiceTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.session = new(MockSession)
	suite.api = new(MockInvestmentAPI)
	suite.wallet = new(MockWalletAPI)
	suite.svc = services.NewInvestmentService(suite.session, suite.api, nil)
}

func (suite *InvestmentServiceTestSuite) plans() []domain.Plan {
	return []domain.Plan{
		{ID: 1, Title: "Starter", Amount: decimal.NewFromInt(3000)},
		{ID: 2, Title: "Gold", Amount: decimal.NewFromInt(10000)},
	}
}

func (suite *InvestmentServiceTestSuite) TestPlansWithoutActivePlanSkipsVideos() {
	suite.session.On("Token", mock.Anything).Return(testToken, nil)
	suite.api.On("Plans", mock.Anything, testToken).Return(suite.plans(), nil)
	suite.api.On("UserPlans", mock.Anything, testToken).Return([]domain.UserPlan{{Plan: "Starter", IsActive: false}}, nil)

	overview, err := suite.svc.Plans(suite.ctx)

	suite.Require().NoError(err)
	suite.Len(overview.Plans, 2)
	suite.Nil(overview.Active)
	suite.Nil(overview.TodayVideo)
	suite.api.AssertNotCalled(suite.T(), "TodayVideo", mock.Anything, mock.Anything)
	suite.api.AssertNotCalled(suite.T(), "PreviousVideos", mock.Anything, mock.Anything)
}

func (suite *InvestmentServiceTestSuite) TestPlansWithActivePlanLoadsEmbeddedVideos() {
	suite.session.On("Token", mock.Anything).Return(testToken, nil)
	suite.api.On("Plans", mock.Anything, testToken).Return(suite.plans(), nil)
	suite.api.On("UserPlans", mock.Anything, testToken).Return([]domain.UserPlan{
		{Plan: "Starter", IsActive: false},
		{Plan: "Gold", IsActive: true, RemainingDays: 12},
	}, nil)
	suite.api.On("TodayVideo", mock.Anything, testToken).
		Return(&domain.TodayVideo{DayNumber: 3, VideoURL: "https://youtu.be/dQw4w9WgXcQ"}, nil)
	suite.api.On("PreviousVideos", mock.Anything, testToken).
		Return([]domain.PastVideo{{DayNumber: 2, VideoURL: "https://www.youtube.com/watch?v=9bZkp7q19f0"}}, nil)

	overview, err := suite.svc.Plans(suite.ctx)

	suite.Require().NoError(err)
	suite.Require().NotNil(overview.Active)
	suite.Equal("Gold", overview.Active.Plan)
	suite.Equal("https://www.youtube.com/embed/dQw4w9WgXcQ", overview.TodayVideo.VideoURL)
	suite.Require().Len(overview.PreviousVideos, 1)
	suite.Equal("https://www.youtube.com/embed/9bZkp7q19f0", overview.PreviousVideos[0].VideoURL)
}

func (suite *InvestmentServiceTestSuite) TestPlansUnauthorizedClearsSession() {
	suite.session.On("Token", mock.Anything).Return(testToken, nil)
	suite.session.On("Clear", mock.Anything).Return(nil)
	suite.api.On("Plans", mock.Anything, testToken).Return(nil, &apperrors.APIError{Status: http.StatusUnauthorized})
	suite.api.On("UserPlans", mock.Anything, testToken).Return([]domain.UserPlan{}, nil).Maybe()

	_, err := suite.svc.Plans(suite.ctx)

	suite.Require().Error(err)
	suite.True(apperrors.IsUnauthorized(err))
	suite.session.AssertCalled(suite.T(), "Clear", mock.Anything)
}

func (suite *InvestmentServiceTestSuite) TestPlansWithoutSession() {
	suite.session.On("Token", mock.Anything).Return("", apperrors.ErrUnauthorized)

	_, err := suite.svc.Plans(suite.ctx)

	suite.ErrorIs(err, apperrors.ErrUnauthorized)
	suite.api.AssertNotCalled(suite.T(), "Plans", mock.Anything, mock.Anything)
}

func (suite *InvestmentServiceTestSuite) TestActivateUsesBackendMessage() {
	suite.session.On("Token", mock.Anything).Return(testToken, nil)
	suite.api.On("Invest", mock.Anything, testToken, int64(2)).Return(&dto.MessageResponse{Message: "Gold activated"}, nil)

	notice, err := suite.svc.Activate(suite.ctx, 2)

	suite.Require().NoError(err)
	suite.Equal("Gold activated", notice)
}

func (suite *InvestmentServiceTestSuite) TestActivateDefaultNotice() {
	suite.session.On("Token", mock.Anything).Return(testToken, nil)
	suite.api.On("Invest", mock.Anything, testToken, int64(1)).Return(&dto.MessageResponse{}, nil)

	notice, err := suite.svc.Activate(suite.ctx, 1)

	suite.Require().NoError(err)
	suite.Equal("Plan Activated!", notice)
}

func (suite *InvestmentServiceTestSuite) TestActivateFailureWording() {
	suite.session.On("Token", mock.Anything).Return(testToken, nil)
	suite.api.On("Invest", mock.Anything, testToken, int64(1)).
		Return(nil, &apperrors.APIError{Status: http.StatusBadRequest, Payload: map[string]any{"error": "Insufficient balance."}})

	_, err := suite.svc.Activate(suite.ctx, 1)

	suite.Require().Error(err)
	suite.Equal("Insufficient balance.", services.InvestPolicy.Describe(err))

	suite.Equal("Error activating plan.", services.InvestPolicy.Describe(errors.New("boom")))
}

func (suite *InvestmentServiceTestSuite) TestDashboardLoadsWalletAndPlans() {
	svc := services.NewDashboardService(suite.session, suite.wallet, suite.api, nil)
	suite.session.On("Token", mock.Anything).Return(testToken, nil)
	suite.wallet.On("Wallet", mock.Anything, testToken).Return(&domain.Wallet{Balance: decimal.RequireFromString("1250.5")}, nil)
	suite.api.On("Plans", mock.Anything, testToken).Return(suite.plans(), nil)

	summary, err := svc.Dashboard(suite.ctx)

	suite.Require().NoError(err)
	suite.True(decimal.RequireFromString("1250.5").Equal(summary.Wallet.Balance))
	suite.Len(summary.Plans, 2)
}

func (suite *InvestmentServiceTestSuite) TestDashboardNetworkFailure() {
	svc := services.NewDashboardService(suite.session, suite.wallet, suite.api, nil)
	suite.session.On("Token", mock.Anything).Return(testToken, nil)
	suite.wallet.On("Wallet", mock.Anything, testToken).Return(nil, apperrors.ErrNetwork)
	suite.api.On("Plans", mock.Anything, testToken).Return(suite.plans(), nil).Maybe()

	_, err := svc.Dashboard(suite.ctx)

	suite.ErrorIs(err, apperrors.ErrNetwork)
	suite.Equal("Failed to fetch data.", services.PagePolicy.Describe(err))
}

func TestInvestmentServiceTestSuite(t *testing.T) {
	suite.Run(t, new(InvestmentServiceTestSuite))
}
