package services_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/SscSPs/invest_portal/internal/apperrors"
	"github.com/SscSPs/invest_portal/internal/core/domain"
	portssvc "github.com/SscSPs/invest_portal/internal/core/ports/services"
	"github.com/SscSPs/invest_portal/internal/core/services"
	"github.com/SscSPs/invest_portal/internal/dto"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type ProfileServiceTestSuite struct {
	suite.Suite
	ctx     context.Context
	session *MockSession
	api     *MockProfileAPI
	svc     portssvc.ProfileSvc
}

func (suite *ProfileServiceTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.session = new(MockSession)
	suite.api = new(MockProfileAPI)
	suite.svc = services.NewProfileService(suite.session, suite.api, "https://backend.example.com/api", nil)
	suite.session.On("Token", mock.Anything).Return(testToken, nil)
}

func (suite *ProfileServiceTestSuite) TestProfileResolvesImage() {
	suite.api.On("Profile", mock.Anything, testToken).
		Return(&domain.Profile{Username: "ali", ProfileImage: "/media/profiles/ali.png"}, nil)

	p, err := suite.svc.Profile(suite.ctx)

	suite.Require().NoError(err)
	suite.Equal("https://backend.example.com/media/profiles/ali.png", p.ProfileImage)
}

func (suite *ProfileServiceTestSuite) TestUpdateRejectsNonImage() {
	_, err := suite.svc.UpdateProfile(suite.ctx, dto.UpdateProfileRequest{
		Username:     "ali",
		ProfileImage: &dto.Upload{Filename: "cv.pdf", ContentType: "application/pdf", Data: []byte("%PDF")},
	})

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.api.AssertNotCalled(suite.T(), "UpdateProfile", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ProfileServiceTestSuite) TestUpdateRequiresChange() {
	_, err := suite.svc.UpdateProfile(suite.ctx, dto.UpdateProfileRequest{Username: "  "})

	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *ProfileServiceTestSuite) TestUpdateTrimsUsername() {
	suite.api.On("UpdateProfile", mock.Anything, testToken, dto.UpdateProfileRequest{Username: "ali"}).
		Return(&domain.Profile{Username: "ali", ProfileImage: "https://cdn.example.com/a.png"}, nil)

	p, err := suite.svc.UpdateProfile(suite.ctx, dto.UpdateProfileRequest{Username: " ali "})

	suite.Require().NoError(err)
	suite.Equal("https://cdn.example.com/a.png", p.ProfileImage)
}

func (suite *ProfileServiceTestSuite) TestReferralsDefaultToEmptyList() {
	suite.api.On("Referrals", mock.Anything, testToken).Return(&domain.ReferralSummary{ReferralCode: "ABC123"}, nil)

	summary, err := suite.svc.Referrals(suite.ctx)

	suite.Require().NoError(err)
	suite.Equal("ABC123", summary.ReferralCode)
	suite.NotNil(summary.Referrals)
	suite.Empty(summary.Referrals)
}

func (suite *ProfileServiceTestSuite) TestReferralsUnauthorizedClearsSession() {
	suite.session.On("Clear", mock.Anything).Return(nil)
	suite.api.On("Referrals", mock.Anything, testToken).Return(nil, &apperrors.APIError{Status: http.StatusUnauthorized})

	_, err := suite.svc.Referrals(suite.ctx)

	suite.True(apperrors.IsUnauthorized(err))
	suite.session.AssertCalled(suite.T(), "Clear", mock.Anything)
}

func TestProfileServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ProfileServiceTestSuite))
}
