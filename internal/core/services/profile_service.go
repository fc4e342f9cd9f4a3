package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/invest_portal/internal/apperrors"
	"github.com/SscSPs/invest_portal/internal/core/domain"
	"github.com/SscSPs/invest_portal/internal/core/ports/clients"
	portssvc "github.com/SscSPs/invest_portal/internal/core/ports/services"
	"github.com/SscSPs/invest_portal/internal/dto"
	"github.com/SscSPs/invest_portal/internal/utils"
)

type profileService struct {
	BaseService
	session portssvc.SessionSvc
	api     clients.ProfileAPI
	// mediaBase is the backend API URL media paths are resolved against.
	mediaBase string
}

// NewProfileService creates the settings and team service of one profile.
func NewProfileService(session portssvc.SessionSvc, api clients.ProfileAPI, mediaBase string, logger *slog.Logger) portssvc.ProfileSvc {
	return &profileService{
		BaseService: BaseService{Logger: logger},
		session:     session,
		api:         api,
		mediaBase:   mediaBase,
	}
}

var _ portssvc.ProfileSvc = (*profileService)(nil)

func (s *profileService) Profile(ctx context.Context) (*domain.Profile, error) {
	profile, err := authorized(ctx, &s.BaseService, s.session, func(token string) (*domain.Profile, error) {
		return s.api.Profile(ctx, token)
	})
	if err != nil {
		return nil, fmt.Errorf("loading profile: %w", err)
	}
	return s.resolve(profile), nil
}

func (s *profileService) UpdateProfile(ctx context.Context, req dto.UpdateProfileRequest) (*domain.Profile, error) {
	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" && req.ProfileImage == nil {
		return nil, apperrors.Validationf("Nothing to update.")
	}
	if req.ProfileImage != nil && !strings.HasPrefix(req.ProfileImage.ContentType, "image/") {
		return nil, apperrors.Validationf("Please upload an image file")
	}

	profile, err := authorized(ctx, &s.BaseService, s.session, func(token string) (*domain.Profile, error) {
		return s.api.UpdateProfile(ctx, token, req)
	})
	if err != nil {
		return nil, fmt.Errorf("updating profile: %w", err)
	}
	s.LogInfo(ctx, "Profile updated", slog.Bool("image", req.ProfileImage != nil))
	return s.resolve(profile), nil
}

func (s *profileService) Referrals(ctx context.Context) (*domain.ReferralSummary, error) {
	summary, err := authorized(ctx, &s.BaseService, s.session, func(token string) (*domain.ReferralSummary, error) {
		return s.api.Referrals(ctx, token)
	})
	if err != nil {
		return nil, fmt.Errorf("loading referrals: %w", err)
	}
	if summary == nil {
		summary = &domain.ReferralSummary{}
	}
	if summary.Referrals == nil {
		summary.Referrals = []domain.Referral{}
	}
	for i := range summary.Referrals {
		summary.Referrals[i].Image = utils.MediaURL(s.mediaBase, summary.Referrals[i].Image)
	}
	return summary, nil
}

func (s *profileService) resolve(p *domain.Profile) *domain.Profile {
	if p == nil {
		return &domain.Profile{}
	}
	p.ProfileImage = utils.MediaURL(s.mediaBase, p.ProfileImage)
	return p
}
