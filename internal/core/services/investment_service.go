package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SscSPs/invest_portal/internal/core/domain"
	"github.com/SscSPs/invest_portal/internal/core/ports/clients"
	portssvc "github.com/SscSPs/invest_portal/internal/core/ports/services"
	"github.com/SscSPs/invest_portal/internal/utils"
	"golang.org/x/sync/errgroup"
)

type investmentService struct {
	BaseService
	session portssvc.SessionSvc
	api     clients.InvestmentAPI
}

// NewInvestmentService creates the plans page service of one profile.
func NewInvestmentService(session portssvc.SessionSvc, api clients.InvestmentAPI, logger *slog.Logger) portssvc.InvestmentSvc {
	return &investmentService{
		BaseService: BaseService{Logger: logger},
		session:     session,
		api:         api,
	}
}

var _ portssvc.InvestmentSvc = (*investmentService)(nil)

func (s *investmentService) Plans(ctx context.Context) (*domain.PlansOverview, error) {
	return authorized(ctx, &s.BaseService, s.session, func(token string) (*domain.PlansOverview, error) {
		overview := &domain.PlansOverview{}
		var userPlans []domain.UserPlan

		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			plans, err := s.api.Plans(gctx, token)
			if err != nil {
				return fmt.Errorf("loading plans: %w", err)
			}
			overview.Plans = plans
			return nil
		})
		g.Go(func() error {
			up, err := s.api.UserPlans(gctx, token)
			if err != nil {
				return fmt.Errorf("loading user plans: %w", err)
			}
			userPlans = up
			return nil
		})
		if err := g.Wait(); err != nil {
			return nil, err
		}

		overview.Active = ActiveUserPlan(userPlans)
		if overview.Active == nil {
			return overview, nil
		}

		g, gctx = errgroup.WithContext(ctx)
		g.Go(func() error {
			video, err := s.api.TodayVideo(gctx, token)
			if err != nil {
				return fmt.Errorf("loading today's video: %w", err)
			}
			if video != nil && video.VideoURL != "" {
				video.VideoURL = utils.EmbedVideoURL(video.VideoURL)
			}
			overview.TodayVideo = video
			return nil
		})
		g.Go(func() error {
			videos, err := s.api.PreviousVideos(gctx, token)
			if err != nil {
				return fmt.Errorf("loading previous videos: %w", err)
			}
			for i := range videos {
				videos[i].VideoURL = utils.EmbedVideoURL(videos[i].VideoURL)
			}
			overview.PreviousVideos = videos
			return nil
		})
		if err := g.Wait(); err != nil {
			return nil, err
		}
		return overview, nil
	})
}

func (s *investmentService) Activate(ctx context.Context, planID int64) (string, error) {
	return authorized(ctx, &s.BaseService, s.session, func(token string) (string, error) {
		resp, err := s.api.Invest(ctx, token, planID)
		if err != nil {
			s.LogWarn(ctx, err, "Plan activation failed", slog.Int64("plan_id", planID))
			return "", fmt.Errorf("activating plan %d: %w", planID, err)
		}
		s.LogInfo(ctx, "Plan activated", slog.Int64("plan_id", planID))
		if resp != nil && resp.Message != "" {
			return resp.Message, nil
		}
		return planActivatedNotice, nil
	})
}

// ActiveUserPlan returns the first running plan, or nil.
func ActiveUserPlan(plans []domain.UserPlan) *domain.UserPlan {
	for i := range plans {
		if plans[i].IsActive {
			p := plans[i]
			return &p
		}
	}
	return nil
}
