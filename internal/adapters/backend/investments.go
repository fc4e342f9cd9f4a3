package backend

import (
	"context"

	"github.com/SscSPs/invest_portal/internal/core/domain"
	"github.com/SscSPs/invest_portal/internal/dto"
)

func (c *Client) Plans(ctx context.Context, token string) ([]domain.Plan, error) {
	var plans []domain.Plan
	if err := c.get(ctx, token, pathPlans, &plans); err != nil {
		return nil, err
	}
	return plans, nil
}

// UserPlans reads the dashboard list, one entry per plan the user bought.
func (c *Client) UserPlans(ctx context.Context, token string) ([]domain.UserPlan, error) {
	var plans []domain.UserPlan
	if err := c.get(ctx, token, pathDashboard, &plans); err != nil {
		return nil, err
	}
	return plans, nil
}

func (c *Client) Invest(ctx context.Context, token string, planID int64) (*dto.MessageResponse, error) {
	return c.message(ctx, token, pathInvest, dto.InvestRequest{PlanID: planID})
}

func (c *Client) PlanHistory(ctx context.Context, token string) ([]domain.PlanHistoryEntry, error) {
	var entries []domain.PlanHistoryEntry
	if err := c.get(ctx, token, pathPlanHistory, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (c *Client) ProfitHistory(ctx context.Context, token string) ([]domain.ProfitEntry, error) {
	var entries []domain.ProfitEntry
	if err := c.get(ctx, token, pathProfitHistory, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (c *Client) TodayVideo(ctx context.Context, token string) (*domain.TodayVideo, error) {
	var video domain.TodayVideo
	if err := c.get(ctx, token, pathTodayVideo, &video); err != nil {
		return nil, err
	}
	return &video, nil
}

func (c *Client) PreviousVideos(ctx context.Context, token string) ([]domain.PastVideo, error) {
	var body struct {
		PreviousVideos []domain.PastVideo `json:"previous_videos"`
	}
	if err := c.get(ctx, token, pathPreviousVideos, &body); err != nil {
		return nil, err
	}
	return body.PreviousVideos, nil
}
