package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SscSPs/invest_portal/internal/core/domain"
	"github.com/SscSPs/invest_portal/internal/core/ports/clients"
	portssvc "github.com/SscSPs/invest_portal/internal/core/ports/services"
	"golang.org/x/sync/errgroup"
)

type dashboardService struct {
	BaseService
	session     portssvc.SessionSvc
	wallet      clients.WalletAPI
	investments clients.InvestmentAPI
}

// NewDashboardService creates the landing page service of one profile.
func NewDashboardService(session portssvc.SessionSvc, wallet clients.WalletAPI, investments clients.InvestmentAPI, logger *slog.Logger) portssvc.DashboardSvc {
	return &dashboardService{
		BaseService: BaseService{Logger: logger},
		session:     session,
		wallet:      wallet,
		investments: investments,
	}
}

var _ portssvc.DashboardSvc = (*dashboardService)(nil)

func (s *dashboardService) Dashboard(ctx context.Context) (*domain.DashboardSummary, error) {
	summary, err := authorized(ctx, &s.BaseService, s.session, func(token string) (*domain.DashboardSummary, error) {
		summary := &domain.DashboardSummary{}
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			wallet, err := s.wallet.Wallet(gctx, token)
			if err != nil {
				return err
			}
			if wallet != nil {
				summary.Wallet = *wallet
			}
			return nil
		})
		g.Go(func() error {
			plans, err := s.investments.Plans(gctx, token)
			summary.Plans = plans
			return err
		})
		if err := g.Wait(); err != nil {
			return nil, err
		}
		return summary, nil
	})
	if err != nil {
		return nil, fmt.Errorf("loading dashboard: %w", err)
	}
	return summary, nil
}
