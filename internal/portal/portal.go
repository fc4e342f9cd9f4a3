// Package portal owns the per-visitor state of the investment portal. Each
// visitor profile gets its own session, selected currency and wizards, while
// the rate table is shared by all of them.
package portal

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/SscSPs/invest_portal/internal/adapters/storage"
	"github.com/SscSPs/invest_portal/internal/core/flows"
	"github.com/SscSPs/invest_portal/internal/core/ports/clients"
	portsrepo "github.com/SscSPs/invest_portal/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/invest_portal/internal/core/ports/services"
	"github.com/SscSPs/invest_portal/internal/core/services"
	"github.com/SscSPs/invest_portal/internal/platform/config"
	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"
)

// Storage scopes of a profile.
const (
	ScopeSession = "session"
	ScopeLocal   = "local"
)

// Profile bundles everything one visitor interacts with.
type Profile struct {
	ID string

	Currency  portssvc.CurrencySelectorSvc
	Converter portssvc.ConverterSvc
	Session   portssvc.SessionSvc

	Deposit       *flows.DepositFlow
	Withdrawal    *flows.WithdrawalFlow
	Registration  *flows.RegistrationFlow
	PasswordReset *flows.PasswordResetFlow

	Dashboard   portssvc.DashboardSvc
	Investments portssvc.InvestmentSvc
	History     portssvc.HistorySvc
	Account     portssvc.ProfileSvc
}

// DefaultMaxProfiles bounds the registry when the config leaves it unset.
const DefaultMaxProfiles = 10000

// Registry creates profiles on first use and keeps the recently used ones
// loaded. A profile idle for longer than the configured TTL, or pushed out by
// newer ones, is rebuilt from storage on its next request; unsaved wizard
// input is lost.
type Registry struct {
	mu       sync.Mutex
	profiles *expirable.LRU[string, *Profile]

	cfg     *config.Config
	rates   portssvc.RateStoreSvc
	backend clients.BackendFacade
	store   portsrepo.KeyValueStore
	logger  *slog.Logger
}

// NewRegistry wires profiles to the shared rate store, backend client and
// storage backend.
func NewRegistry(cfg *config.Config, rates portssvc.RateStoreSvc, backend clients.BackendFacade, store portsrepo.KeyValueStore, logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	size := cfg.MaxProfiles
	if size <= 0 {
		size = DefaultMaxProfiles
	}
	return &Registry{
		profiles: expirable.NewLRU(size, func(id string, _ *Profile) {
			logger.Debug("Profile unloaded", slog.String("profile_id", id))
		}, cfg.ProfileIdleTTL),
		cfg:     cfg,
		rates:   rates,
		backend: backend,
		store:   store,
		logger:  logger,
	}
}

// Rates returns the shared rate store.
func (r *Registry) Rates() portssvc.RateStoreSvc {
	return r.rates
}

// NewProfileID returns a fresh random profile id.
func NewProfileID() string {
	return uuid.NewString()
}

// Get returns the profile with id, creating it when it does not exist yet.
// Ids must be UUIDs.
func (r *Registry) Get(ctx context.Context, id string) (*Profile, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("invalid profile id %q: %w", id, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.profiles.Get(id)
	if !ok {
		p = r.build(ctx, id)
		r.logger.Debug("Profile loaded", slog.String("profile_id", id))
	}
	// re-adding renews the idle deadline
	r.profiles.Add(id, p)
	return p, nil
}

// Len reports how many profiles are loaded.
func (r *Registry) Len() int {
	return r.profiles.Len()
}

func (r *Registry) build(ctx context.Context, id string) *Profile {
	logger := r.logger.With(slog.String("profile_id", id))
	sessionStore := storage.Scope(r.store, id+"/"+ScopeSession, r.cfg.SessionTTL)
	localStore := storage.Scope(r.store, id+"/"+ScopeLocal, 0)

	selector := services.NewCurrencySelector(ctx, localStore, r.cfg.DefaultCurrency, logger)
	converter := services.NewConverter(r.rates, selector)
	session := services.NewSessionService(sessionStore, r.backend, logger)

	depositCfg := flows.DefaultDepositConfig()
	if !r.cfg.MinDeposit.IsZero() {
		depositCfg.MinAmount = r.cfg.MinDeposit
	}
	if r.cfg.MaxUploadBytes > 0 {
		depositCfg.MaxUploadBytes = r.cfg.MaxUploadBytes
	}
	withdrawalCfg := flows.WithdrawalConfig{MinAmount: r.cfg.MinWithdrawal, BaseCurrency: r.cfg.BaseCurrency}

	return &Profile{
		ID:            id,
		Currency:      selector,
		Converter:     converter,
		Session:       session,
		Deposit:       flows.NewDepositFlow(depositCfg, r.backend, session, converter, logger),
		Withdrawal:    flows.NewWithdrawalFlow(withdrawalCfg, r.backend, session, converter, logger),
		Registration:  flows.NewRegistrationFlow(r.backend, logger),
		PasswordReset: flows.NewPasswordResetFlow(r.backend, logger),
		Dashboard:     services.NewDashboardService(session, r.backend, r.backend, logger),
		Investments:   services.NewInvestmentService(session, r.backend, logger),
		History:       services.NewHistoryService(session, r.backend, r.backend, logger),
		Account:       services.NewProfileService(session, r.backend, r.cfg.BackendBaseURL, logger),
	}
}
