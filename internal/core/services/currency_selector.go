package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/SscSPs/invest_portal/internal/apperrors"
	"github.com/SscSPs/invest_portal/internal/core/domain"
	portsrepo "github.com/SscSPs/invest_portal/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/invest_portal/internal/core/ports/services"
)

// Local storage keys for the selected currency.
const (
	CurrencyCodeKey   = "app_currency"
	CurrencySymbolKey = "app_symbol"
)

type currencySelector struct {
	BaseService
	store portsrepo.KeyValueStore

	mu      sync.RWMutex
	current domain.Currency
}

// NewCurrencySelector restores the persisted selection from store, falling
// back to defaultCode when nothing supported was saved.
func NewCurrencySelector(ctx context.Context, store portsrepo.KeyValueStore, defaultCode string, logger *slog.Logger) portssvc.CurrencySelectorSvc {
	s := &currencySelector{
		BaseService: BaseService{Logger: logger},
		store:       store,
	}

	fallback, ok := domain.LookupCurrency(defaultCode)
	if !ok {
		fallback = domain.SupportedCurrencies[0]
	}
	s.current = fallback

	code, err := store.Get(ctx, CurrencyCodeKey)
	switch {
	case err == nil:
		if c, ok := domain.LookupCurrency(code); ok {
			s.current = c
		} else {
			s.LogDebug(ctx, "Ignoring unsupported persisted currency", slog.String("code", code))
		}
	case !errors.Is(err, apperrors.ErrNotFound):
		s.LogWarn(ctx, err, "Failed to read persisted currency")
	}

	return s
}

var _ portssvc.CurrencySelectorSvc = (*currencySelector)(nil)

func (s *currencySelector) Current() domain.Currency {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

func (s *currencySelector) Supported() []domain.Currency {
	out := make([]domain.Currency, len(domain.SupportedCurrencies))
	copy(out, domain.SupportedCurrencies)
	return out
}

// SetCurrency persists code and its symbol, then makes it the current selection.
// If the symbol cannot be stored the previous code is written back and the
// selection is left unchanged. Rates are not refreshed.
func (s *currencySelector) SetCurrency(ctx context.Context, code string) (domain.Currency, error) {
	c, ok := domain.LookupCurrency(code)
	if !ok {
		return domain.Currency{}, fmt.Errorf("%w: %q", apperrors.ErrUnsupportedCurrency, code)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	previous := s.current

	if err := s.store.Set(ctx, CurrencyCodeKey, c.Code, 0); err != nil {
		return domain.Currency{}, fmt.Errorf("persisting currency: %w", err)
	}
	if err := s.store.Set(ctx, CurrencySymbolKey, c.Symbol, 0); err != nil {
		if restoreErr := s.store.Set(ctx, CurrencyCodeKey, previous.Code, 0); restoreErr != nil {
			s.LogError(ctx, restoreErr, "Failed to restore persisted currency",
				slog.String("code", previous.Code), slog.String("attempted", c.Code))
		}
		return domain.Currency{}, fmt.Errorf("persisting currency symbol: %w", err)
	}

	s.current = c
	s.LogInfo(ctx, "Currency changed", slog.String("code", c.Code))
	return c, nil
}
