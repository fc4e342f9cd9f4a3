package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/SscSPs/invest_portal/internal/apperrors"
	"github.com/SscSPs/invest_portal/internal/core/domain"
	"github.com/SscSPs/invest_portal/internal/core/ports/clients"
	portsrepo "github.com/SscSPs/invest_portal/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/invest_portal/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

// RatesCacheKey is the local storage key the last fetched table is cached under.
const RatesCacheKey = "rates"

// rateStore holds the process-wide rate table.
type rateStore struct {
	BaseService
	base     string
	source   clients.RateSource
	cache    portsrepo.KeyValueStore
	interval time.Duration
	now      func() time.Time

	mu        sync.RWMutex
	table     domain.RateTable
	loading   bool
	updatedAt time.Time
}

// RateStoreOption is a functional option for configuring the rate store
type RateStoreOption func(*rateStore)

// WithRefreshInterval enables periodic refreshes after Start. Zero disables them.
func WithRefreshInterval(d time.Duration) RateStoreOption {
	return func(s *rateStore) {
		s.interval = d
	}
}

// WithRateCache sets where fetched tables are cached between restarts.
func WithRateCache(cache portsrepo.KeyValueStore) RateStoreOption {
	return func(s *rateStore) {
		s.cache = cache
	}
}

// WithRateLogger sets the fallback logger.
func WithRateLogger(logger *slog.Logger) RateStoreOption {
	return func(s *rateStore) {
		s.Logger = logger
	}
}

// WithClock overrides time.Now.
func WithClock(now func() time.Time) RateStoreOption {
	return func(s *rateStore) {
		s.now = now
	}
}

// NewRateStore creates a rate store seeded with the default table. It reports
// Loading until Hydrate finds a cached table or the first Refresh completes.
func NewRateStore(base string, source clients.RateSource, options ...RateStoreOption) portssvc.RateStoreSvc {
	base = strings.ToUpper(base)
	s := &rateStore{
		base:    base,
		source:  source,
		now:     time.Now,
		table:   domain.DefaultRates().Normalize(base),
		loading: true,
	}
	for _, option := range options {
		option(s)
	}
	return s
}

var _ portssvc.RateStoreSvc = (*rateStore)(nil)

func (s *rateStore) Rate(code string) (decimal.Decimal, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rate, ok := s.table[strings.ToUpper(code)]
	return rate, ok
}

func (s *rateStore) Table() domain.RateTable {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.table.Clone()
}

func (s *rateStore) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

func (s *rateStore) Base() string { return s.base }

func (s *rateStore) UpdatedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.updatedAt
}

func (s *rateStore) Source() string {
	if s.source == nil {
		return ""
	}
	return s.source.Name()
}

// Hydrate replaces the defaults with the cached table when one is usable.
// Unusable entries are deleted so the next refresh rewrites them.
func (s *rateStore) Hydrate(ctx context.Context) {
	if s.cache == nil {
		return
	}

	raw, err := s.cache.Get(ctx, RatesCacheKey)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogWarn(ctx, err, "Failed to read cached rates")
		}
		return
	}

	table, err := decodeRates(raw, s.base)
	if err != nil {
		s.LogWarn(ctx, err, "Discarding cached rates", slog.String("key", RatesCacheKey))
		if delErr := s.cache.Delete(ctx, RatesCacheKey); delErr != nil {
			s.LogWarn(ctx, delErr, "Failed to delete cached rates")
		}
		return
	}

	s.mu.Lock()
	s.table = table
	s.loading = false
	s.mu.Unlock()
	s.LogDebug(ctx, "Rates hydrated from cache", slog.Int("currencies", len(table)))
}

// Refresh fetches a new table. On failure the current table is kept.
// Either way the store stops reporting Loading.
func (s *rateStore) Refresh(ctx context.Context) error {
	if s.source == nil {
		s.setLoaded()
		return fmt.Errorf("no rate source configured")
	}

	fetched, err := s.source.FetchRates(ctx, s.base)
	if err != nil {
		s.setLoaded()
		s.LogWarn(ctx, err, "Failed to fetch exchange rates", slog.String("source", s.source.Name()))
		return fmt.Errorf("fetching rates from %s: %w", s.source.Name(), err)
	}

	table := fetched.Normalize(s.base)
	s.mu.Lock()
	s.table = table
	s.loading = false
	s.updatedAt = s.now()
	s.mu.Unlock()

	if s.cache != nil {
		payload, err := json.Marshal(table)
		if err == nil {
			err = s.cache.Set(ctx, RatesCacheKey, string(payload), 0)
		}
		if err != nil {
			s.LogWarn(ctx, err, "Failed to cache exchange rates")
		}
	}

	s.LogInfo(ctx, "Exchange rates refreshed",
		slog.String("source", s.source.Name()),
		slog.Int("currencies", len(table)))
	return nil
}

// Start hydrates synchronously, then refreshes in a background goroutine.
// With a refresh interval the goroutine keeps refreshing until ctx is done.
func (s *rateStore) Start(ctx context.Context) {
	s.Hydrate(ctx)

	go func() {
		_ = s.Refresh(ctx)
		if s.interval <= 0 {
			return
		}

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				_ = s.Refresh(ctx)
			}
		}
	}()
}

func (s *rateStore) setLoaded() {
	s.mu.Lock()
	s.loading = false
	s.mu.Unlock()
}

func decodeRates(raw, base string) (domain.RateTable, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "undefined" || raw == "null" {
		return nil, fmt.Errorf("cached rates are empty")
	}

	var table domain.RateTable
	if err := json.Unmarshal([]byte(raw), &table); err != nil {
		return nil, fmt.Errorf("cached rates are corrupt: %w", err)
	}
	if len(table) == 0 {
		return nil, fmt.Errorf("cached rates are empty")
	}
	return table.Normalize(base), nil
}
