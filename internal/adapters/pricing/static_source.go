package pricing

import (
	"context"

	"github.com/SscSPs/invest_portal/internal/core/domain"
)

// StaticSource always returns the same table. Used when PRICING_OFFLINE is set.
type StaticSource struct {
	table domain.RateTable
}

func NewStaticSource(table domain.RateTable) *StaticSource {
	return &StaticSource{table: table.Clone()}
}

func (s *StaticSource) Name() string { return "static" }

func (s *StaticSource) FetchRates(_ context.Context, _ string) (domain.RateTable, error) {
	return s.table.Clone(), nil
}
