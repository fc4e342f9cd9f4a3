package pricing

import (
	"context"
	"fmt"
	"strings"

	"github.com/SscSPs/invest_portal/internal/core/domain"
	"github.com/SscSPs/invest_portal/internal/core/ports/clients"
)

// CompositeSource merges several sources. Any failing child fails the whole fetch
// so a partial table never replaces a complete one.
type CompositeSource struct {
	sources []clients.RateSource
}

// NewCompositeSource merges sources in order; later sources win on conflicting codes.
func NewCompositeSource(sources ...clients.RateSource) *CompositeSource {
	return &CompositeSource{sources: sources}
}

func (c *CompositeSource) Name() string {
	names := make([]string, len(c.sources))
	for i, s := range c.sources {
		names[i] = s.Name()
	}
	return "composite(" + strings.Join(names, "+") + ")"
}

func (c *CompositeSource) FetchRates(ctx context.Context, base string) (domain.RateTable, error) {
	merged := domain.RateTable{}
	for _, s := range c.sources {
		table, err := s.FetchRates(ctx, base)
		if err != nil {
			return nil, fmt.Errorf("source %s: %w", s.Name(), err)
		}
		merged.Merge(table)
	}
	return merged, nil
}
