package clients

import (
	"context"

	"github.com/SscSPs/invest_portal/internal/core/domain"
)

// RateSource fetches exchange rates keyed by a base currency.
// Implementations can be swapped without touching the converter or the flows.
type RateSource interface {
	// Name identifies the source in logs.
	Name() string
	// FetchRates returns units of each currency per one unit of base.
	FetchRates(ctx context.Context, base string) (domain.RateTable, error)
}
