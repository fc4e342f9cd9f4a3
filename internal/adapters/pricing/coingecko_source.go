package pricing

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/SscSPs/invest_portal/internal/apperrors"
	"github.com/SscSPs/invest_portal/internal/core/domain"
	"github.com/go-resty/resty/v2"
	"github.com/shopspring/decimal"
)

// CoinGeckoName identifies the CoinGecko crypto source.
const CoinGeckoName = "coingecko"

// CoinGeckoSource prices coins in the base currency and inverts the quote,
// so the table holds coins per one unit of base.
type CoinGeckoSource struct {
	client  *resty.Client
	baseURL string
	// coins maps a portal code to a CoinGecko coin id, e.g. TRX -> tron.
	coins map[string]string
}

// NewCoinGeckoSource creates a crypto source for the given coins.
func NewCoinGeckoSource(client *resty.Client, baseURL string, coins map[string]string) *CoinGeckoSource {
	return &CoinGeckoSource{
		client:  client,
		baseURL: strings.TrimRight(baseURL, "/"),
		coins:   coins,
	}
}

// DefaultCoins prices TRX through the "tron" id.
func DefaultCoins() map[string]string {
	return map[string]string{"TRX": "tron"}
}

func (s *CoinGeckoSource) Name() string { return CoinGeckoName }

// FetchRates queries /api/v3/simple/price for every configured coin.
func (s *CoinGeckoSource) FetchRates(ctx context.Context, base string) (domain.RateTable, error) {
	if len(s.coins) == 0 {
		return domain.RateTable{}, nil
	}

	vs := strings.ToLower(base)
	ids := make([]string, 0, len(s.coins))
	for _, id := range s.coins {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var body map[string]map[string]float64
	res, err := s.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"ids":           strings.Join(ids, ","),
			"vs_currencies": vs,
		}).
		SetResult(&body).
		Get(s.baseURL + "/api/v3/simple/price")
	if err != nil {
		return nil, fmt.Errorf("%w: coingecko request: %v", apperrors.ErrNetwork, err)
	}
	if res.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("coingecko responded with status %d", res.StatusCode())
	}

	table := make(domain.RateTable, len(s.coins))
	for code, id := range s.coins {
		price, ok := body[id][vs]
		if !ok || price <= 0 {
			return nil, fmt.Errorf("coingecko has no %s price for %s", vs, id)
		}
		// price is base units per coin; invert to coins per base unit
		table[code] = decimal.NewFromInt(1).Div(decimal.NewFromFloat(price))
	}
	return table, nil
}
