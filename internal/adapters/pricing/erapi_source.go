package pricing

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/SscSPs/invest_portal/internal/apperrors"
	"github.com/SscSPs/invest_portal/internal/core/domain"
	"github.com/go-resty/resty/v2"
	"github.com/shopspring/decimal"
)

// ERAPIName identifies the open.er-api.com fiat source.
const ERAPIName = "er-api"

type erAPIResponse struct {
	Result   string             `json:"result"`
	BaseCode string             `json:"base_code"`
	Rates    map[string]float64 `json:"rates"`
}

// ERAPISource reads fiat rates from an open.er-api.com compatible endpoint.
type ERAPISource struct {
	client  *resty.Client
	baseURL string
	// aliases maps a portal code to the fiat code whose rate it takes, e.g. USDT -> USD.
	aliases map[string]string
}

// NewERAPISource creates a fiat source. aliases may be nil.
func NewERAPISource(client *resty.Client, baseURL string, aliases map[string]string) *ERAPISource {
	return &ERAPISource{
		client:  client,
		baseURL: strings.TrimRight(baseURL, "/"),
		aliases: aliases,
	}
}

// DefaultFiatAliases treats USDT as pegged to USD.
func DefaultFiatAliases() map[string]string {
	return map[string]string{"USDT": "USD"}
}

func (s *ERAPISource) Name() string { return ERAPIName }

// FetchRates returns every fiat rate for base plus the configured aliases.
func (s *ERAPISource) FetchRates(ctx context.Context, base string) (domain.RateTable, error) {
	var body erAPIResponse
	res, err := s.client.R().
		SetContext(ctx).
		SetResult(&body).
		Get(fmt.Sprintf("%s/v6/latest/%s", s.baseURL, strings.ToUpper(base)))
	if err != nil {
		return nil, fmt.Errorf("%w: er-api request: %v", apperrors.ErrNetwork, err)
	}
	if res.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("er-api responded with status %d", res.StatusCode())
	}
	if body.Result != "" && body.Result != "success" {
		return nil, fmt.Errorf("er-api result %q", body.Result)
	}
	if len(body.Rates) == 0 {
		return nil, fmt.Errorf("er-api returned no rates")
	}

	table := make(domain.RateTable, len(body.Rates)+len(s.aliases))
	for code, rate := range body.Rates {
		table[strings.ToUpper(code)] = decimal.NewFromFloat(rate)
	}
	for code, fiat := range s.aliases {
		rate, ok := body.Rates[fiat]
		if !ok {
			return nil, fmt.Errorf("er-api has no %s rate for alias %s", fiat, code)
		}
		table[code] = decimal.NewFromFloat(rate)
	}
	return table, nil
}
