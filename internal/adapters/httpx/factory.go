package httpx

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

const (
	defaultRetryCount    = 2
	defaultRetryInterval = 500 * time.Millisecond
)

// RetryOnErrOr5xx is a retry condition that retries on any error or if the response status code is 5xx.
func RetryOnErrOr5xx(r *resty.Response, err error) bool {
	return err != nil || (r != nil && r.StatusCode() >= http.StatusInternalServerError)
}

func retryOnTooManyRequestsStatus(r *resty.Response, _ error) bool {
	return r != nil && r.StatusCode() == http.StatusTooManyRequests
}

// NewRetryingClient builds the client used for best-effort GETs such as pricing lookups.
func NewRetryingClient(logger *slog.Logger, timeout time.Duration) *resty.Client {
	return resty.New().
		SetTimeout(timeout).
		SetRetryCount(defaultRetryCount).
		SetRetryWaitTime(defaultRetryInterval).
		SetRetryMaxWaitTime(defaultRetryCount*defaultRetryInterval).
		AddRetryCondition(RetryOnErrOr5xx).
		AddRetryCondition(retryOnTooManyRequestsStatus).
		SetHeader("Accept", "application/json").
		SetLogger(RestyAdapter(logger))
}

// NewClient builds a client that never retries. Used for the backend API where
// a repeated POST could submit a transaction twice.
func NewClient(logger *slog.Logger, baseURL string, timeout time.Duration) *resty.Client {
	return resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json").
		SetLogger(RestyAdapter(logger))
}
