package backend

import (
	"bytes"
	"context"
	"fmt"
	"net/http"

	"github.com/SscSPs/invest_portal/internal/apperrors"
	"github.com/SscSPs/invest_portal/internal/core/ports/clients"
	"github.com/SscSPs/invest_portal/internal/dto"
	"github.com/go-resty/resty/v2"
)

// Backend API paths, relative to the configured base URL.
const (
	pathLogin          = "/accounts/login/"
	pathRegister       = "/accounts/register/"
	pathVerifyOTP      = "/accounts/verify-otp/"
	pathForgotPassword = "/accounts/forgot-password/"
	pathResetPassword  = "/accounts/reset-password/"
	pathProfile        = "/accounts/profile/"
	pathReferrals      = "/accounts/referrals/"

	pathWallet            = "/transactions/wallet/detail/"
	pathReceivingAccounts = "/wallet/account-details/"
	pathDeposit           = "/transactions/deposit/"
	pathDepositHistory    = "/transactions/deposit/history/"
	pathWithdraw          = "/transactions/withdraw/"
	pathWithdrawHistory   = "/transactions/withdraw/history/"

	pathPlans          = "/transactions/plans/"
	pathDashboard      = "/transactions/dashboard/"
	pathInvest         = "/transactions/invest/"
	pathPlanHistory    = "/transactions/plans/history/"
	pathProfitHistory  = "/transactions/profit/history/"
	pathTodayVideo     = "/transactions/today-video/"
	pathPreviousVideos = "/transactions/previous-videos/"
)

// Client talks to the investment backend. Authenticated calls send the
// profile's access token as a bearer token.
type Client struct {
	http *resty.Client
}

// NewClient wraps a resty client whose base URL points at the backend API root.
func NewClient(http *resty.Client) *Client {
	return &Client{http: http}
}

var _ clients.BackendFacade = (*Client)(nil)

func (c *Client) request(ctx context.Context, token string) *resty.Request {
	req := c.http.R().SetContext(ctx)
	if token != "" {
		req.SetAuthToken(token)
	}
	return req
}

// send executes req. A 2xx JSON body is decoded into result when it is not nil.
// Non-2xx replies become *apperrors.APIError; transport failures wrap ErrNetwork.
func send(req *resty.Request, method, path string, result any) error {
	var payload map[string]any
	req.SetError(&payload).ForceContentType("application/json")
	if result != nil {
		req.SetResult(result)
	}

	res, err := req.Execute(method, path)
	if err != nil {
		if res == nil || res.RawResponse == nil {
			return fmt.Errorf("%w: %s %s: %v", apperrors.ErrNetwork, method, path, err)
		}
		// an empty 2xx body leaves result untouched
		if res.IsSuccess() && len(bytes.TrimSpace(res.Body())) == 0 {
			return nil
		}
		return fmt.Errorf("decoding %s %s response: %w", method, path, err)
	}

	if !res.IsSuccess() {
		return &apperrors.APIError{Status: res.StatusCode(), Payload: payload, Body: string(res.Body())}
	}
	return nil
}

func (c *Client) get(ctx context.Context, token, path string, result any) error {
	return send(c.request(ctx, token), http.MethodGet, path, result)
}

func (c *Client) postJSON(ctx context.Context, token, path string, body, result any) error {
	return send(c.request(ctx, token).SetBody(body), http.MethodPost, path, result)
}

func attach(req *resty.Request, field string, upload *dto.Upload) {
	if upload == nil {
		return
	}
	req.SetMultipartField(field, upload.Filename, upload.ContentType, bytes.NewReader(upload.Data))
}
