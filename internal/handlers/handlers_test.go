package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/SscSPs/invest_portal/internal/adapters/backend"
	"github.com/SscSPs/invest_portal/internal/adapters/pricing"
	"github.com/SscSPs/invest_portal/internal/adapters/storage"
	"github.com/SscSPs/invest_portal/internal/core/domain"
	"github.com/SscSPs/invest_portal/internal/core/services"
	"github.com/SscSPs/invest_portal/internal/dto"
	"github.com/SscSPs/invest_portal/internal/handlers"
	"github.com/SscSPs/invest_portal/internal/middleware"
	"github.com/SscSPs/invest_portal/internal/platform/config"
	"github.com/SscSPs/invest_portal/internal/portal"
	"github.com/SscSPs/invest_portal/internal/testutil"
	"github.com/gin-gonic/gin"
	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

// fakeBackend answers backend API paths from a per-test route table.
type fakeBackend struct {
	mu     sync.Mutex
	routes map[string]http.HandlerFunc
}

func (b *fakeBackend) handle(path string, h http.HandlerFunc) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.routes[path] = h
}

func (b *fakeBackend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	h, ok := b.routes[strings.TrimPrefix(r.URL.Path, "/api")]
	b.mu.Unlock()
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"detail": "Not found."})
		return
	}
	h(w, r)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func reply(status int, body any) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) { writeJSON(w, status, body) }
}

type HandlersTestSuite struct {
	suite.Suite
	backend   *fakeBackend
	server    *httptest.Server
	registry  *portal.Registry
	router    *gin.Engine
	profileID string
	token     string
}

func (s *HandlersTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)

	s.backend = &fakeBackend{routes: make(map[string]http.HandlerFunc)}
	s.server = httptest.NewServer(s.backend)

	cfg := &config.Config{
		BaseCurrency:    "PKR",
		DefaultCurrency: "USDT",
		SessionTTL:      time.Hour,
		MinDeposit:      decimal.NewFromInt(3000),
		MinWithdrawal:   decimal.NewFromInt(100),
		MaxUploadBytes:  1 << 20,
		BackendBaseURL:  s.server.URL + "/api",
	}
	rates := services.NewRateStore("PKR", pricing.NewStaticSource(domain.DefaultRates()))
	s.Require().NoError(rates.Refresh(context.Background()))
	client := backend.NewClient(resty.New().SetBaseURL(cfg.BackendBaseURL))
	s.registry = portal.NewRegistry(cfg, rates, client, storage.NewMemoryStore(), nil)

	s.router = gin.New()
	handlers.RegisterRoutes(s.router, cfg, s.registry, handlers.Limiters{})
	s.profileID = uuid.NewString()

	token, err := testutil.GenerateJWT("42", "backend-secret", time.Hour, "backend")
	s.Require().NoError(err)
	s.token = token
}

func (s *HandlersTestSuite) TearDownTest() {
	s.server.Close()
}

func TestHandlersTestSuite(t *testing.T) {
	suite.Run(t, new(HandlersTestSuite))
}

func (s *HandlersTestSuite) do(method, path string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		s.Require().NoError(err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set(middleware.ProfileHeader, s.profileID)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *HandlersTestSuite) decode(w *httptest.ResponseRecorder, out any) {
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), out))
}

func (s *HandlersTestSuite) login() {
	s.backend.handle("/accounts/login/", reply(http.StatusOK, map[string]string{"access": s.token, "refresh": "ref"}))
	w := s.do(http.MethodPost, "/api/v1/auth/login", dto.LoginForm{Identifier: "03001234567", Password: "pw"})
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
}

func (s *HandlersTestSuite) TestHealth() {
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	s.Equal(http.StatusOK, w.Code)
	s.Equal("OK", w.Body.String())
}

func (s *HandlersTestSuite) TestNewVisitorGetsProfileAndDefaultCurrency() {
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/currency", nil))

	s.Equal(http.StatusOK, w.Code)
	_, err := uuid.Parse(w.Header().Get(middleware.ProfileHeader))
	s.NoError(err)

	var resp dto.CurrencyResponse
	s.decode(w, &resp)
	s.Equal("USDT", resp.Code)
	codes := make([]string, 0, len(resp.Supported))
	for _, c := range resp.Supported {
		codes = append(codes, c.Code)
	}
	s.Contains(codes, "TRX")
}

func (s *HandlersTestSuite) TestSetCurrencyAndConvert() {
	w := s.do(http.MethodPut, "/api/v1/currency", dto.SetCurrencyRequest{Code: "TRX"})
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	w = s.do(http.MethodGet, "/api/v1/currency/convert?amount=3000", nil)
	s.Require().Equal(http.StatusOK, w.Code)
	var resp dto.ConvertResponse
	s.decode(w, &resp)
	s.Equal("TRX", resp.Currency)
	s.Equal("54.00", resp.Display)

	w = s.do(http.MethodGet, "/api/v1/currency/convert?amount=54&direction=to_base", nil)
	s.Require().Equal(http.StatusOK, w.Code)
	s.decode(w, &resp)
	s.Equal("3000.00", resp.Base)
}

func (s *HandlersTestSuite) TestSetUnsupportedCurrency() {
	w := s.do(http.MethodPut, "/api/v1/currency", dto.SetCurrencyRequest{Code: "EUR"})

	s.Equal(http.StatusBadRequest, w.Code)
	var resp dto.ErrorResponse
	s.decode(w, &resp)
	s.Equal("Unsupported currency: EUR", resp.Error)
}

func (s *HandlersTestSuite) TestConvertTreatsHugeExponentAsInvalid() {
	w := s.do(http.MethodGet, "/api/v1/currency/convert?amount=1e10000000", nil)

	s.Require().Equal(http.StatusOK, w.Code)
	var resp dto.ConvertResponse
	s.decode(w, &resp)
	s.Equal("0.00", resp.Display)
}

func (s *HandlersTestSuite) TestConvertRejectsUnknownDirection() {
	w := s.do(http.MethodGet, "/api/v1/currency/convert?amount=1&direction=sideways", nil)

	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *HandlersTestSuite) TestSignedInPagesRequireSession() {
	w := s.do(http.MethodGet, "/api/v1/dashboard", nil)

	s.Equal(http.StatusUnauthorized, w.Code)
	var resp dto.ErrorResponse
	s.decode(w, &resp)
	s.True(resp.RedirectToLogin)
	s.Equal("Session expired. Please login again.", resp.Error)
}

func (s *HandlersTestSuite) TestLoginAndDashboard() {
	s.login()
	s.backend.handle("/transactions/wallet/detail/", func(w http.ResponseWriter, r *http.Request) {
		s.Equal("Bearer "+s.token, r.Header.Get("Authorization"))
		writeJSON(w, http.StatusOK, map[string]any{"balance": "10000"})
	})
	s.backend.handle("/transactions/plans/", reply(http.StatusOK, []map[string]any{
		{"id": 7, "title": "Gold", "amount": "5000", "daily_profit": "250"},
	}))

	w := s.do(http.MethodGet, "/api/v1/dashboard", nil)

	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	var resp dto.DashboardResponse
	s.decode(w, &resp)
	s.Equal("36.00", resp.Balance.Display)
	s.Require().Len(resp.Plans, 1)
	s.Equal("18.00", resp.Plans[0].Amount.Display)
}

func (s *HandlersTestSuite) TestLoginFailureDoesNotRedirect() {
	s.backend.handle("/accounts/login/", reply(http.StatusUnauthorized, map[string]string{"detail": "No active account found"}))

	w := s.do(http.MethodPost, "/api/v1/auth/login", dto.LoginForm{Identifier: "a@b.com", Password: "bad"})

	s.Equal(http.StatusUnauthorized, w.Code)
	var resp dto.ErrorResponse
	s.decode(w, &resp)
	s.False(resp.RedirectToLogin)
	s.NotEmpty(resp.Error)
}

func (s *HandlersTestSuite) TestLoginRequiresCredentials() {
	w := s.do(http.MethodPost, "/api/v1/auth/login", map[string]string{"identifier": "a@b.com"})

	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *HandlersTestSuite) TestBackendUnauthorizedEndsSession() {
	s.login()
	s.backend.handle("/transactions/wallet/detail/", reply(http.StatusUnauthorized, map[string]string{"detail": "Token expired"}))
	s.backend.handle("/transactions/plans/", reply(http.StatusOK, []any{}))

	w := s.do(http.MethodGet, "/api/v1/dashboard", nil)

	s.Equal(http.StatusUnauthorized, w.Code)
	var resp dto.ErrorResponse
	s.decode(w, &resp)
	s.True(resp.RedirectToLogin)

	w = s.do(http.MethodGet, "/api/v1/auth/session", nil)
	var session map[string]bool
	s.decode(w, &session)
	s.False(session["authenticated"])
}

func (s *HandlersTestSuite) TestLogout() {
	s.login()

	w := s.do(http.MethodPost, "/api/v1/auth/logout", nil)
	s.Require().Equal(http.StatusOK, w.Code)

	w = s.do(http.MethodGet, "/api/v1/dashboard", nil)
	s.Equal(http.StatusUnauthorized, w.Code)
}

func (s *HandlersTestSuite) TestDepositRejectsSmallAmount() {
	s.login()

	w := s.do(http.MethodPost, "/api/v1/flows/deposit/next", map[string]string{"amount": "5"})

	s.Equal(http.StatusBadRequest, w.Code)
	var view struct {
		Step  string `json:"step"`
		Error string `json:"error"`
	}
	s.decode(w, &view)
	s.Equal("amount", view.Step)
	s.Equal("Amount must be at least 10.80 USDT.", view.Error)
}

func (s *HandlersTestSuite) TestDepositAdvancesAndRejectsNonImageScreenshot() {
	s.login()
	s.backend.handle("/wallet/account-details/", reply(http.StatusOK, []map[string]any{
		{"id": 1, "account_name": "JazzCash", "account_number": "03001112223", "owner_name": "Admin"},
	}))

	w := s.do(http.MethodPost, "/api/v1/flows/deposit/next", map[string]string{"amount": "20"})
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	var view struct {
		Step     string `json:"step"`
		Accounts []any  `json:"accounts"`
	}
	s.decode(w, &view)
	s.Equal("method", view.Step)
	s.Len(view.Accounts, 1)

	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	part, err := mw.CreateFormFile("screenshot", "proof.txt")
	s.Require().NoError(err)
	_, err = part.Write([]byte("plain text, not an image"))
	s.Require().NoError(err)
	s.Require().NoError(mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/flows/deposit/screenshot", body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set(middleware.ProfileHeader, s.profileID)
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	s.Equal(http.StatusBadRequest, rec.Code)
	var failed struct {
		Error string `json:"error"`
	}
	s.decode(rec, &failed)
	s.Equal("Please upload an image file", failed.Error)
}

func (s *HandlersTestSuite) TestRegistrationFlowIsPublic() {
	w := s.do(http.MethodGet, "/api/v1/flows/registration", nil)

	s.Require().Equal(http.StatusOK, w.Code)
	var view struct {
		Flow string `json:"flow"`
		Step string `json:"step"`
	}
	s.decode(w, &view)
	s.Equal("details", view.Step)
}

func (s *HandlersTestSuite) TestWithdrawalHistoryFilter() {
	s.login()
	s.backend.handle("/transactions/withdraw/history/", reply(http.StatusOK, []map[string]any{
		{"id": 1, "amount": "500", "method": "JazzCash", "bank_account": "03451234567", "status": "Successful"},
		{"id": 2, "amount": "700", "method": "EasyPaisa", "bank_account": "03111111111", "status": "Pending"},
	}))

	w := s.do(http.MethodGet, "/api/v1/history/withdrawals?status=Pending", nil)

	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	var resp dto.WithdrawalHistoryResponse
	s.decode(w, &resp)
	s.Require().Len(resp.Entries, 1)
	s.Equal(int64(2), resp.Entries[0].ID)
	s.Equal(2, resp.Total)
	s.Equal(1, resp.Pending)
}

func (s *HandlersTestSuite) TestActivatePlan() {
	s.login()
	s.backend.handle("/transactions/invest/", reply(http.StatusOK, map[string]string{"message": "Plan activated successfully"}))

	w := s.do(http.MethodPost, "/api/v1/plans/7/activate", nil)
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	var resp dto.MessageResponse
	s.decode(w, &resp)
	s.Equal("Plan activated successfully", resp.Message)

	w = s.do(http.MethodPost, "/api/v1/plans/abc/activate", nil)
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *HandlersTestSuite) TestActivatePlanBackendError() {
	s.login()
	s.backend.handle("/transactions/invest/", reply(http.StatusBadRequest, map[string]string{"error": "Insufficient balance"}))

	w := s.do(http.MethodPost, "/api/v1/plans/7/activate", nil)

	var resp dto.ErrorResponse
	s.decode(w, &resp)
	s.Equal("Insufficient balance", resp.Error)
	s.False(resp.RedirectToLogin)
}

func (s *HandlersTestSuite) TestRateLimitPerProfile() {
	lim, err := middleware.NewMemoryLimiter("1-M")
	s.Require().NoError(err)

	cfg := &config.Config{BaseCurrency: "PKR", DefaultCurrency: "USDT", MaxUploadBytes: 1 << 20}
	router := gin.New()
	handlers.RegisterRoutes(router, cfg, s.registry, handlers.Limiters{API: lim})

	send := func() int {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/rates", nil)
		req.Header.Set(middleware.ProfileHeader, s.profileID)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w.Code
	}

	s.Equal(http.StatusOK, send())
	s.Equal(http.StatusTooManyRequests, send())
}

func (s *HandlersTestSuite) TestIPLimitCoversFreshProfiles() {
	ipLimiter, err := middleware.NewMemoryLimiter("3-M")
	s.Require().NoError(err)
	apiLimiter, err := middleware.NewMemoryLimiter("3-M")
	s.Require().NoError(err)

	cfg := &config.Config{BaseCurrency: "PKR", DefaultCurrency: "USDT", MaxUploadBytes: 1 << 20}
	router := gin.New()
	handlers.RegisterRoutes(router, cfg, s.registry, handlers.Limiters{IP: ipLimiter, API: apiLimiter})

	limited := 0
	for i := 0; i < 10; i++ {
		// no profile header or cookie, so every request gets a new profile
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/rates", nil))
		if w.Code == http.StatusTooManyRequests {
			limited++
		}
	}

	s.Equal(7, limited)
}

func (s *HandlersTestSuite) TestRatesRefreshIsThrottled() {
	refreshLimiter, err := middleware.NewMemoryLimiter("1-M")
	s.Require().NoError(err)

	cfg := &config.Config{BaseCurrency: "PKR", DefaultCurrency: "USDT", MaxUploadBytes: 1 << 20}
	router := gin.New()
	handlers.RegisterRoutes(router, cfg, s.registry, handlers.Limiters{Refresh: refreshLimiter})

	send := func(id string) int {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/rates/refresh", nil)
		req.Header.Set(middleware.ProfileHeader, id)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w.Code
	}

	s.Equal(http.StatusOK, send(portal.NewProfileID()))
	// a different profile from the same address shares the budget
	s.Equal(http.StatusTooManyRequests, send(portal.NewProfileID()))
}
