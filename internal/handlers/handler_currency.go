package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/SscSPs/invest_portal/internal/apperrors"
	portssvc "github.com/SscSPs/invest_portal/internal/core/ports/services"
	"github.com/SscSPs/invest_portal/internal/dto"
	"github.com/SscSPs/invest_portal/internal/middleware"
	"github.com/SscSPs/invest_portal/internal/portal"
	"github.com/SscSPs/invest_portal/internal/utils"
	"github.com/SscSPs/invest_portal/internal/utils/mapping"
	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
)

// Conversion directions accepted by the convert endpoint.
const (
	directionToDisplay = "to_display"
	directionToBase    = "to_base"
)

// currencyHandler handles the currency selector and the shared rate table.
type currencyHandler struct {
	registry *portal.Registry
}

// newCurrencyHandler creates a new currencyHandler.
func newCurrencyHandler(registry *portal.Registry) *currencyHandler {
	return &currencyHandler{registry: registry}
}

// registerCurrencyRoutes registers routes related to currencies and rates.
func registerCurrencyRoutes(rg *gin.RouterGroup, registry *portal.Registry, refreshLimiter *limiter.Limiter) {
	h := newCurrencyHandler(registry)

	refresh := []gin.HandlerFunc{h.refreshRates}
	if refreshLimiter != nil {
		refresh = append([]gin.HandlerFunc{middleware.GinMiddlewarize(refreshLimiter)}, refresh...)
	}

	currency := rg.Group("/currency")
	{
		currency.GET("", h.getCurrency)
		currency.PUT("", h.setCurrency)
		currency.GET("/convert", h.convert)
	}

	rates := rg.Group("/rates")
	{
		rates.GET("", h.getRates)
		rates.POST("/refresh", refresh...)
	}
}

func currencyResponse(selector portssvc.CurrencyReaderSvc) dto.CurrencyResponse {
	resp := mapping.ToCurrencyResponse(selector.Current())
	resp.Supported = selector.Supported()
	return resp
}

func (h *currencyHandler) getCurrency(c *gin.Context) {
	profile, ok := profileFor(c, h.registry)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, currencyResponse(profile.Currency))
}

func (h *currencyHandler) setCurrency(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.SetCurrencyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for SetCurrency", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	profile, ok := profileFor(c, h.registry)
	if !ok {
		return
	}

	if _, err := profile.Currency.SetCurrency(c.Request.Context(), req.Code); err != nil {
		if errors.Is(err, apperrors.ErrUnsupportedCurrency) {
			logger.Warn("Unsupported currency requested", slog.String("currency_code", req.Code))
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Unsupported currency: " + req.Code})
			return
		}
		respondError(c, err, apperrors.DefaultPolicy, "Failed to set currency")
		return
	}

	logger.Info("Currency selected", slog.String("currency_code", req.Code))
	c.JSON(http.StatusOK, currencyResponse(profile.Currency))
}

// convert renders amount in the selected currency, or back to base with
// direction=to_base.
func (h *currencyHandler) convert(c *gin.Context) {
	profile, ok := profileFor(c, h.registry)
	if !ok {
		return
	}

	amount := c.Query("amount")
	direction := c.DefaultQuery("direction", directionToDisplay)
	conv := profile.Converter
	selected := conv.Currency()

	resp := dto.ConvertResponse{
		Currency:   selected.Code,
		Symbol:     selected.Symbol,
		Loading:    h.registry.Rates().Loading(),
		RateToBase: conv.RateToBase().String(),
	}
	switch direction {
	case directionToDisplay:
		resp.Base = amount
		resp.Display = conv.ToDisplay(amount)
		resp.Grouped = conv.Grouped(amount)
	case directionToBase:
		resp.Display = amount
		resp.Base = conv.ToBase(amount)
		resp.Grouped = utils.GroupThousands(resp.Base)
	default:
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "direction must be to_display or to_base"})
		return
	}
	c.JSON(http.StatusOK, resp)
}

func ratesResponse(rates portssvc.RateReaderSvc) dto.RatesResponse {
	table := rates.Table()
	resp := dto.RatesResponse{
		Base:    rates.Base(),
		Source:  rates.Source(),
		Loading: rates.Loading(),
		Rates:   make(map[string]string, len(table)),
	}
	for code, rate := range table {
		resp.Rates[code] = rate.String()
	}
	if updated := rates.UpdatedAt(); !updated.IsZero() {
		resp.UpdatedAt = updated.UTC().Format(time.RFC3339)
	}
	return resp
}

func (h *currencyHandler) getRates(c *gin.Context) {
	c.JSON(http.StatusOK, ratesResponse(h.registry.Rates()))
}

// refreshRates fetches the rate table now. A failed fetch keeps the previous
// table, which is still returned.
func (h *currencyHandler) refreshRates(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	rates := h.registry.Rates()
	if err := rates.Refresh(c.Request.Context()); err != nil {
		logger.Warn("Rate refresh failed", slog.String("error", err.Error()))
		c.JSON(http.StatusBadGateway, ratesResponse(rates))
		return
	}
	c.JSON(http.StatusOK, ratesResponse(rates))
}
