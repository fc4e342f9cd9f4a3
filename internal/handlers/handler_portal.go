package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/SscSPs/invest_portal/internal/core/domain"
	"github.com/SscSPs/invest_portal/internal/core/services"
	"github.com/SscSPs/invest_portal/internal/dto"
	"github.com/SscSPs/invest_portal/internal/middleware"
	"github.com/SscSPs/invest_portal/internal/portal"
	"github.com/SscSPs/invest_portal/internal/utils/mapping"
	"github.com/gin-gonic/gin"
)

// portalHandler serves the signed-in pages.
type portalHandler struct {
	registry       *portal.Registry
	maxUploadBytes int64
}

// registerPortalRoutes sets up the dashboard, plans, history and account routes.
func registerPortalRoutes(rg *gin.RouterGroup, registry *portal.Registry, maxUploadBytes int64) {
	h := &portalHandler{registry: registry, maxUploadBytes: maxUploadBytes}

	rg.GET("/dashboard", h.dashboard)

	plans := rg.Group("/plans")
	{
		plans.GET("", h.plans)
		plans.POST("/:planID/activate", h.activatePlan)
	}

	history := rg.Group("/history")
	{
		history.GET("/deposits", h.depositHistory)
		history.GET("/withdrawals", h.withdrawalHistory)
		history.GET("/profits", h.profitHistory)
	}

	rg.GET("/referrals", h.referrals)

	profile := rg.Group("/profile")
	{
		profile.GET("", h.getProfile)
		profile.PUT("", h.updateProfile)
	}
}

func (h *portalHandler) dashboard(c *gin.Context) {
	p, ok := profileFor(c, h.registry)
	if !ok {
		return
	}
	summary, err := p.Dashboard.Dashboard(c.Request.Context())
	if err != nil {
		respondError(c, err, services.PagePolicy, "Failed to load dashboard")
		return
	}
	c.JSON(http.StatusOK, mapping.ToDashboardResponse(p.Converter, summary))
}

func (h *portalHandler) plans(c *gin.Context) {
	p, ok := profileFor(c, h.registry)
	if !ok {
		return
	}
	overview, err := p.Investments.Plans(c.Request.Context())
	if err != nil {
		respondError(c, err, services.PagePolicy, "Failed to load plans")
		return
	}
	c.JSON(http.StatusOK, mapping.ToPlansResponse(p.Converter, overview))
}

func (h *portalHandler) activatePlan(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	planIDStr := c.Param("planID")
	planID, err := strconv.ParseInt(planIDStr, 10, 64)
	if err != nil || planID <= 0 {
		logger.Warn("Invalid plan ID in path", slog.String("plan_id", planIDStr))
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid plan ID format"})
		return
	}

	p, ok := profileFor(c, h.registry)
	if !ok {
		return
	}
	notice, err := p.Investments.Activate(c.Request.Context(), planID)
	if err != nil {
		respondError(c, err, services.InvestPolicy, "Failed to activate plan")
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: notice})
}

func (h *portalHandler) depositHistory(c *gin.Context) {
	p, ok := profileFor(c, h.registry)
	if !ok {
		return
	}
	history, err := p.History.Deposits(c.Request.Context())
	if err != nil {
		respondError(c, err, services.PagePolicy, "Failed to load deposit history")
		return
	}
	c.JSON(http.StatusOK, mapping.ToDepositHistoryResponse(p.Converter, history))
}

func (h *portalHandler) withdrawalHistory(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var filter domain.WithdrawalFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		logger.Warn("Failed to bind withdrawal filter", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	p, ok := profileFor(c, h.registry)
	if !ok {
		return
	}
	history, err := p.History.Withdrawals(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err, services.PagePolicy, "Failed to load withdrawal history")
		return
	}
	c.JSON(http.StatusOK, mapping.ToWithdrawalHistoryResponse(p.Converter, history))
}

func (h *portalHandler) profitHistory(c *gin.Context) {
	p, ok := profileFor(c, h.registry)
	if !ok {
		return
	}
	overview, err := p.History.Profits(c.Request.Context())
	if err != nil {
		respondError(c, err, services.ProfitPolicy, "Failed to load profit history")
		return
	}
	c.JSON(http.StatusOK, mapping.ToProfitHistoryResponse(p.Converter, overview))
}

func (h *portalHandler) referrals(c *gin.Context) {
	p, ok := profileFor(c, h.registry)
	if !ok {
		return
	}
	summary, err := p.Account.Referrals(c.Request.Context())
	if err != nil {
		respondError(c, err, services.PagePolicy, "Failed to load referrals")
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (h *portalHandler) getProfile(c *gin.Context) {
	p, ok := profileFor(c, h.registry)
	if !ok {
		return
	}
	profile, err := p.Account.Profile(c.Request.Context())
	if err != nil {
		respondError(c, err, services.PagePolicy, "Failed to load profile")
		return
	}
	c.JSON(http.StatusOK, profile)
}

// updateProfile accepts multipart form data with a username and an optional
// profile_image file.
func (h *portalHandler) updateProfile(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	image, err := readUpload(c, "profile_image", h.maxUploadBytes)
	if err != nil {
		logger.Warn("Failed to read profile image", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	p, ok := profileFor(c, h.registry)
	if !ok {
		return
	}
	profile, err := p.Account.UpdateProfile(c.Request.Context(), dto.UpdateProfileRequest{
		Username:     c.PostForm("username"),
		ProfileImage: image,
	})
	if err != nil {
		respondError(c, err, services.ProfilePolicy, "Failed to update profile")
		return
	}
	c.JSON(http.StatusOK, profile)
}
