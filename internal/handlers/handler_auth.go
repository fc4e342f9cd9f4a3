package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/invest_portal/internal/apperrors"
	"github.com/SscSPs/invest_portal/internal/core/flows"
	"github.com/SscSPs/invest_portal/internal/dto"
	"github.com/SscSPs/invest_portal/internal/middleware"
	"github.com/SscSPs/invest_portal/internal/portal"
	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
)

// authHandler handles login and logout of a profile.
type authHandler struct {
	registry *portal.Registry
}

// registerAuthRoutes sets up the routes for authentication. loginLimiter, when
// set, throttles login attempts per client IP.
func registerAuthRoutes(rg *gin.RouterGroup, registry *portal.Registry, loginLimiter *limiter.Limiter) {
	h := &authHandler{registry: registry}

	login := []gin.HandlerFunc{h.login}
	if loginLimiter != nil {
		login = append([]gin.HandlerFunc{middleware.GinMiddlewarize(loginLimiter)}, login...)
	}

	auth := rg.Group("/auth")
	{
		auth.POST("/login", login...)
		auth.POST("/logout", h.logout)
		auth.GET("/session", h.session)
	}
}

func (h *authHandler) login(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var form dto.LoginForm
	if err := c.ShouldBindJSON(&form); err != nil {
		logger.Warn("Failed to bind JSON for Login", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Email or phone and password are required."})
		return
	}

	profile, ok := profileFor(c, h.registry)
	if !ok {
		return
	}

	if err := profile.Session.Login(c.Request.Context(), form); err != nil {
		// a 401 here means wrong credentials, so no redirect is signalled
		logger.Warn("Login failed", slog.String("error", err.Error()))
		c.JSON(statusFor(err), dto.ErrorResponse{Error: flows.LoginPolicy.Describe(err)})
		return
	}

	c.JSON(http.StatusOK, gin.H{"authenticated": true})
}

func (h *authHandler) logout(c *gin.Context) {
	profile, ok := profileFor(c, h.registry)
	if !ok {
		return
	}
	if err := profile.Session.Logout(c.Request.Context()); err != nil {
		respondError(c, err, apperrors.DefaultPolicy, "Logout failed")
		return
	}
	c.JSON(http.StatusOK, gin.H{"authenticated": false})
}

func (h *authHandler) session(c *gin.Context) {
	profile, ok := profileFor(c, h.registry)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"authenticated": profile.Session.Authenticated(c.Request.Context())})
}
