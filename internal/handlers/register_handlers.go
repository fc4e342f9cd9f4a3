package handlers

import (
	"github.com/SscSPs/invest_portal/internal/middleware"
	"github.com/SscSPs/invest_portal/internal/platform/config"
	"github.com/SscSPs/invest_portal/internal/portal"
	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
)

// Limiters groups the request limiters applied to the API. Nil limiters are skipped.
type Limiters struct {
	// IP runs before a profile is resolved, keyed by client IP.
	IP *limiter.Limiter
	// API is keyed by visitor profile.
	API *limiter.Limiter
	// Login and Refresh guard the login route and the upstream rate refresh, per IP.
	Login   *limiter.Limiter
	Refresh *limiter.Limiter
}

// RegisterRoutes sets up all application routes.
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	registry *portal.Registry,
	limiters Limiters,
) {

	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	setupAPIV1Routes(r, cfg, registry, limiters)
}

// setupAPIV1Routes configures the /api/v1 group. Every request is tied to a
// visitor profile; signed-in pages additionally require a live session.
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	registry *portal.Registry,
	limiters Limiters,
) {
	v1 := r.Group("/api/v1")
	if limiters.IP != nil {
		v1.Use(middleware.GinMiddlewarize(limiters.IP))
	}
	v1.Use(middleware.ProfileMiddleware(cfg.IsProduction))
	if limiters.API != nil {
		v1.Use(middleware.RateLimit(limiters.API))
	}

	registerCurrencyRoutes(v1, registry, limiters.Refresh)
	registerAuthRoutes(v1, registry, limiters.Login)

	authed := v1.Group("", middleware.AuthMiddleware(sessionResolver(registry)))

	registerFlowRoutes(v1, authed, registry, cfg.MaxUploadBytes)
	registerPortalRoutes(authed, registry, cfg.MaxUploadBytes)
}
