package middleware

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/invest_portal/internal/core/ports/services"
	"github.com/SscSPs/invest_portal/internal/dto"
	"github.com/gin-gonic/gin"
)

// SessionResolver finds the session of the request's profile.
type SessionResolver func(c *gin.Context) (portssvc.SessionReaderSvc, error)

const sessionExpiredMessage = "Session expired. Please login again."

// AuthMiddleware rejects requests whose profile has no usable access token.
// Clients are told to go to the login page.
func AuthMiddleware(resolve SessionResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := GetLoggerFromCtx(c.Request.Context())

		session, err := resolve(c)
		if err != nil {
			logger.Warn("Failed to resolve session", slog.String("error", err.Error()))
			c.AbortWithStatusJSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid profile."})
			return
		}

		if !session.Authenticated(c.Request.Context()) {
			logger.Info("Request without valid session", slog.String("path", c.Request.URL.Path))
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Error: sessionExpiredMessage, RedirectToLogin: true})
			return
		}

		c.Next()
	}
}
