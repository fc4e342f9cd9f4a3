package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/invest_portal/internal/apperrors"
	portssvc "github.com/SscSPs/invest_portal/internal/core/ports/services"
	"github.com/SscSPs/invest_portal/internal/dto"
	"github.com/SscSPs/invest_portal/internal/middleware"
	"github.com/SscSPs/invest_portal/internal/portal"
	"github.com/gin-gonic/gin"
)

// profileFor resolves the profile of the request. On failure it writes the
// response and returns false.
func profileFor(c *gin.Context, registry *portal.Registry) (*portal.Profile, bool) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	profileID, ok := middleware.GetProfileIDFromContext(c)
	if !ok {
		logger.Error("Profile ID not found in context")
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid profile."})
		return nil, false
	}

	profile, err := registry.Get(c.Request.Context(), profileID)
	if err != nil {
		logger.Warn("Failed to load profile", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid profile."})
		return nil, false
	}
	return profile, true
}

// sessionResolver adapts the registry for middleware.AuthMiddleware.
func sessionResolver(registry *portal.Registry) middleware.SessionResolver {
	return func(c *gin.Context) (portssvc.SessionReaderSvc, error) {
		profileID, ok := middleware.GetProfileIDFromContext(c)
		if !ok {
			return nil, errors.New("profile ID missing")
		}
		profile, err := registry.Get(c.Request.Context(), profileID)
		if err != nil {
			return nil, err
		}
		return profile.Session, nil
	}
}

// statusFor maps service errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, apperrors.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, apperrors.ErrValidation), errors.Is(err, apperrors.ErrUnsupportedCurrency):
		return http.StatusBadRequest
	case errors.Is(err, apperrors.ErrInvalidTransition):
		return http.StatusConflict
	case errors.Is(err, apperrors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperrors.ErrNetwork):
		return http.StatusBadGateway
	}
	if _, ok := apperrors.AsAPIError(err); ok {
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

// respondError logs err and writes the message policy chose for it.
func respondError(c *gin.Context, err error, policy apperrors.MessagePolicy, msg string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		logger.Error(msg, slog.String("error", err.Error()))
	} else {
		logger.Warn(msg, slog.String("error", err.Error()))
	}
	c.JSON(status, dto.ErrorResponse{
		Error:           policy.Describe(err),
		RedirectToLogin: apperrors.IsUnauthorized(err),
	})
}
