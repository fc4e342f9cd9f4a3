package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ProfileHeader and ProfileCookie carry the visitor's profile ID.
const (
	ProfileHeader = "X-Profile-ID"
	ProfileCookie = "portal_profile"
)

const profileCookieMaxAge = 365 * 24 * time.Hour

// ProfileMiddleware identifies the visitor. The header wins over the cookie;
// a missing or malformed ID is replaced by a new one that is sent back in both.
func ProfileMiddleware(secureCookie bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		profileID := c.GetHeader(ProfileHeader)
		if profileID == "" {
			profileID, _ = c.Cookie(ProfileCookie)
		}
		if _, err := uuid.Parse(profileID); err != nil {
			profileID = uuid.NewString()
			GetLoggerFromCtx(c.Request.Context()).Debug("Issued new profile", slog.String("profile_id", profileID))
		}

		c.Header(ProfileHeader, profileID)
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(ProfileCookie, profileID, int(profileCookieMaxAge.Seconds()), "/", "", secureCookie, true)

		logger := GetLoggerFromCtx(c.Request.Context()).With(slog.String("profile_id", profileID))
		ctx := context.WithValue(c.Request.Context(), profileIDKey, profileID)
		c.Set(string(profileIDKey), profileID)
		c.Set(string(loggerKey), logger)
		c.Request = c.Request.WithContext(WithLogger(ctx, logger))

		c.Next()
	}
}
