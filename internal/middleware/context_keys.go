package middleware

import "github.com/gin-gonic/gin"

// profileIDKey is the key used to store the visitor's profile ID in the Gin context.
// Using a custom type prevents collisions.
const profileIDKey = contextKey("profileID")

// GetProfileIDFromContext retrieves the profile ID set by ProfileMiddleware.
// It returns the profile ID and a boolean indicating if it was found.
func GetProfileIDFromContext(c *gin.Context) (string, bool) {
	profileIDVal, exists := c.Get(string(profileIDKey))
	if !exists {
		// check in the request context as well
		if id, ok := c.Request.Context().Value(profileIDKey).(string); ok && id != "" {
			return id, true
		}
		return "", false
	}

	profileID, ok := profileIDVal.(string)
	if !ok || profileID == "" {
		return "", false
	}
	return profileID, true
}
