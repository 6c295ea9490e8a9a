package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
)

// userIDKey is the key used to store the acting user's ID in the context.
const userIDKey = contextKey("userID")

// actingUserHeader carries the acting user's identity from the authenticating
// proxy in front of this service.
const actingUserHeader = "X-User-ID"

// ActingUserMiddleware copies the acting user's identity from the request header
// into the request context. Authentication itself happens upstream.
func ActingUserMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetHeader(actingUserHeader)
		if userID == "" {
			userID = "system"
		}
		ctxWithUser := context.WithValue(c.Request.Context(), userIDKey, userID)
		c.Request = c.Request.WithContext(ctxWithUser)
		c.Next()
	}
}

// GetUserIDFromContext retrieves the acting user ID from the Gin context.
// It returns the user ID and a boolean indicating if it was found.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	userIDVal := c.Request.Context().Value(userIDKey)
	if userIDVal == nil {
		return "", false
	}
	userID, ok := userIDVal.(string)
	if !ok {
		return "", false
	}
	return userID, true
}
