package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"property-expert/internal/auth"
)

// RequireAuth validates the bearer token and attaches the caller's identity
// to the request context.
func RequireAuth(authService *auth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing authorization header"})
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization format, use 'Bearer <token>'"})
			c.Abort()
			return
		}

		userID, email, err := authService.ValidateToken(parts[1])
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			c.Abort()
			return
		}

		c.Set("userID", userID)
		c.Set("userEmail", email)
		c.Next()
	}
}

// RequireAdmin gates admin routes on the configured email allowlist. The
// denial is distinct from an authentication failure so clients can redirect
// non-admin users away from the dashboard.
func RequireAdmin(authService *auth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		email, exists := c.Get("userEmail")
		if !exists {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "access denied, admin privileges required"})
			return
		}

		if !authService.IsAdmin(email.(string)) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "access denied, admin privileges required"})
			return
		}

		c.Next()
	}
}
