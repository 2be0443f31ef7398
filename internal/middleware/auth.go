package middleware

import (
	"net/http"
	"strings"

	"github.com/sloppysaint/mcqSurgery/internal/services"

	"github.com/gin-gonic/gin"
)

// Auth requires a valid bearer token and loads the full user row into the
// context so downstream premium checks can read subscription state.
func Auth(authService *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			abortUnauthorized(c, "authorization header required")
			return
		}

		userID, err := authService.ValidateToken(token)
		if err != nil {
			abortUnauthorized(c, "invalid or expired token")
			return
		}

		user, err := authService.GetUser(userID)
		if err != nil {
			abortUnauthorized(c, "invalid or expired token")
			return
		}

		c.Set("user", user)
		c.Next()
	}
}

// OptionalAuth loads the user when a valid token is present but lets
// anonymous requests through. Public/premium hybrid routes use it.
func OptionalAuth(authService *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			c.Next()
			return
		}

		userID, err := authService.ValidateToken(token)
		if err != nil {
			c.Next()
			return
		}

		if user, err := authService.GetUser(userID); err == nil {
			c.Set("user", user)
		}
		c.Next()
	}
}

func bearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", false
	}
	return parts[1], true
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"status":  "error",
		"message": message,
	})
}
