package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"simulado/api/internal/config"
	"simulado/api/internal/models"
	"simulado/api/internal/security"
)

// UserFinder resolves a token subject to a live user record.
type UserFinder interface {
	FindByUsername(ctx context.Context, username string) (models.User, error)
}

// Auth verifies the bearer token and re-resolves the subject against the
// credential store, so a token whose user has vanished is rejected. It is
// read-only: no session rows exist and nothing is touched.
func Auth(cfg *config.AppConfig, users UserFinder) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing_token"})
			return
		}

		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")

		claims, err := security.ParseSessionToken(tokenStr, cfg.Security.JWTSecret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid_token"})
			return
		}

		user, err := users.FindByUsername(c.Request.Context(), claims.Subject)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "user_not_found"})
			return
		}

		c.Set("session_claims", *claims)
		c.Set("current_user", user)

		c.Next()
	}
}
