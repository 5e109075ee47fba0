package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jtheoden/papuenvios-sub001/internal/domain"
	"github.com/jtheoden/papuenvios-sub001/internal/repository"
)

const AdminContextKey = "admin"

// AuthMiddleware authenticates requests using an admin API key
func AuthMiddleware(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing authorization header"})
			c.Abort()
			return
		}

		// Extract Bearer token
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization header format"})
			c.Abort()
			return
		}

		apiKey := strings.TrimSpace(parts[1])
		if apiKey == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing API key"})
			c.Abort()
			return
		}

		user, err := repos.AdminUser.GetByAPIKey(c.Request.Context(), apiKey)
		if err != nil {
			logger.Warn("Failed to authenticate admin", zap.Error(err))
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid API key"})
			c.Abort()
			return
		}

		c.Set(AdminContextKey, user)
		c.Next()
	}
}

// GetAdminFromContext retrieves the authenticated admin from the Gin context
func GetAdminFromContext(c *gin.Context) (*domain.AdminUser, bool) {
	user, exists := c.Get(AdminContextKey)
	if !exists {
		return nil, false
	}

	u, ok := user.(*domain.AdminUser)
	return u, ok
}

// ActorFromContext builds the workflow actor for the authenticated admin
func ActorFromContext(c *gin.Context) (domain.Actor, bool) {
	user, ok := GetAdminFromContext(c)
	if !ok {
		return domain.Actor{}, false
	}
	return domain.Actor{ID: user.ID, IsAdmin: user.IsAdmin}, true
}
