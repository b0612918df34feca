package middleware

import (
	"net/http"
	"strings"

	"treinai_backend/internal/auth"
	"treinai_backend/internal/models"
	"treinai_backend/pkg/contextkeys"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware validates the bearer token and stores the claims in
// the gin context.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header missing or invalid"})
			return
		}

		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := auth.ParseToken(tokenStr)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		c.Set(contextkeys.UserIDKey, claims.UserID)
		c.Set(contextkeys.RoleKey, claims.Role)
		c.Next()
	}
}

// RequireRole rejects callers whose token role does not match.
func RequireRole(required models.AccountRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		roleVal, exists := c.Get(contextkeys.RoleKey)
		if !exists {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Access denied: no role"})
			return
		}

		roleStr, ok := roleVal.(string)
		if !ok || models.AccountRole(roleStr) != required {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Access denied: insufficient permissions"})
			return
		}

		c.Next()
	}
}
