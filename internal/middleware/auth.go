package middleware

import (
	"net/http"
	"strings"

	"hotelparadise/internal/domain"
	jwtsvc "hotelparadise/internal/pkg/jwt"
	"hotelparadise/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

// Auth validates the bearer token and stores the caller identity
// (user_id, role) on the context for downstream handlers.
func Auth(jwt *jwtsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.GetHeader("Authorization")
		if h == "" {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Missing Authorization header")
			c.Abort()
			return
		}

		if !strings.HasPrefix(h, "Bearer ") {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid Authorization header")
			c.Abort()
			return
		}

		tokenStr := strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
		if tokenStr == "" {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Empty token")
			c.Abort()
			return
		}

		claims, err := jwt.ValidateToken(tokenStr)
		if err != nil {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid token")
			c.Abort()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("role", string(claims.Role))

		c.Next()
	}
}

// CallerID returns the authenticated user's id from the context.
func CallerID(c *gin.Context) int64 {
	return c.GetInt64("user_id")
}

// CallerRole returns the authenticated user's role from the context.
func CallerRole(c *gin.Context) domain.Role {
	return domain.Role(c.GetString("role"))
}
