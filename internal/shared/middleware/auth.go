package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"shop-backend/internal/shared"
	"shop-backend/internal/shared/response"
	"shop-backend/pkg/jwt"
)

// TokenValidator is satisfied by *jwt.Manager.
type TokenValidator interface {
	ValidateToken(token string) (*jwt.Claims, error)
}

// Auth requires a valid "Bearer <token>" header and stores the user id and
// roles in the gin context.
func Auth(tokens TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, "Missing authorization header")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
			response.Unauthorized(c, "Invalid authorization header format")
			return
		}

		claims, err := tokens.ValidateToken(parts[1])
		if err != nil {
			response.Unauthorized(c, "Invalid or expired token")
			return
		}

		c.Set(shared.ContextUserID, claims.UserID)
		c.Set(shared.ContextRoles, claims.Roles)
		c.Next()
	}
}

// UserID returns the authenticated user's id.
func UserID(c *gin.Context) (int64, bool) {
	v, ok := c.Get(shared.ContextUserID)
	if !ok {
		return 0, false
	}
	id, ok := v.(int64)
	return id, ok
}

// HasRole reports whether the authenticated user holds role.
func HasRole(c *gin.Context, role string) bool {
	v, ok := c.Get(shared.ContextRoles)
	if !ok {
		return false
	}
	roles, _ := v.([]string)
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}
