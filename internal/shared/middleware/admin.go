package middleware

import (
	"github.com/gin-gonic/gin"

	"shop-backend/internal/shared"
	"shop-backend/internal/shared/response"
)

// Admin must run after Auth.
func Admin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !HasRole(c, shared.RoleAdmin) {
			response.Forbidden(c, "Access denied: admin role required")
			return
		}
		c.Next()
	}
}
