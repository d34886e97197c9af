package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"shop-backend/internal/shared"
)

const RequestIDHeader = "X-Request-ID"

// RequestID reuses an incoming X-Request-ID or generates one.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" || len(id) > 128 {
			id = uuid.NewString()
		}
		c.Set(shared.ContextRequestID, id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}
