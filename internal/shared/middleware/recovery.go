package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"shop-backend/internal/shared"
	"shop-backend/internal/shared/response"
)

func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				log.Error().
					Str("request_id", c.GetString(shared.ContextRequestID)).
					Interface("error", err).
					Msg("Panic recovered")

				response.InternalServerError(c, "An unexpected error occurred")
			}
		}()

		c.Next()
	}
}
