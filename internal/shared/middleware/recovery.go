package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"library-catalog/internal/shared"
	"library-catalog/internal/shared/response"
)

func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				log.Error().
					Str("request_id", c.GetString(shared.CtxRequestID)).
					Interface("error", err).
					Msg("Panic recovered")

				response.ErrorPage(c, http.StatusInternalServerError, "Something went wrong. Please try again later.")
			}
		}()

		c.Next()
	}
}
