package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"wishlist-backend/internal/shared/response"
)

// Recovery turns a handler panic into the standard 500 envelope.
// Nếu handler đã ghi response thì chỉ log, không ghi đè.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}

			log.Error().
				Str("request_id", c.GetString(ContextRequestID)).
				Str("method", c.Request.Method).
				Str("path", c.FullPath()).
				Interface("panic", rec).
				Bytes("stack", debug.Stack()).
				Msg("Panic recovered")

			if !c.Writer.Written() {
				response.Error(c, http.StatusInternalServerError, "Internal server error", nil)
			}
			c.Abort()
		}()

		c.Next()
	}
}
