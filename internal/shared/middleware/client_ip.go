package middleware

import (
	"github.com/gin-gonic/gin"

	"wishlist-backend/internal/shared/utils"
)

const ContextClientIP = "client_ip"

// ClientIPMiddleware extracts the client IP address once per request.
// Register it before handlers that fingerprint visitors.
func ClientIPMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(ContextClientIP, utils.ExtractClientIP(c))
		c.Next()
	}
}

// GetClientIP returns the IP set by ClientIPMiddleware, falling back to extraction.
func GetClientIP(c *gin.Context) string {
	if ip := c.GetString(ContextClientIP); ip != "" {
		return ip
	}
	return utils.ExtractClientIP(c)
}
