package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"wishlist-backend/internal/shared/response"
	"wishlist-backend/pkg/cache"
	"wishlist-backend/pkg/jwt"
	"wishlist-backend/pkg/logger"
)

const (
	ContextUserID = "userID"
	ContextClaims = "claims"
)

// AuthMiddleware rejects requests without a valid, non-revoked bearer token.
func AuthMiddleware(manager *jwt.Manager, revoked cache.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, userID, status, msg := authenticate(c, manager, revoked)
		if status != 0 {
			response.Error(c, status, msg, nil)
			c.Abort()
			return
		}

		c.Set(ContextUserID, userID)
		c.Set(ContextClaims, claims)
		c.Next()
	}
}

// OptionalAuthMiddleware sets the user when a valid token is present and lets
// anonymous requests through. A bad token is treated as anonymous.
func OptionalAuthMiddleware(manager *jwt.Manager, revoked cache.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.Next()
			return
		}

		claims, userID, status, _ := authenticate(c, manager, revoked)
		if status == 0 {
			c.Set(ContextUserID, userID)
			c.Set(ContextClaims, claims)
		}
		c.Next()
	}
}

func authenticate(c *gin.Context, manager *jwt.Manager, revoked cache.Cache) (*jwt.Claims, uuid.UUID, int, string) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return nil, uuid.Nil, http.StatusUnauthorized, "missing authorization header"
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return nil, uuid.Nil, http.StatusUnauthorized, "invalid authorization header format"
	}

	claims, err := manager.ValidateAccessToken(strings.TrimSpace(parts[1]))
	if err != nil {
		return nil, uuid.Nil, http.StatusUnauthorized, "invalid token"
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, uuid.Nil, http.StatusUnauthorized, "invalid user ID in token"
	}

	if revoked != nil {
		gone, err := revoked.Exists(c.Request.Context(), jwt.RevocationKey(claims.ID))
		if err != nil {
			// Redis down: accept the token rather than lock every user out.
			logger.Error("token revocation lookup failed", err)
		} else if gone {
			return nil, uuid.Nil, http.StatusUnauthorized, "token has been revoked"
		}
	}

	return claims, userID, 0, ""
}

// GetUserID returns the authenticated user set by the auth middlewares.
func GetUserID(c *gin.Context) (uuid.UUID, bool) {
	v, ok := c.Get(ContextUserID)
	if !ok {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}

// GetClaims returns the parsed token claims, nil for anonymous requests.
func GetClaims(c *gin.Context) *jwt.Claims {
	v, ok := c.Get(ContextClaims)
	if !ok {
		return nil
	}
	claims, _ := v.(*jwt.Claims)
	return claims
}
