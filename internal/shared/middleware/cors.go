package middleware

import (
	"net/http"

	"github.com/go-chi/cors"

	"wishlist-backend/internal/config"
)

// CORS wraps the whole engine so preflight requests never reach gin's router.
func CORS(cfg config.CORSConfig) func(http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", HeaderRequestID},
		ExposedHeaders:   []string{HeaderRequestID},
		AllowCredentials: true,
		MaxAge:           cfg.MaxAge,
	})
}
