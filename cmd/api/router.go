package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"wishlist-backend/internal/infrastructure/database"
	"wishlist-backend/internal/shared/middleware"
	"wishlist-backend/pkg/container"
)

func SetupRouter(c *container.Container, schemaDB *sql.DB) *gin.Engine {
	router := gin.New()

	// Global middlewares
	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.Metrics(c.Metrics),
		middleware.ClientIPMiddleware(),
	)

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	auth := middleware.AuthMiddleware(c.JWTManager, c.Cache)
	optionalAuth := middleware.OptionalAuthMiddleware(c.JWTManager, c.Cache)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthHandler(c.Config.App.Version, healthProbes(c, schemaDB)))

		setupAuthRoutes(v1, c, auth)
		setupUserRoutes(v1, c, auth)
		setupWishlistRoutes(v1, c, auth)
		setupCategoryRoutes(v1, c, auth)
		setupItemRoutes(v1, c, auth)
		setupPublicRoutes(v1, c, optionalAuth)
	}

	return router
}

// ========================================
// AUTH ROUTES
// ========================================
func setupAuthRoutes(v1 *gin.RouterGroup, c *container.Container, auth gin.HandlerFunc) {
	group := v1.Group("/auth")
	{
		group.POST("/signup", c.UserHandler.SignUp)
		group.POST("/signin", c.UserHandler.SignIn)
		group.POST("/signout", auth, c.UserHandler.SignOut)
	}
}

// ========================================
// USER ROUTES
// ========================================
func setupUserRoutes(v1 *gin.RouterGroup, c *container.Container, auth gin.HandlerFunc) {
	users := v1.Group("/users")
	users.Use(auth)
	{
		users.GET("/me", c.UserHandler.Me)
	}
}

// ========================================
// WISHLIST ROUTES (owner)
// ========================================
func setupWishlistRoutes(v1 *gin.RouterGroup, c *container.Container, auth gin.HandlerFunc) {
	wishlists := v1.Group("/wishlists")
	wishlists.Use(auth)
	{
		wishlists.GET("", c.WishlistHandler.List)
		wishlists.POST("", c.WishlistHandler.Create)
		wishlists.GET("/:id", c.WishlistHandler.Get)
		wishlists.PATCH("/:id", c.WishlistHandler.Update)
		wishlists.DELETE("/:id", c.WishlistHandler.Delete)
		wishlists.POST("/:id/logo", c.WishlistHandler.UploadLogo)
		wishlists.GET("/:id/export", c.WishlistHandler.Export)

		// Nested collections
		wishlists.GET("/:id/categories", c.CategoryHandler.List)
		wishlists.POST("/:id/categories", c.CategoryHandler.Create)
		wishlists.GET("/:id/items", c.ItemHandler.List)
		wishlists.POST("/:id/items", c.ItemHandler.Create)
		wishlists.POST("/:id/uploads/item-image", c.ItemHandler.UploadImage)
	}
}

// ========================================
// CATEGORY ROUTES
// ========================================
func setupCategoryRoutes(v1 *gin.RouterGroup, c *container.Container, auth gin.HandlerFunc) {
	categories := v1.Group("/categories")
	categories.Use(auth)
	{
		categories.PATCH("/:categoryId", c.CategoryHandler.Update)
		categories.DELETE("/:categoryId", c.CategoryHandler.Delete)
	}
}

// ========================================
// ITEM ROUTES
// ========================================
func setupItemRoutes(v1 *gin.RouterGroup, c *container.Container, auth gin.HandlerFunc) {
	items := v1.Group("/items")
	items.Use(auth)
	{
		items.PATCH("/:itemId", c.ItemHandler.Update)
		items.DELETE("/:itemId", c.ItemHandler.Delete)
	}
}

// ========================================
// PUBLIC ROUTES (visitor)
// ========================================
// Owner đã đăng nhập vẫn xem được wishlist private của mình qua slug.
func setupPublicRoutes(v1 *gin.RouterGroup, c *container.Container, optionalAuth gin.HandlerFunc) {
	public := v1.Group("/public")
	{
		public.GET("/wishlists/:slug", optionalAuth, c.WishlistHandler.GetPublic)
		public.POST("/items/:itemId/reactions", c.ReactionHandler.React)
	}
}

// ========================================
// HEALTH CHECK
// ========================================

type probe struct {
	name  string
	check func(ctx context.Context) (string, error)
}

func healthProbes(c *container.Container, schemaDB *sql.DB) []probe {
	return []probe{
		{name: "database", check: func(ctx context.Context) (string, error) {
			return "ok", c.DB.HealthCheck(ctx)
		}},
		{name: "cache", check: func(ctx context.Context) (string, error) {
			return "ok", c.Cache.Ping(ctx)
		}},
		{name: "schema", check: func(ctx context.Context) (string, error) {
			version, dirty, err := database.SchemaVersion(ctx, schemaDB)
			if err != nil {
				return "", err
			}
			if dirty {
				return "", fmt.Errorf("version %d is dirty", version)
			}
			return fmt.Sprintf("version %d", version), nil
		}},
	}
}

// healthHandler reports 200 when every probe passes and 503 otherwise.
func healthHandler(version string, probes []probe) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		status := http.StatusOK
		services := gin.H{}
		for _, p := range probes {
			detail, err := p.check(ctx)
			if err != nil {
				status = http.StatusServiceUnavailable
				services[p.name] = fmt.Sprintf("error: %v", err)
				continue
			}
			services[p.name] = detail
		}

		overall := "ok"
		if status != http.StatusOK {
			overall = "degraded"
		}

		c.JSON(status, gin.H{
			"status":    overall,
			"timestamp": time.Now().Format(time.RFC3339),
			"version":   version,
			"services":  services,
		})
	}
}
