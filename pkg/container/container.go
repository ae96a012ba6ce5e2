package container

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"

	"wishlist-backend/internal/config"
	infraCache "wishlist-backend/internal/infrastructure/cache"
	"wishlist-backend/internal/infrastructure/database"
	"wishlist-backend/internal/infrastructure/queue"
	"wishlist-backend/internal/infrastructure/storage"
	"wishlist-backend/pkg/cache"
	"wishlist-backend/pkg/jwt"
	"wishlist-backend/pkg/metrics"

	"wishlist-backend/internal/domains/category"
	categoryHandler "wishlist-backend/internal/domains/category/handler"
	categoryRepo "wishlist-backend/internal/domains/category/repository"
	categoryService "wishlist-backend/internal/domains/category/service"

	"wishlist-backend/internal/domains/item"
	itemHandler "wishlist-backend/internal/domains/item/handler"
	itemRepo "wishlist-backend/internal/domains/item/repository"
	itemService "wishlist-backend/internal/domains/item/service"

	"wishlist-backend/internal/domains/reaction"
	reactionHandler "wishlist-backend/internal/domains/reaction/handler"
	reactionRepo "wishlist-backend/internal/domains/reaction/repository"
	reactionService "wishlist-backend/internal/domains/reaction/service"

	"wishlist-backend/internal/domains/user"
	userHandler "wishlist-backend/internal/domains/user/handler"
	userRepo "wishlist-backend/internal/domains/user/repository"
	userService "wishlist-backend/internal/domains/user/service"

	"wishlist-backend/internal/domains/wishlist"
	wishlistHandler "wishlist-backend/internal/domains/wishlist/handler"
	wishlistRepo "wishlist-backend/internal/domains/wishlist/repository"
	wishlistService "wishlist-backend/internal/domains/wishlist/service"
)

// ========================================
// CONTAINER STRUCT
// ========================================

// Container chứa TẤT CẢ dependencies của application.
// cmd/api dùng đủ các layer, cmd/worker chỉ dùng services và infrastructure.
type Container struct {
	// ========================================
	// INFRASTRUCTURE LAYER
	// ========================================
	Config     *config.Config
	DB         *database.PostgresDB
	Cache      cache.Cache
	Redis      *infraCache.RedisCache
	Storage    *storage.MinIOStorage
	Images     *storage.ImageProcessor
	Queue      *queue.Client
	JWTManager *jwt.Manager
	Metrics    *metrics.Metrics

	// ========================================
	// REPOSITORY LAYER (DATA ACCESS)
	// ========================================
	UserRepo     user.Repository
	WishlistRepo wishlist.Repository
	CategoryRepo category.CategoryRepository
	ItemRepo     item.Repository
	ReactionRepo reaction.Repository

	// ========================================
	// SERVICE LAYER (BUSINESS LOGIC)
	// ========================================
	UserService     user.Service
	WishlistService wishlist.Service
	CategoryService category.CategoryService
	ItemService     item.Service
	ReactionService reaction.Service

	// ========================================
	// HANDLER LAYER (HTTP)
	// ========================================
	UserHandler     *userHandler.UserHandler
	WishlistHandler *wishlistHandler.WishlistHandler
	CategoryHandler *categoryHandler.CategoryHandler
	ItemHandler     *itemHandler.ItemHandler
	ReactionHandler *reactionHandler.ReactionHandler
}

// ========================================
// CONSTRUCTOR: BUILD CONTAINER
// ========================================

// NewContainer tạo và initialize toàn bộ dependency graph.
// component là prometheus subsystem ("api" hoặc "worker").
//
// Thứ tự initialization:
//  1. Config
//  2. Infrastructure (DB, Redis, MinIO, queue) - phụ thuộc Config
//  3. Repositories - phụ thuộc DB
//  4. Services - phụ thuộc Repositories + Infrastructure
//  5. Handlers - phụ thuộc Services
func NewContainer(component string) (*Container, error) {
	log.Info().Str("component", component).Msg("Initializing DI container")

	c := &Container{}

	// ========================================
	// STEP 1: LOAD CONFIGURATION
	// ========================================
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg
	log.Info().Str("environment", cfg.App.Environment).Msg("Config loaded")

	// ========================================
	// STEP 2: INITIALIZE INFRASTRUCTURE
	// ========================================
	if err := c.initDatabase(); err != nil {
		c.Cleanup()
		return nil, err
	}
	c.initCache()
	if err := c.initStorage(); err != nil {
		c.Cleanup()
		return nil, err
	}

	c.Queue = queue.NewClient(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)
	c.JWTManager = jwt.NewManager(cfg.JWT.Secret, time.Duration(cfg.JWT.AccessTokenExpiry)*time.Minute)
	c.Metrics = metrics.NewMetrics(prometheus.DefaultRegisterer, component)

	// ========================================
	// STEP 3-5: DOMAIN LAYERS
	// ========================================
	c.initRepositories()
	c.initServices()
	c.initHandlers()

	log.Info().Msg("DI container initialized")
	return c, nil
}

// ========================================
// PRIVATE INITIALIZATION METHODS
// ========================================

func (c *Container) initDatabase() error {
	db := database.NewPostgresDB(c.Config.Database.PoolConfig())

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := db.Connect(ctx); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	c.DB = db

	if err := db.HealthCheck(context.Background()); err != nil {
		return fmt.Errorf("database health check failed: %w", err)
	}
	return nil
}

// initCache: Redis không critical. Khi Redis down, dùng MemoryCache để
// public page cache và token revocation vẫn hoạt động trong một process.
func (c *Container) initCache() {
	cfg := c.Config.Redis
	rc := infraCache.NewRedisCache(cfg.Host, cfg.Password, cfg.DB)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rc.Connect(ctx); err != nil {
		log.Warn().Err(err).Msg("Redis unavailable, falling back to in-memory cache")
		_ = rc.Close()
		c.Cache = cache.NewMemoryCache()
		return
	}
	c.Redis = rc
	c.Cache = rc
}

func (c *Container) initStorage() error {
	cfg := c.Config.MinIO

	s, err := storage.NewMinIOStorage(cfg)
	if err != nil {
		return fmt.Errorf("failed to init object storage: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := s.EnsureBuckets(ctx, cfg.ItemBucket, cfg.LogoBucket); err != nil {
		return fmt.Errorf("failed to prepare buckets: %w", err)
	}

	c.Storage = s
	c.Images = storage.NewImageProcessor()
	return nil
}

func (c *Container) initRepositories() {
	pool := c.DB.Pool

	c.UserRepo = userRepo.NewPostgresRepository(pool)
	c.WishlistRepo = wishlistRepo.NewPostgresRepository(pool)
	c.CategoryRepo = categoryRepo.NewPostgresRepository(pool)
	c.ItemRepo = itemRepo.NewPostgresRepository(pool)
	c.ReactionRepo = reactionRepo.NewPostgresRepository(pool)
}

func (c *Container) initServices() {
	buckets := wishlistService.Buckets{
		Items: c.Config.MinIO.ItemBucket,
		Logos: c.Config.MinIO.LogoBucket,
	}

	c.UserService = userService.NewUserService(c.UserRepo, c.JWTManager, c.Cache)

	c.WishlistService = wishlistService.NewWishlistService(
		c.WishlistRepo,
		c.ItemRepo,     // cross-domain: public projection + export
		c.CategoryRepo, // cross-domain
		c.Storage,
		c.Images,
		c.Queue,
		c.Cache,
		buckets,
		c.Config.Cache.PublicWishlistTTL,
	)

	c.CategoryService = categoryService.NewCategoryService(c.CategoryRepo, c.WishlistRepo, c.Cache)

	c.ItemService = itemService.NewItemService(
		c.ItemRepo,
		c.CategoryRepo,
		c.WishlistRepo,
		c.Storage,
		c.Images,
		c.Queue,
		c.Cache,
		buckets.Items,
	)

	c.ReactionService = reactionService.NewReactionService(c.ReactionRepo, c.Cache, c.Metrics)
}

func (c *Container) initHandlers() {
	c.UserHandler = userHandler.NewUserHandler(c.UserService)
	c.WishlistHandler = wishlistHandler.NewWishlistHandler(c.WishlistService)
	c.CategoryHandler = categoryHandler.NewCategoryHandler(c.CategoryService)
	c.ItemHandler = itemHandler.NewItemHandler(c.ItemService)
	c.ReactionHandler = reactionHandler.NewReactionHandler(c.ReactionService)
}

// Cleanup dọn dẹp resources khi shutdown. An toàn khi container chỉ init một phần.
func (c *Container) Cleanup() {
	log.Info().Msg("Cleaning up container resources")

	if c.Queue != nil {
		if err := c.Queue.Close(); err != nil {
			log.Warn().Err(err).Msg("Failed to close queue client")
		}
	}

	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			log.Warn().Err(err).Msg("Failed to close Redis")
		}
	}

	if c.DB != nil {
		c.DB.Close()
	}

	log.Info().Msg("Container cleanup completed")
}
