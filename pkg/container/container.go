package container

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog/log"

	"book-catalog-backend/internal/config"
	infraCache "book-catalog-backend/internal/infrastructure/cache"
	"book-catalog-backend/internal/infrastructure/database"
	"book-catalog-backend/pkg/jwt"
	"book-catalog-backend/pkg/password"

	// User domain
	"book-catalog-backend/internal/domains/user"
	userHandler "book-catalog-backend/internal/domains/user/handler"
	userRepo "book-catalog-backend/internal/domains/user/repository"
	userService "book-catalog-backend/internal/domains/user/service"

	// Book domain
	bookHandler "book-catalog-backend/internal/domains/book/handler"
	bookRepo "book-catalog-backend/internal/domains/book/repository"
	bookService "book-catalog-backend/internal/domains/book/service"
	"book-catalog-backend/internal/shared/middleware"
)

// ========================================
// CONTAINER STRUCT
// ========================================

// Container chứa TẤT CẢ dependencies của application
// Thứ tự: Config → Infrastructure → Repositories → Services → Handlers
type Container struct {
	// INFRASTRUCTURE LAYER
	Config   *config.Config
	DB       *database.PostgresDB
	Redis    *infraCache.RedisCache // nil when REDIS_ENABLED=false
	Hasher   *password.Hasher
	Tokens   *jwt.Manager
	Registry *prometheus.Registry
	Metrics  *middleware.Metrics

	// REPOSITORY LAYER
	UserRepo user.Repository
	BookRepo bookRepo.RepositoryInterface

	// SERVICE LAYER
	UserService user.Service
	BookService bookService.ServiceInterface

	// HANDLER LAYER
	UserHandler *userHandler.UserHandler
	BookHandler *bookHandler.Handler
}

// NewContainer connects the infrastructure described by cfg and wires every layer on top.
func NewContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	log.Info().Msg("🔧 Initializing DI Container...")

	c := &Container{Config: cfg}

	// STEP 1: DATABASE
	dbConfig, err := config.LoadDatabaseConfig(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to load database config: %w", err)
	}

	db := database.NewPostgresDB(dbConfig)

	connectCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := db.Connect(connectCtx); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	c.DB = db
	log.Info().Msg("✅ Database connected")

	// STEP 2: CACHE (optional)
	if cfg.Redis.Enabled {
		rc := infraCache.NewRedisCache(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)
		if err := rc.Connect(ctx); err != nil {
			// Redis failure không critical - reads go straight to PostgreSQL
			log.Warn().Err(err).Msg("⚠️  Redis connection failed (non-critical)")
			_ = rc.Close()
		} else {
			c.Redis = rc
			log.Info().Msg("✅ Redis connected")
		}
	}

	c.Wire()

	log.Info().Msg("🎉 DI Container initialized successfully")
	return c, nil
}

// Wire builds the primitives, repositories, services and handlers from
// whatever infrastructure is already set on c.
func (c *Container) Wire() {
	cfg := c.Config

	// Primitives
	c.Hasher = password.NewHasher(cfg.Hash.Cost, cfg.Hash.Concurrency)
	c.Tokens = jwt.NewManager(cfg.JWT.Secret, cfg.JWT.TokenExpiry)

	// Metrics
	c.Registry = prometheus.NewRegistry()
	c.Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	c.Metrics = middleware.NewMetrics(c.Registry)

	c.initRepositories()
	c.initServices()
	c.initHandlers()
}

func (c *Container) initRepositories() {
	pool := c.DB.Pool

	c.UserRepo = userRepo.NewPostgresRepository(pool)

	c.BookRepo = bookRepo.NewPostgresRepository(pool)
	if c.Redis != nil {
		c.BookRepo = bookRepo.NewCachedRepository(c.BookRepo, c.Redis, c.Config.Redis.BookTTL)
	}
}

func (c *Container) initServices() {
	c.UserService = userService.NewUserService(c.UserRepo, c.Hasher, c.Tokens)
	c.BookService = bookService.NewService(c.BookRepo)
}

func (c *Container) initHandlers() {
	debug := c.Config.App.IsDevelopment()

	c.UserHandler = userHandler.NewUserHandler(c.UserService, debug)
	c.BookHandler = bookHandler.NewHandler(c.BookService, debug)
}

// Cleanup dọn dẹp resources khi shutdown
func (c *Container) Cleanup() {
	log.Info().Msg("🧹 Cleaning up container resources...")

	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			log.Warn().Err(err).Msg("⚠️  Failed to close database")
		}
	}

	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			log.Warn().Err(err).Msg("⚠️  Failed to close Redis")
		}
	}

	log.Info().Msg("✅ Container cleanup completed")
}
