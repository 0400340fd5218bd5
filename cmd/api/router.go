package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"book-catalog-backend/internal/shared/middleware"
	"book-catalog-backend/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	// Global middlewares
	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.CORS(c.Config.App.CORSOrigins),
		c.Metrics.Handler(),
	)

	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(c.Registry, promhttp.HandlerOpts{})))

	api := router.Group("/api")
	{
		api.GET("/health", healthCheckHandler(c))

		setupAuthRoutes(api, c)
		setupBookRoutes(api, c)
	}

	return router
}

// ========================================
// AUTH ROUTES
// ========================================
func setupAuthRoutes(api *gin.RouterGroup, c *container.Container) {
	auth := api.Group("/auth")
	{
		auth.POST("/register", c.UserHandler.Register)
		auth.POST("/login", c.UserHandler.Login)
	}
}

// ========================================
// BOOK ROUTES
// ========================================
func setupBookRoutes(api *gin.RouterGroup, c *container.Container) {
	books := api.Group("/books")
	{
		books.POST("/create", c.BookHandler.CreateBook)
		books.GET("", c.BookHandler.ListBooks)
		books.GET("/search", c.BookHandler.SearchBooks)
		books.GET("/category/:category", c.BookHandler.BooksByCategory)
		books.GET("/:id", c.BookHandler.GetBook)
		books.PUT("/:id", c.BookHandler.UpdateBook)
		books.DELETE("/:id", c.BookHandler.DeleteBook)
	}
}

// ========================================
// HEALTH CHECK
// ========================================

type pinger interface {
	Ping(ctx context.Context) error
}

func healthCheckHandler(appCtx *container.Container) gin.HandlerFunc {
	// typed nil pointers must not reach the interface
	var db, redis pinger
	if appCtx.DB != nil {
		db = appCtx.DB
	}
	if appCtx.Redis != nil {
		redis = appCtx.Redis
	}
	return healthCheck(appCtx.Config.App.Version, db, redis)
}

// healthCheck reports 503 only when PostgreSQL is unreachable; Redis is optional.
// Ping errors are logged, the body only says "error".
func healthCheck(version string, db, redis pinger) gin.HandlerFunc {
	return func(c *gin.Context) {
		health := gin.H{
			"status":    "ok",
			"timestamp": time.Now().Format(time.RFC3339),
			"version":   version,
		}

		// Check database
		dbStatus := "ok"
		if db == nil {
			dbStatus = "disconnected"
		} else {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()

			if err := db.Ping(ctx); err != nil {
				log.Error().Err(err).Msg("health check: database ping failed")
				dbStatus = "error"
			}
		}

		// Check redis
		redisStatus := "disabled"
		if redis != nil {
			redisStatus = "ok"
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()

			if err := redis.Ping(ctx); err != nil {
				log.Warn().Err(err).Msg("health check: redis ping failed")
				redisStatus = "error"
				health["status"] = "degraded"
			}
		}

		health["services"] = gin.H{
			"database": dbStatus,
			"redis":    redisStatus,
		}

		statusCode := http.StatusOK
		if dbStatus != "ok" {
			health["status"] = "unavailable"
			statusCode = http.StatusServiceUnavailable
		}

		c.JSON(statusCode, health)
	}
}
