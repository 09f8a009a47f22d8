package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/centime/centime-backend/db"
	"github.com/centime/centime-backend/internal/cache"
	"github.com/centime/centime-backend/internal/config"
	"github.com/centime/centime-backend/internal/handler"
	"github.com/centime/centime-backend/internal/middleware"
	"github.com/centime/centime-backend/internal/repository/postgres"
	"github.com/centime/centime-backend/internal/service"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	// Initialize zerolog
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if os.Getenv("ENV") != "production" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Apply schema migrations
	if err := db.RunMigrations(cfg.DatabaseURL); err != nil {
		log.Fatal().Err(err).Msg("Failed to run migrations")
	}

	// Connect to database
	pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer pool.Close()

	if err := pool.Ping(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to ping database")
	}
	log.Info().Msg("Connected to database")

	// Optional dashboard cache
	var dashboardCache *cache.DashboardCache
	if cfg.RedisURL != "" {
		dashboardCache, err = cache.NewDashboardCache(cfg.RedisURL)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to redis")
		}
		defer dashboardCache.Close()
		log.Info().Msg("Connected to redis")
	}

	// Initialize repositories
	accountRepo := postgres.NewAccountRepository(pool)
	bucketRepo := postgres.NewBucketRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	subCategoryRepo := postgres.NewSubCategoryRepository(pool)
	transactionRepo := postgres.NewTransactionRepository(pool)
	budgetRepo := postgres.NewBudgetRepository(pool)
	balanceRepo := postgres.NewMonthlyBalanceRepository(pool)

	// Initialize services. The interfaces hide the nil cache from the
	// reconciler and the dashboard.
	var invalidator service.SnapshotInvalidator
	var payloadCache service.DashboardCache
	if dashboardCache != nil {
		invalidator = dashboardCache
		payloadCache = dashboardCache
	}

	reconcileService := service.NewReconcileService(transactionRepo, budgetRepo, balanceRepo, invalidator)
	balanceService := service.NewBalanceService(accountRepo, bucketRepo, transactionRepo)
	accountService := service.NewAccountService(accountRepo, bucketRepo)
	categoryService := service.NewCategoryService(categoryRepo, subCategoryRepo)
	transactionService := service.NewTransactionService(transactionRepo, accountRepo, categoryRepo, subCategoryRepo, bucketRepo, reconcileService)
	budgetService := service.NewBudgetService(budgetRepo, categoryRepo, transactionRepo, reconcileService)
	dashboardService := service.NewDashboardService(accountRepo, bucketRepo, transactionRepo, balanceService, budgetService, reconcileService, payloadCache)

	// Initialize handlers
	accountHandler := handler.NewAccountHandler(accountService, balanceService)
	categoryHandler := handler.NewCategoryHandler(categoryService)
	transactionHandler := handler.NewTransactionHandler(transactionService)
	budgetHandler := handler.NewBudgetHandler(budgetService)
	monthHandler := handler.NewMonthHandler(reconcileService)
	dashboardHandler := handler.NewDashboardHandler(dashboardService)

	// Create Echo instance
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(echomiddleware.RequestID())

	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	e.Use(echomiddleware.SecureWithConfig(echomiddleware.SecureConfig{
		XSSProtection:         "1; mode=block",
		ContentTypeNosniff:    "nosniff",
		XFrameOptions:         "DENY",
		HSTSMaxAge:            31536000,
		ContentSecurityPolicy: "default-src 'self'",
		ReferrerPolicy:        "strict-origin-when-cross-origin",
	}))

	e.Use(zerologMiddleware())
	e.Use(echomiddleware.Recover())

	rateLimiter := middleware.NewRateLimiter()
	defer rateLimiter.Stop()
	e.Use(middleware.RateLimitMiddleware(rateLimiter))

	handler.RegisterRoutes(e, accountHandler, categoryHandler, transactionHandler, budgetHandler, monthHandler, dashboardHandler)

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.Port).Msg("Starting server")
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}

// zerologMiddleware returns a middleware that logs requests using zerolog
func zerologMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)
			if err != nil {
				c.Error(err)
			}

			req := c.Request()
			res := c.Response()

			log.Info().
				Str("method", req.Method).
				Str("path", req.URL.Path).
				Int("status", res.Status).
				Dur("latency", time.Since(start)).
				Str("request_id", res.Header().Get(echo.HeaderXRequestID)).
				Msg("request")

			return nil
		}
	}
}
