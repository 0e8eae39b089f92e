package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/WACPAC/wacpac-virtual-contest/internal/config"
	"github.com/WACPAC/wacpac-virtual-contest/internal/database"
	"github.com/WACPAC/wacpac-virtual-contest/internal/handlers"
	"github.com/WACPAC/wacpac-virtual-contest/internal/middleware"
	"github.com/WACPAC/wacpac-virtual-contest/internal/migrations"
	"github.com/WACPAC/wacpac-virtual-contest/internal/models"
	"github.com/WACPAC/wacpac-virtual-contest/internal/routes"
	"github.com/WACPAC/wacpac-virtual-contest/internal/scraper"
	"github.com/WACPAC/wacpac-virtual-contest/internal/services"
	"github.com/WACPAC/wacpac-virtual-contest/pkg/logger"
	"github.com/gin-gonic/gin"
)

func main() {
	// 0. Load Config & Initialize Logger
	config.LoadConfig()

	env := os.Getenv("GO_ENV")
	if env == "" {
		env = "development"
	}
	logger.Init(env)

	logger.Info().Str("environment", env).Msg("Starting virtual contest backend...")

	if env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// 1. Connect Database & Migrate
	database.Connect()

	if err := database.DB.AutoMigrate(
		&models.Contest{},
		&models.Problem{},
		&models.User{},
		&models.Submission{},
	); err != nil {
		logger.Fatal().Err(err).Msg("Failed to run database migrations")
	}
	if err := migrations.NewMigrator(database.DB).Run(); err != nil {
		logger.Fatal().Err(err).Msg("Failed to run database migrations")
	}
	logger.Info().Msg("Database migrations complete")

	// 2. Wire the AtCoder scraper. The session cookie is optional; without
	// it the scraper reads public pages only.
	atcoder := scraper.NewClient(config.AppConfig.RevelSession)
	handlers.InitScraper(atcoder)
	services.InitScraper(atcoder)

	// 3. Background jobs: contest status sweep + periodic standings refresh
	scheduler, err := services.StartScheduler(config.AppConfig.StatusSweepCron, config.AppConfig.RefreshCron)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to start scheduler")
	}
	defer scheduler.Stop()

	// 4. Setup Router
	r := gin.New()

	r.Use(middleware.LoggingMiddleware())
	r.Use(middleware.ErrorHandlerMiddleware())
	r.Use(gin.Recovery())
	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.GeneralRateLimit())

	api := r.Group("/api")
	routes.RegisterContestRoutes(api)

	r.GET("/health", func(c *gin.Context) {
		dbStatus := "ok"
		sqlDB, err := database.DB.DB()
		if err != nil || sqlDB.Ping() != nil {
			dbStatus = "error"
		}

		status := "ok"
		if dbStatus != "ok" {
			status = "degraded"
		}

		c.JSON(200, gin.H{
			"status": status,
			"checks": gin.H{
				"database": dbStatus,
			},
		})
	})

	// 5. Start Server with graceful shutdown
	port := config.AppConfig.Port
	if port == "" {
		port = "8080"
	}

	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info().Str("port", port).Str("env", env).Msg("Server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("Shutting down server gracefully...")

	// Let an in-flight refresh finish its page walk; it is never cancelled
	// mid-scrape.
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	logger.Info().Msg("Server stopped")
}
