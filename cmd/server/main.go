package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/hooplytics/fantasy-nba/internal/api/handlers"
	"github.com/hooplytics/fantasy-nba/internal/api/middleware"
	"github.com/hooplytics/fantasy-nba/internal/config"
	"github.com/hooplytics/fantasy-nba/internal/mcptools"
	"github.com/hooplytics/fantasy-nba/internal/provider"
	"github.com/hooplytics/fantasy-nba/internal/services"
	"github.com/hooplytics/fantasy-nba/pkg/logger"
)

const version = "1.0.0"

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	// Setup logging
	log := logger.InitLogger("", cfg.IsDevelopment())
	if cfg.IsDevelopment() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to Redis; degrade to a no-op cache when unavailable so the
	// service still answers (every request refetches).
	var cache provider.Cache = provider.NoopCache{}
	opt, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		log.WithError(err).Warn("Invalid Redis URL, running without cache")
	} else {
		redisClient := redis.NewClient(opt)
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.WithError(err).Warn("Redis unavailable, running without cache")
		} else {
			cache = provider.NewRedisCache(redisClient, log)
			defer redisClient.Close()
		}
		cancel()
	}

	// Initialize services
	league := config.NewLeague(cfg)
	espn := provider.NewClient(cfg, cache, log)

	// Keep the snapshot warm with scheduled refreshes
	refreshInterval, err := time.ParseDuration(cfg.RefreshInterval)
	if err != nil {
		log.WithError(err).Warn("Invalid refresh interval, using default 30m")
		refreshInterval = 30 * time.Minute
	}
	refresher := provider.NewRefresher(espn, refreshInterval, log)
	if err := refresher.Start(); err != nil {
		log.WithError(err).Error("Failed to start snapshot refresher")
	}
	defer refresher.Stop()

	analyzer := services.NewAnalyzer(
		espn, league, cache,
		time.Duration(cfg.CacheTTLSeconds)*time.Second,
		logger.WithService("analyzer"),
	)

	// Setup Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.Logger(log))

	handler := handlers.NewHandler(analyzer, log)
	handler.RegisterRoutes(router)

	// Mount the MCP tool server on the same port
	mcpServer := mcptools.NewServer(analyzer, version)
	router.Any("/mcp", gin.WrapH(mcptools.HTTPHandler(mcpServer)))

	log.WithFields(logrus.Fields{
		"league_id":   league.LeagueID,
		"season_year": league.Year,
	}).Info("League configured")

	// Setup server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Infof("Starting server on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Errorf("Server forced to shutdown: %v", err)
	}

	log.Info("Server exited")
}
