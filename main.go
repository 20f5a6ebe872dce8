// File: nearbuy/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"nearbuy/config"
	"nearbuy/database"
	listingRepo "nearbuy/database/repository/listing"
	"nearbuy/handlers"
	"nearbuy/middleware"
	"nearbuy/routes"
	"nearbuy/services/analytics"
	"nearbuy/services/discovery"
	"nearbuy/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitRedis()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())
	router.Use(middleware.GeolocationMiddleware())

	// repositories.
	listings := listingRepo.NewMongoListingRepo(utils.GetCacheClient())

	// services.
	analyticsSink := analytics.NewRedisSink(utils.GetAnalyticsClient(), logger)
	sessionTTL := time.Duration(config.AppConfig.SessionTTLMinutes) * time.Minute
	sessionStore := discovery.NewSessionStore(listings, analyticsSink, discovery.TunablesFromConfig(), sessionTTL, logger)

	feedHandler := handlers.NewFeedHandler(sessionStore)

	routes.RegisterRoutes(router, feedHandler)

	utils.StartHealthMonitor([]*redis.Client{utils.GetCacheClient(), utils.GetAnalyticsClient()}, database.MongoClient)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	sessionStore.Shutdown()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
