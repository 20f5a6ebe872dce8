package routes

import (
	"time"

	"nearbuy/handlers"
	"nearbuy/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterRoutes wires the discovery feed endpoints onto the router.
func RegisterRoutes(r *gin.Engine, feed *handlers.FeedHandler) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", handlers.SessionIDHeader},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", handlers.HealthHandler)

	api := r.Group("/api/feed")
	api.Use(middleware.OptionalViewerMiddleware())
	{
		api.POST("/sessions", feed.CreateSessionHandler)
		api.GET("/view", feed.GetViewHandler)
		api.PATCH("/filters", feed.SetFilterHandler)
		api.DELETE("/filters", feed.ResetFiltersHandler)
		api.PUT("/query", feed.SetQueryHandler)
		api.DELETE("/query", feed.ClearQueryHandler)
		api.POST("/suggestion", feed.SelectSuggestionHandler)
		api.POST("/load-more", feed.LoadMoreHandler)
		api.POST("/retry", feed.RetryHandler)
		api.PUT("/location", feed.UpdateLocationHandler)
		api.DELETE("/sessions", feed.CloseSessionHandler)
	}
}
