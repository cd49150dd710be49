package routes

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"shuttlesched/config"
	"shuttlesched/httpapi"
	"shuttlesched/middleware"
)

// RegisterSchedulingRoutes registers the auto-scheduling endpoints: a
// synchronous plan builder, an async enqueue, and a task-status lookup.
func RegisterSchedulingRoutes(r *gin.Engine, b *httpapi.Bundle) {
	group := r.Group("/v1_webapp_auto_scheduling")
	{
		group.POST("", b.Schedule)
		group.POST("/enqueue", b.Enqueue)
		group.GET("/:taskId", b.Status)
	}
}

// RegisterHealthRoutes registers the liveness endpoints.
func RegisterHealthRoutes(r *gin.Engine, b *httpapi.Bundle) {
	r.GET("/", b.Root)
	r.GET("/healthz", b.Healthz)
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, b *httpapi.Bundle, cfg config.Config) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.OriginCheckMiddleware(cfg))
	r.Use(middleware.RateLimitMiddleware())

	RegisterHealthRoutes(r, b)
	RegisterSchedulingRoutes(r, b)
}
