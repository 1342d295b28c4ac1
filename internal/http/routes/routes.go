package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/phambaophuc/image-annotator/internal/http/handlers"
	"github.com/phambaophuc/image-annotator/internal/http/middleware"
	"go.uber.org/zap"
)

type Router struct {
	batchHandler *handlers.BatchHandler
	logger       *zap.Logger
}

func NewRouter(
	batchHandler *handlers.BatchHandler,
	logger *zap.Logger,
) *Router {
	return &Router{
		batchHandler: batchHandler,
		logger:       logger,
	}
}

func (r *Router) SetupRoutes() *gin.Engine {
	router := gin.New()

	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(r.logger))
	router.Use(middleware.ErrorHandler(r.logger))
	router.Use(middleware.SecurityHeaders())

	// API version 1
	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", r.batchHandler.HealthCheck)
		v1.GET("/stats", r.batchHandler.Stats)

		batches := v1.Group("/batches")
		{
			batches.POST("", r.batchHandler.CreateBatch)
			batches.GET("/:id", r.batchHandler.GetBatch)
		}
	}

	router.GET("/", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{
			"status":  "OK",
			"message": "Image annotator is running",
		})
	})

	return router
}
