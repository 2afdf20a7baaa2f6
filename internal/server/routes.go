package server

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"searchbrief/internal/config"
	"searchbrief/internal/handler"
	"searchbrief/internal/middleware"
)

// RegisterRoutes sets up all HTTP routes on the Gin engine.
func RegisterRoutes(r *gin.Engine, cfg *config.Config, deps Deps, logger *zap.Logger) {
	healthHandler := handler.NewHealthHandler()
	indexHandler := handler.NewIndexHandler(cfg.UI.Suggestions, deps.ModelName)
	queryHandler := handler.NewQueryHandler(deps.Pipeline, deps.Animator, logger)

	// Public page + health (no CORS needed — same origin).
	r.GET("/", indexHandler.Index)
	r.GET("/healthz", healthHandler.Healthz)

	api := r.Group("/api/v1")
	api.Use(middleware.CORS(cfg.CORS.AllowedOrigins))
	{
		api.POST("/query", queryHandler.Submit)
		api.GET("/query/stream", queryHandler.Stream)
		api.GET("/state", queryHandler.State)
	}
}
