package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/osa911/apexdrive/internal/api/handlers"
)

// SetupHealthRoutes configures health check and metrics endpoints
func SetupHealthRoutes(router *gin.Engine, health *handlers.HealthHandler, metrics http.Handler) {
	router.GET("/health", health.Check)
	if metrics != nil {
		router.GET("/metrics", gin.WrapH(metrics))
	}
}
