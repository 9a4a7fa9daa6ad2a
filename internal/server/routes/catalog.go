package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/osa911/apexdrive/internal/api/handlers"
	"github.com/osa911/apexdrive/internal/api/middleware"
)

// SetupCatalogRoutes configures the read-only fleet API
func SetupCatalogRoutes(v1 *gin.RouterGroup, catalog *handlers.CatalogHandler) {
	v1.GET("/cars", middleware.ValidateCarsQuery(), catalog.ListCars)
}
