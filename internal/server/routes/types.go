package routes

import (
	"net/http"

	"github.com/osa911/apexdrive/internal/api/handlers"
	"github.com/osa911/apexdrive/internal/api/middleware"
)

// Handlers contains all the route handlers
type Handlers struct {
	Contact    *handlers.ContactHandler
	Catalog    *handlers.CatalogHandler
	Health     *handlers.HealthHandler
	SiteConfig *handlers.SiteConfigHandler
	// Metrics serves the Prometheus registry; nil disables /metrics.
	Metrics http.Handler
}

// Middleware contains the middleware shared across route groups
type Middleware struct {
	RateLimiter *middleware.RateLimiter
}
