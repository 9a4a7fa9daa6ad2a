package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/osa911/apexdrive/internal/api/middleware"
	"github.com/osa911/apexdrive/internal/logging"
	basemw "github.com/osa911/apexdrive/internal/middleware"
	"github.com/osa911/apexdrive/internal/telemetry"
)

// GlobalOptions configures the middleware applied to every route
type GlobalOptions struct {
	AllowedOrigins []string
	Production     bool
	SessionTTL     time.Duration
}

// Setup configures all route groups
func Setup(router *gin.Engine, h *Handlers, m *Middleware, staticDir string) {
	logger := logging.GetGlobalLogger()

	// Create base API v1 group
	v1 := router.Group("/api/v1")

	SetupHealthRoutes(router, h.Health, h.Metrics)

	// Contact routes (public)
	SetupContactRoutes(router, v1, h.Contact, m)

	SetupCatalogRoutes(v1, h.Catalog)

	// Site assets, /config.js first so it wins over a file on disk
	SetupSiteRoutes(router, h.SiteConfig, staticDir)

	logger.Info("All routes have been set up successfully")
}

// SetupGlobalMiddleware configures middleware that applies to all routes
func SetupGlobalMiddleware(router *gin.Engine, logger *logging.Logger, opts GlobalOptions) {
	router.Use(basemw.Recovery(logger))
	router.Use(basemw.RequestID())
	router.Use(otelgin.Middleware(telemetry.ServiceName))
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.CORS(opts.AllowedOrigins, opts.Production))
	router.Use(middleware.SecurityHeaders(opts.Production))
	router.Use(middleware.SessionCookie(opts.SessionTTL, opts.Production))
}
