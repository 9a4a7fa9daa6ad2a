package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/osa911/apexdrive/internal/api/handlers"
	"github.com/osa911/apexdrive/internal/api/middleware"
)

// SetupContactRoutes configures the contact form endpoint. The page posts
// to /mail.php; /api/v1/contact/submit is the same handler. Every method is
// routed so anything but POST gets the JSON 405 answer.
func SetupContactRoutes(router *gin.Engine, v1 *gin.RouterGroup, contact *handlers.ContactHandler, m *Middleware) {
	chain := []gin.HandlerFunc{
		middleware.LimitRequestBody(middleware.DefaultMaxBodySize),
	}
	if m != nil && m.RateLimiter != nil {
		chain = append(chain, m.RateLimiter.Middleware())
	}
	chain = append(chain, middleware.BindContactForm(), contact.Submit)

	router.Any("/mail.php", chain...)
	v1.Group("/contact").Any("/submit", chain...)
}
