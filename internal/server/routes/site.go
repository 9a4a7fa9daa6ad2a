package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/osa911/apexdrive/internal/api/handlers"
)

// SetupSiteRoutes serves /config.js and, when staticDir is set, the site
// files for every other GET request.
func SetupSiteRoutes(router *gin.Engine, siteConfig *handlers.SiteConfigHandler, staticDir string) {
	router.GET("/config.js", siteConfig.Script)

	if staticDir == "" {
		return
	}
	files := http.FileServer(gin.Dir(staticDir, false))
	router.NoRoute(func(c *gin.Context) {
		if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
			c.AbortWithStatus(http.StatusNotFound)
			return
		}
		files.ServeHTTP(c.Writer, c.Request)
	})
}
