package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/osa911/apexdrive/internal/logging"
)

// RequestLogger logs every request through logger. Output is controlled by
// LOG_REQUESTS on the logger itself.
func RequestLogger(logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		if raw := c.Request.URL.RawQuery; raw != "" {
			path = path + "?" + raw
		}

		c.Next()

		logger.LogHTTPRequest(
			c.Request.Method,
			path,
			c.ClientIP(),
			c.Writer.Status(),
			c.Writer.Size(),
			time.Since(start).String(),
		)
	}
}
