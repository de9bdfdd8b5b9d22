package http

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/lil-gargs/portal/internal/log"
)

// RequestLogger creates middleware that logs each request through the
// context logger.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		log.Info(c.Request.Context(), "request handled",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start).String(),
		)
	}
}
