package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/quangdm/finvi/internal/log"
)

// RequestLogger logs one structured line per request.
func RequestLogger(logger *log.Logger) gin.HandlerFunc {
	httpLog := logger.WithComponent(log.ComponentHTTP)
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		httpLog.Info("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration_ms", time.Since(start).Milliseconds(),
			"client_ip", c.ClientIP(),
		)
	}
}
