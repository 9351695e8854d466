package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rafabene/cwsite-users/internal/domain/ports"
)

// RequestLogger registra uma linha por requisição com status e latência
func RequestLogger(logger ports.Logger) gin.HandlerFunc {
	log := logger.With("component", "http")

	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}

		args := []any{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"route", route,
			"status", c.Writer.Status(),
			"latency_ms", time.Since(start).Milliseconds(),
			"client_ip", c.ClientIP(),
		}

		if c.Writer.Status() >= 500 {
			log.ErrorContext(c.Request.Context(), "request failed", args...)
			return
		}
		log.InfoContext(c.Request.Context(), "request completed", args...)
	}
}
