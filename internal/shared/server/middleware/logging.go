package middleware

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"scholarship-intake/internal/shared/metrics"
	"scholarship-intake/internal/shared/telemetry"
)

// Context keys handlers may set to enrich the access log.
const (
	ApplicationIDKey = "applicationId"
	DecisionKey      = "decision"
)

// Logging emits a structured log and HTTP metrics per request.
func Logging() gin.HandlerFunc {
	return func(c *gin.Context) {
		if strings.EqualFold(c.Request.Method, "OPTIONS") {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()
		latency := time.Since(start)
		status := c.Writer.Status()

		metrics.ObserveHTTP(c.Request.Method, c.FullPath(), status, latency)

		telemetry.Info("request.complete", map[string]any{
			"request_id":     RequestIDFromContext(c),
			"method":         c.Request.Method,
			"path":           c.Request.URL.Path,
			"route":          c.FullPath(),
			"status":         status,
			"duration_ms":    float64(latency.Microseconds()) / 1000.0,
			"application_id": c.GetString(ApplicationIDKey),
			"decision":       c.GetString(DecisionKey),
			"client_ip":      c.ClientIP(),
			"user_agent":     c.Request.UserAgent(),
		})
	}
}
