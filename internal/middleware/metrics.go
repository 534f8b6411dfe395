package middleware

import (
	"time"

	"github.com/SscSPs/currency_exchange_app/internal/monitoring"
	"github.com/gin-gonic/gin"
)

// MetricsMiddleware records request counts and latencies labelled by route template.
func MetricsMiddleware(metrics monitoring.MetricsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = "unmatched"
		}
		metrics.RecordHTTPRequest(c.Request.Method, endpoint, c.Writer.Status(), time.Since(start))
	}
}
