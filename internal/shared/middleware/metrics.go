package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"foodgram-backend/internal/infrastructure/metrics"
)

// PrometheusMetrics records request count, latency and in-flight requests.
// Endpoints are labelled by route template so ids do not explode cardinality.
func PrometheusMetrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		metrics.TrackActiveRequest(true)
		defer metrics.TrackActiveRequest(false)

		start := time.Now()
		c.Next()

		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = "unmatched"
		}
		metrics.RecordAPIRequest(
			c.Request.Method,
			endpoint,
			strconv.Itoa(c.Writer.Status()),
			time.Since(start),
		)
	}
}
