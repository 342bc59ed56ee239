package middleware

import (
	"time"

	"github.com/carsapp/cars/internal/metrics"
	"github.com/gin-gonic/gin"
)

// unmatchedPath labels requests that hit no route so paths stay low cardinality
const unmatchedPath = "unmatched"

// MetricsMiddleware records request count and latency per route template
func MetricsMiddleware(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		m.IncInFlight()
		defer m.DecInFlight()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = unmatchedPath
		}
		m.RecordHTTPRequest(c.Request.Method, path, c.Writer.Status(), time.Since(start))
	}
}
