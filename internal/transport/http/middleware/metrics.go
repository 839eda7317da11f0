package middleware

import (
	"strconv"
	"time"

	"github.com/ErlanBelekov/finance-tracker/internal/metrics"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics records latency and count per route template. Requests that match
// no route share one label so arbitrary paths cannot inflate cardinality.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		labels := prometheus.Labels{
			"method": c.Request.Method,
			"path":   route,
			"status": strconv.Itoa(c.Writer.Status()),
		}
		metrics.HTTPRequestDuration.With(labels).Observe(time.Since(start).Seconds())
		metrics.HTTPRequestsTotal.With(labels).Inc()
	}
}
