package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ManishHQ/shoq-ai-sub000/internal/infrastructure/adapter/metrics"
)

// Metrics middleware records request counts and latency per route template.
// The route template keeps cardinality bounded; raw paths with ids never
// become label values.
func Metrics(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		method := c.Request.Method
		status := strconv.Itoa(c.Writer.Status())

		m.HTTPRequests.WithLabelValues(route, method, status).Inc()
		m.HTTPLatency.WithLabelValues(route, method).Observe(time.Since(start).Seconds())
	}
}
