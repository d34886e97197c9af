package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"shop-backend/internal/infrastructure/metrics"
)

// Metrics records request counts and latency per route template, so
// /api/users/1 and /api/users/2 share one series.
func Metrics(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		method := c.Request.Method

		inflight := m.HTTPInflight.WithLabelValues(method, path)
		inflight.Inc()
		start := time.Now()

		c.Next()

		inflight.Dec()
		m.HTTPRequestDuration.WithLabelValues(method, path).Observe(time.Since(start).Seconds())
		m.HTTPRequestsTotal.WithLabelValues(method, path, strconv.Itoa(c.Writer.Status())).Inc()
	}
}
