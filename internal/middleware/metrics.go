package middleware

import (
	"strconv"
	"time"

	"github.com/SscSPs/internship_placement_app/internal/platform/metrics"
	"github.com/gin-gonic/gin"
)

// Metrics records request counts and latencies keyed by the matched route.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		done := metrics.RequestStarted()
		defer done()

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		metrics.ObserveRequest(c.Request.Method, route, strconv.Itoa(c.Writer.Status()), time.Since(start))
	}
}
