package middleware

import (
	"strconv"
	"time"

	"github.com/geodash-org/geodash-backend-go/pkg/metrics"
	"github.com/gin-gonic/gin"
)

// Metrics middleware records request counts and durations per route.
func Metrics(collector *metrics.Collector) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = "unmatched"
		}
		collector.RecordAPIRequest(
			endpoint,
			c.Request.Method,
			strconv.Itoa(c.Writer.Status()),
			time.Since(start),
		)
	}
}
