package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"hotel-reservations/metrics"
)

// Metrics records request latency labelled by the matched route template,
// so /api/reservations/42 and /api/reservations/43 share one series.
func Metrics(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.RequestDuration.
			WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).
			Observe(time.Since(start).Seconds())
	}
}
