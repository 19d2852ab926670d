package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/modelgate/modelgate/monitor"
)

// Prometheus records per-request metrics after the handler returns.
func Prometheus() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		path := c.FullPath()
		if path == "" {
			// Unmatched routes collapse into one label value to keep
			// cardinality bounded.
			path = "unmatched"
		}
		monitor.RequestsTotal.WithLabelValues(
			path,
			c.Request.Method,
			strconv.Itoa(c.Writer.Status()),
		).Inc()
	}
}
