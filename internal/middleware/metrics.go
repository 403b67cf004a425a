package middleware

import (
	"time"

	"delipucash/internal/metrics"

	"github.com/gin-gonic/gin"
)

// Metrics 记录请求数、耗时和在途请求，路径使用路由模板避免基数爆炸
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		metrics.IncInFlight()
		defer metrics.DecInFlight()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		metrics.RecordHTTPRequest(c.Request.Method, path, c.Writer.Status(), time.Since(start))
	}
}
