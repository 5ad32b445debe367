package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/haierkeys/markdown-format-service/internal/metrics"
)

// Metrics 记录请求计数与耗时指标
// 路由标签使用注册的路由模板，未匹配的请求计入 unmatched
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}

		metrics.RequestTotal.WithLabelValues(
			c.Request.Method,
			route,
			strconv.Itoa(c.Writer.Status()),
		).Inc()
		metrics.RequestDuration.WithLabelValues(
			c.Request.Method,
			route,
		).Observe(time.Since(start).Seconds())
	}
}
