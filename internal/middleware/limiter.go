package middleware

import (
	"github.com/haierkeys/markdown-format-service/pkg/app"
	"github.com/haierkeys/markdown-format-service/pkg/code"
	"github.com/haierkeys/markdown-format-service/pkg/limiter"

	"github.com/gin-gonic/gin"
)

// RateLimiter 对命中限流键的请求做令牌桶限流，未配置该键的路由直接放行
func RateLimiter(l limiter.Face) gin.HandlerFunc {
	return func(c *gin.Context) {
		bucket, ok := l.GetBucket(l.Key(c))
		if ok && bucket.TakeAvailable(1) == 0 {
			app.NewResponse(c).ToResponse(code.ErrorTooManyRequests)
			c.Abort()
			return
		}

		c.Next()
	}
}
