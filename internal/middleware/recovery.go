package middleware

import (
	"fmt"
	"runtime/debug"

	"github.com/haierkeys/markdown-format-service/pkg/app"
	"github.com/haierkeys/markdown-format-service/pkg/code"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RecoveryWithLogger 捕获 handler 中的 panic，记录请求现场和堆栈后返回统一的内部错误响应
func RecoveryWithLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			r := recover()
			if r == nil {
				return
			}

			fields := []zap.Field{
				zap.Int("status", c.Writer.Status()),
				zap.String("router", c.Request.URL.Path),
				zap.String("method", c.Request.Method),
				zap.String("query", c.Request.URL.RawQuery),
				zap.String("ip", c.ClientIP()),
				zap.String("userAgent", c.Request.UserAgent()),
				zap.String("errors", c.Errors.ByType(gin.ErrorTypePrivate).String()),
				zap.String("stack", string(debug.Stack())),
			}

			var errorMsg string
			switch v := r.(type) {
			case error:
				errorMsg = v.Error()
				fields = append(fields, zap.Error(v))
			case string:
				errorMsg = v
				fields = append(fields, zap.String("panicValue", v))
			default:
				errorMsg = fmt.Sprintf("%v", v)
				fields = append(fields, zap.String("panicValue", errorMsg))
			}
			logger.Error("recovered from panic", fields...)

			app.NewResponse(c).ToResponse(code.ErrorServerInternal.WithDetails(errorMsg))
		}()

		c.Next()
	}
}
