package middleware

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
)

const (
	// DefaultTraceIDHeader 默认的 Trace ID 请求头名称
	DefaultTraceIDHeader = "X-Trace-ID"
	// TraceIDKey gin.Context 中存储 Trace ID 的键
	TraceIDKey = "trace_id"
)

// traceCtxKey request.Context 用的私有键类型，避免跨包字符串键冲突
type traceCtxKey struct{}

// TraceMiddlewareWithConfig 请求追踪中间件。
// 客户端带了 Trace ID 就沿用，否则生成一个，并写回响应头方便联调排查
func TraceMiddlewareWithConfig(enabled bool, header string) gin.HandlerFunc {
	headerName := header
	if headerName == "" {
		headerName = DefaultTraceIDHeader
	}

	return func(c *gin.Context) {
		if !enabled {
			c.Next()
			return
		}

		traceID := c.GetHeader(headerName)
		if traceID == "" {
			traceID = generateTraceID()
		}

		c.Set(TraceIDKey, traceID)
		c.Request = c.Request.WithContext(context.WithValue(c.Request.Context(), traceCtxKey{}, traceID))
		c.Header(headerName, traceID)

		c.Next()
	}
}

// generateTraceID 生成 {纳秒时间戳}-{8位随机十六进制} 形式的 Trace ID
func generateTraceID() string {
	buf := make([]byte, 8)
	if _, err := rand.Read(buf); err != nil {
		// 随机源不可用时退化为纯时间戳
		return fmt.Sprintf("%d", time.Now().UnixNano())
	}
	return fmt.Sprintf("%d-%s", time.Now().UnixNano(), hex.EncodeToString(buf)[:8])
}

// GetTraceID 从 context.Context 取 Trace ID，取不到返回空串
func GetTraceID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if id, ok := ctx.Value(traceCtxKey{}).(string); ok {
		return id
	}
	return ""
}

// GetTraceIDFromGin 从 gin.Context 取 Trace ID，取不到返回空串
func GetTraceIDFromGin(c *gin.Context) string {
	if c == nil {
		return ""
	}
	if id, ok := c.Get(TraceIDKey); ok {
		if traceID, ok := id.(string); ok {
			return traceID
		}
	}
	return ""
}
