package middleware

import (
	"github.com/haierkeys/markdown-format-service/pkg/app"
	"github.com/haierkeys/markdown-format-service/pkg/code"

	"github.com/gin-gonic/gin"
)

// NoFound 兜底处理未注册路由，返回业务码响应而不是 gin 默认 404 页
func NoFound() gin.HandlerFunc {
	return func(c *gin.Context) {
		app.NewResponse(c).ToResponse(code.ErrorNotFoundAPI)
		c.Abort()
	}
}
