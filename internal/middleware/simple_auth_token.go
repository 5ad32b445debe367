/**
  @author: haierkeys
  @since: 2024/11/3
  @desc: 私有调试路由的简单口令认证
**/

package middleware

import (
	"github.com/haierkeys/markdown-format-service/pkg/app"
	"github.com/haierkeys/markdown-format-service/pkg/code"

	"github.com/gin-gonic/gin"
)

// SimpleAuthTokenWithConfig 简单口令认证，口令配置为空时视为关闭认证直接放行
func SimpleAuthTokenWithConfig(authToken string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if authToken == "" {
			c.Next()
			return
		}

		if requestToken(c) != authToken {
			app.NewResponse(c).ToResponse(code.ErrorInvalidAuthToken)
			c.Abort()
			return
		}

		c.Next()
	}
}

// requestToken 提取请求口令。查询串的键区分大小写所以查两种写法，请求头本身大小写不敏感
func requestToken(c *gin.Context) string {
	if s, exist := c.GetQuery("authorization"); exist {
		return s
	}
	if s, exist := c.GetQuery("Authorization"); exist {
		return s
	}
	return c.GetHeader("Authorization")
}
