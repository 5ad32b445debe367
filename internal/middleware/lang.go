package middleware

import (
	"strings"

	"github.com/haierkeys/markdown-format-service/pkg/code"

	ut "github.com/go-playground/universal-translator"
	"github.com/gin-gonic/gin"
)

// LangWithTranslator 语言协商中间件（支持依赖注入）
// 依次从 query、header 取 lang，选中的翻译器写入请求上下文
func LangWithTranslator(uni *ut.UniversalTranslator) gin.HandlerFunc {
	return func(c *gin.Context) {
		lang, ok := c.GetQuery("lang")
		if !ok {
			lang = c.GetHeader("lang")
		}
		lang = strings.ToLower(strings.ReplaceAll(lang, "-", "_"))

		trans, found := uni.GetTranslator(lang)
		if !found {
			trans, _ = uni.GetTranslator("en")
		}
		c.Set("trans", trans)

		// 码表消息语言跟随协商结果
		code.SetGlobalDefaultLang(lang)

		c.Next()
	}
}
