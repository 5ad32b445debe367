package app

import (
	"strings"

	"github.com/gin-gonic/gin"
	ut "github.com/go-playground/universal-translator"
	val "github.com/go-playground/validator/v10"
)

// ValidError 单个参数校验错误
type ValidError struct {
	Key     string `json:"key"`
	Message string `json:"message"`
}

// ValidErrors 参数校验错误集合
type ValidErrors []*ValidError

func (v *ValidError) Error() string {
	return v.Message
}

func (v ValidErrors) Error() string {
	return strings.Join(v.Errors(), ",")
}

// Errors 返回所有错误消息
func (v ValidErrors) Errors() []string {
	var errs []string
	for _, err := range v {
		errs = append(errs, err.Error())
	}
	return errs
}

// Maps 返回 key 到错误消息的映射
func (v ValidErrors) Maps() map[string]string {
	m := map[string]string{}
	for _, err := range v {
		m[err.Key] = err.Message
	}
	return m
}

// BindAndValid binds request parameters and validates them. Validation
// messages are translated with the translator stored on the request
// context by the lang middleware.
//
// BindAndValid 绑定请求参数并校验，错误消息使用请求上下文中的翻译器翻译
func BindAndValid(c *gin.Context, obj any) (bool, ValidErrors) {
	var errs ValidErrors

	if err := c.ShouldBind(obj); err != nil {
		var trans ut.Translator
		if v := c.Value("trans"); v != nil {
			trans, _ = v.(ut.Translator)
		}

		verrs, ok := err.(val.ValidationErrors)
		if !ok {
			errs = append(errs, &ValidError{
				Key:     "body",
				Message: err.Error(),
			})
			return false, errs
		}

		for key, value := range verrs.Translate(trans) {
			errs = append(errs, &ValidError{
				Key:     key,
				Message: value,
			})
		}
		return false, errs
	}

	return true, nil
}
