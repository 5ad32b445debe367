// Package validator 提供 gin binding 的自定义验证器
package validator

import (
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	val "github.com/go-playground/validator/v10"
)

// CustomValidator 实现 binding.StructValidator，使用 binding 标签惰性初始化
type CustomValidator struct {
	once     sync.Once
	validate *val.Validate
}

// NewCustomValidator 创建自定义验证器实例
func NewCustomValidator() *CustomValidator {
	return &CustomValidator{}
}

// ValidateStruct 校验结构体（指针会被解引用）
func (v *CustomValidator) ValidateStruct(obj any) error {
	if obj == nil {
		return nil
	}

	value := reflect.ValueOf(obj)
	if value.Kind() == reflect.Ptr {
		if value.IsNil() {
			return nil
		}
		value = value.Elem()
	}
	if value.Kind() != reflect.Struct {
		return nil
	}

	v.lazyInit()
	return v.validate.Struct(obj)
}

// Engine 返回底层 *validator.Validate
func (v *CustomValidator) Engine() any {
	v.lazyInit()
	return v.validate
}

func (v *CustomValidator) lazyInit() {
	v.once.Do(func() {
		v.validate = val.New()
		v.validate.SetTagName("binding")
	})
}

// RegisterCustom registers project specific validation tags on the
// current binding validator. Must be called after binding.Validator is
// replaced by CustomValidator.
//
// RegisterCustom 在当前 binding 验证器上注册项目自定义校验标签
func RegisterCustom() {
	v, ok := binding.Validator.Engine().(*val.Validate)
	if !ok {
		return
	}

	// notblank 要求字符串去除空白后非空
	_ = v.RegisterValidation("notblank", func(fl val.FieldLevel) bool {
		field := fl.Field()
		if field.Kind() != reflect.String {
			return false
		}
		return strings.TrimSpace(field.String()) != ""
	})
}
