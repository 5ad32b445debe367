package code

import (
	"errors"
)

// lang 业务码的双语消息，字段顺序与码表里的字面量一致
type lang struct {
	en    string
	zh_cn string
}

// FALLBACK_LNG 回退语言
const FALLBACK_LNG = "en"

// lng 全局默认语言，由配置或请求头协商写入
var lng = FALLBACK_LNG

// GetMessage 返回当前语言的消息，缺失时回退到英文
func (l lang) GetMessage() string {
	switch lng {
	case "zh_cn":
		if l.zh_cn != "" {
			return l.zh_cn
		}
	case "en":
		if l.en != "" {
			return l.en
		}
	}
	if l.en != "" {
		return l.en
	}
	return "No message available for language: " + lng
}

// GetSupportedLanguages 返回支持的语言标识
func GetSupportedLanguages() []string {
	return []string{"en", "zh_cn"}
}

// SetGlobalDefaultLang 设置全局默认语言
// 不支持的语言回退到英文并返回错误
func SetGlobalDefaultLang(language string) error {
	for _, supported := range GetSupportedLanguages() {
		if language == supported {
			lng = language
			return nil
		}
	}
	lng = FALLBACK_LNG
	return errors.New("unsupported language type, set defaulting to " + FALLBACK_LNG)
}

// GetGlobalDefaultLang 获取全局默认语言
func GetGlobalDefaultLang() string {
	return lng
}
