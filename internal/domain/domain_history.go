// Package domain 定义领域模型和接口
package domain

import "time"

// History 格式化历史领域模型
// 记录一次 Markdown 格式化的原文与渲染结果，创建后不可变更
type History struct {
	ID            int64
	RawText       string
	FormattedHTML string
	CreatedAt     time.Time
}

// Preview 返回原文的字符截断预览
func (h *History) Preview(limit int) string {
	runes := []rune(h.RawText)
	if len(runes) <= limit {
		return h.RawText
	}
	return string(runes[:limit])
}
