// Package export 提供文档导出的公共能力
package export

import (
	"strings"
)

// PlaceholderText 导出内容为空时写入文档的占位文本
const PlaceholderText = "No content available"

// fallbackName 清洗后为空时使用的文件名
const fallbackName = "document"

// maxNameLength 文件名最大字符数，扩展名不计入
const maxNameLength = 200

// filenameReplacer 将文件系统非法字符替换为下划线
var filenameReplacer = strings.NewReplacer(
	"<", "_",
	">", "_",
	":", "_",
	`"`, "_",
	"/", "_",
	`\`, "_",
	"|", "_",
	"?", "_",
	"*", "_",
)

// SanitizeFilename 清洗下载文件名并保证扩展名存在
// 非法字符逐个替换为下划线，超长截断，空名回退为 document
// ext 形如 ".docx"，大小写不敏感地判断是否已带扩展名
func SanitizeFilename(name, ext string) string {
	name = filenameReplacer.Replace(name)

	if runes := []rune(name); len(runes) > maxNameLength {
		name = string(runes[:maxNameLength])
	}
	if name == "" {
		name = fallbackName
	}

	if ext != "" && !strings.HasSuffix(strings.ToLower(name), strings.ToLower(ext)) {
		name += ext
	}
	return name
}
