// Package render 提供 Markdown 到 HTML 的渲染引擎
package render

import (
	"bytes"
	"regexp"
	"strings"

	"github.com/pkg/errors"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
)

// Config 渲染引擎配置
type Config struct {
	// HardWraps 单个换行渲染为 <br />
	HardWraps bool
	// Unsafe 允许原样输出内嵌 HTML
	Unsafe bool
	// Extensions 启用的语法扩展名称，未知名称忽略
	Extensions []string
}

// trailingSpaceRe 匹配换行前的空白串（含空行，贪婪回溯会吞掉连续空行）
var trailingSpaceRe = regexp.MustCompile(`\s+\n`)

// Preprocess 渲染前的文本归一化
// 去掉每行行尾空白并压缩空行，再去除首尾空白
func Preprocess(text string) string {
	return strings.TrimSpace(trailingSpaceRe.ReplaceAllString(text, "\n"))
}

// Engine Markdown 渲染引擎
// 无内部状态，可在多个请求间安全复用
type Engine struct {
	md goldmark.Markdown
}

// NewEngine 根据配置构建渲染引擎
func NewEngine(cfg Config) *Engine {
	rendererOptions := []renderer.Option{
		html.WithXHTML(),
	}
	if cfg.HardWraps {
		rendererOptions = append(rendererOptions, html.WithHardWraps())
	}
	if cfg.Unsafe {
		rendererOptions = append(rendererOptions, html.WithUnsafe())
	}

	engineOptions := []goldmark.Option{
		goldmark.WithRendererOptions(rendererOptions...),
	}
	if exts := collectExtensions(cfg.Extensions); len(exts) > 0 {
		engineOptions = append(engineOptions, goldmark.WithExtensions(exts...))
	}

	return &Engine{md: goldmark.New(engineOptions...)}
}

// Render 归一化后渲染 Markdown，返回 HTML
func (e *Engine) Render(text string) (string, error) {
	var buf bytes.Buffer
	if err := e.md.Convert([]byte(Preprocess(text)), &buf); err != nil {
		return "", errors.Wrap(err, "render markdown")
	}
	return strings.TrimSpace(buf.String()), nil
}
