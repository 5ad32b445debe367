// Package pdf 通过 wkhtmltopdf 将渲染后的 HTML 导出为 PDF
package pdf

import (
	"context"
	"strings"

	wkhtmltopdf "github.com/SebastiaanKlippert/go-wkhtmltopdf"
	"github.com/pkg/errors"

	"github.com/haierkeys/markdown-format-service/internal/export"
)

// pageMarginMM A4 页边距，毫米
const pageMarginMM = 20

// documentTemplate 打印页面模板，{{content}} 处插入正文
const documentTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="UTF-8">
<style>
    @page {
        size: A4;
        margin: 2cm;
    }
    body {
        font-family: Arial, sans-serif;
        font-size: 12px;
        line-height: 1.6;
        color: #333;
    }
    h1, h2, h3, h4, h5, h6 {
        color: #2c3e50;
        margin-top: 1em;
        margin-bottom: 0.5em;
    }
    h1 { font-size: 24px; }
    h2 { font-size: 20px; }
    h3 { font-size: 16px; }
    p { margin-bottom: 1em; }
    code {
        background-color: #f4f4f4;
        padding: 2px 5px;
        font-family: 'Courier New', monospace;
        font-size: 11px;
    }
    pre {
        background-color: #f4f4f4;
        padding: 10px;
        border-left: 3px solid #ccc;
        overflow-x: auto;
    }
    ul, ol { margin-left: 20px; }
    blockquote {
        border-left: 4px solid #ddd;
        padding-left: 15px;
        color: #666;
        font-style: italic;
    }
</style>
</head>
<body>
{{content}}
</body>
</html>`

// Config PDF 引擎配置
type Config struct {
	// EnginePath wkhtmltopdf 可执行文件路径，为空时从 PATH 查找
	EnginePath string
}

// Engine PDF 导出引擎
type Engine struct {
	cfg Config
}

// NewEngine 创建 PDF 导出引擎
func NewEngine(cfg Config) *Engine {
	if cfg.EnginePath != "" {
		wkhtmltopdf.SetPath(cfg.EnginePath)
	}
	return &Engine{cfg: cfg}
}

// WrapDocument 将 HTML 片段包进完整打印页面
// 空白内容替换为占位段落，保证永远生成有效文档
func WrapDocument(fragment string) string {
	if strings.TrimSpace(fragment) == "" {
		fragment = "<p>" + export.PlaceholderText + "</p>"
	}
	return strings.Replace(documentTemplate, "{{content}}", fragment, 1)
}

// Render 生成 PDF 字节流
// 引擎执行失败时不返回任何部分内容
func (e *Engine) Render(ctx context.Context, content string) ([]byte, error) {
	pdfg, err := wkhtmltopdf.NewPDFGenerator()
	if err != nil {
		return nil, errors.Wrap(err, "init pdf engine")
	}

	pdfg.PageSize.Set(wkhtmltopdf.PageSizeA4)
	pdfg.MarginTop.Set(pageMarginMM)
	pdfg.MarginBottom.Set(pageMarginMM)
	pdfg.MarginLeft.Set(pageMarginMM)
	pdfg.MarginRight.Set(pageMarginMM)

	pdfg.AddPage(wkhtmltopdf.NewPageReader(strings.NewReader(WrapDocument(content))))

	if err := pdfg.CreateContext(ctx); err != nil {
		return nil, errors.Wrap(err, "generate pdf")
	}
	return pdfg.Bytes(), nil
}
