// Package docx 将渲染后的 HTML 转换为 Word 文档
package docx

import (
	"fmt"
	"io"
	"strings"

	"baliance.com/gooxml/color"
	"baliance.com/gooxml/document"
	"baliance.com/gooxml/measurement"
	"baliance.com/gooxml/schema/soo/wml"
	"github.com/pkg/errors"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/haierkeys/markdown-format-service/internal/export"
)

const (
	monoFont        = "Courier New"
	maxHeadingLevel = 9
	quoteStyleID    = "Quote"

	codeFontSize = 10 * measurement.Point
	listIndent   = measurement.Inch / 4
)

// linkColor 超链接的可见样式颜色
var linkColor = color.RGB(0x05, 0x63, 0xC1)

// Write 解析 HTML 并按块级元素写出 Word 文档
// 只处理标题、段落、列表、代码块和引用，其余元素忽略
// 没有产生任何段落时写入一个占位段落
func Write(w io.Writer, src string) error {
	root, err := html.Parse(strings.NewReader(src))
	if err != nil {
		return errors.Wrap(err, "parse html")
	}

	wr := newWriter()
	if body := findBody(root); body != nil {
		for n := body.FirstChild; n != nil; n = n.NextSibling {
			wr.writeBlock(n)
		}
	}
	if wr.paragraphs == 0 {
		wr.doc.AddParagraph().AddRun().AddText(export.PlaceholderText)
	}
	return errors.Wrap(wr.doc.Save(w), "save docx")
}

// writer 持有输出文档与按需创建的列表编号定义
type writer struct {
	doc        *document.Document
	paragraphs int

	bulletList  document.NumberingDefinition
	hasBullet   bool
	decimalList document.NumberingDefinition
	hasDecimal  bool
}

func newWriter() *writer {
	wr := &writer{doc: document.New()}
	wr.registerQuoteStyle()
	return wr
}

// registerQuoteStyle 注册引用段落样式，默认样式表不含 Quote
func (wr *writer) registerQuoteStyle() {
	style := wr.doc.Styles.AddStyle(quoteStyleID, wml.ST_StyleTypeParagraph, false)
	style.SetName("Quote")
	style.SetBasedOn("Normal")
	style.RunProperties().SetItalic(true)
	style.RunProperties().SetColor(color.RGB(0x66, 0x66, 0x66))
}

func (wr *writer) writeBlock(n *html.Node) {
	if n.Type != html.ElementNode {
		return
	}
	switch n.DataAtom {
	case atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6:
		wr.writeHeading(n)
	case atom.P:
		wr.writeParagraph(n)
	case atom.Ul:
		wr.writeListItems(n, wr.bulletDefinition())
	case atom.Ol:
		wr.writeListItems(n, wr.decimalDefinition())
	case atom.Pre, atom.Code:
		wr.writeCodeBlock(n)
	case atom.Blockquote:
		wr.writeQuote(n)
	}
}

func (wr *writer) writeHeading(n *html.Node) {
	level := int(n.Data[1] - '0')
	if level > maxHeadingLevel {
		level = maxHeadingLevel
	}
	para := wr.doc.AddParagraph()
	para.SetStyle(fmt.Sprintf("Heading%d", level))
	para.AddRun().AddText(nodeText(n))
	wr.paragraphs++
}

func (wr *writer) writeParagraph(n *html.Node) {
	para := wr.doc.AddParagraph()
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		wr.writeInline(para, c)
	}
	wr.paragraphs++
}

// writeInline 处理段落的直接子节点，嵌套结构降级为纯文本
func (wr *writer) writeInline(para document.Paragraph, n *html.Node) {
	switch n.Type {
	case html.TextNode:
		para.AddRun().AddText(n.Data)
	case html.ElementNode:
		run := para.AddRun()
		run.AddText(nodeText(n))
		switch n.DataAtom {
		case atom.Strong, atom.B:
			run.Properties().SetBold(true)
		case atom.Em, atom.I:
			run.Properties().SetItalic(true)
		case atom.Code:
			run.Properties().SetFontFamily(monoFont)
			run.Properties().SetSize(codeFontSize)
		case atom.A:
			run.Properties().SetColor(linkColor)
			run.Properties().SetUnderline(wml.ST_UnderlineSingle, linkColor)
		}
	}
}

// writeListItems 只取直接 li 子节点，嵌套列表并入父项文本
func (wr *writer) writeListItems(n *html.Node, nd document.NumberingDefinition) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode || c.DataAtom != atom.Li {
			continue
		}
		para := wr.doc.AddParagraph()
		para.SetNumberingLevel(0)
		para.SetNumberingDefinition(nd)
		para.AddRun().AddText(nodeText(c))
		wr.paragraphs++
	}
}

func (wr *writer) writeCodeBlock(n *html.Node) {
	run := wr.doc.AddParagraph().AddRun()
	run.AddText(nodeText(n))
	run.Properties().SetFontFamily(monoFont)
	run.Properties().SetSize(codeFontSize)
	wr.paragraphs++
}

func (wr *writer) writeQuote(n *html.Node) {
	para := wr.doc.AddParagraph()
	para.SetStyle(quoteStyleID)
	para.AddRun().AddText(nodeText(n))
	wr.paragraphs++
}

func (wr *writer) bulletDefinition() document.NumberingDefinition {
	if !wr.hasBullet {
		nd := wr.doc.Numbering.AddDefinition()
		lvl := nd.AddLevel()
		lvl.SetFormat(wml.ST_NumberFormatBullet)
		lvl.SetAlignment(wml.ST_JcLeft)
		lvl.SetText("•")
		lvl.Properties().SetLeftIndent(listIndent)
		wr.bulletList = nd
		wr.hasBullet = true
	}
	return wr.bulletList
}

func (wr *writer) decimalDefinition() document.NumberingDefinition {
	if !wr.hasDecimal {
		nd := wr.doc.Numbering.AddDefinition()
		lvl := nd.AddLevel()
		lvl.SetFormat(wml.ST_NumberFormatDecimal)
		lvl.SetAlignment(wml.ST_JcLeft)
		lvl.SetText("%1.")
		lvl.Properties().SetLeftIndent(listIndent)
		wr.decimalList = nd
		wr.hasDecimal = true
	}
	return wr.decimalList
}

// findBody 在解析树中定位 body 节点
func findBody(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && n.DataAtom == atom.Body {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if body := findBody(c); body != nil {
			return body
		}
	}
	return nil
}

// nodeText 拼接节点下全部文本内容
func nodeText(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}
