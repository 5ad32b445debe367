package docx

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haierkeys/markdown-format-service/internal/export"
)

// renderPart 导出 src 并返回包内指定文件的内容
func renderPart(t *testing.T, src, part string) string {
	t.Helper()

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, src))

	zr, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	require.NoError(t, err)

	for _, f := range zr.File {
		if f.Name != part {
			continue
		}
		rc, err := f.Open()
		require.NoError(t, err)
		defer rc.Close()

		data, err := io.ReadAll(rc)
		require.NoError(t, err)
		return string(data)
	}
	t.Fatalf("%s not found in package", part)
	return ""
}

func renderDocumentXML(t *testing.T, src string) string {
	t.Helper()
	return renderPart(t, src, "word/document.xml")
}

func TestWriteHeadingAndBoldRun(t *testing.T) {
	xml := renderDocumentXML(t, "<h2>Title</h2><p>Hello <strong>world</strong></p>")

	assert.Contains(t, xml, `w:pStyle w:val="Heading2"`)
	assert.Contains(t, xml, "Title")
	assert.Contains(t, xml, "Hello ")
	assert.Contains(t, xml, "world")
	assert.Contains(t, xml, "<w:b>")
	assert.Equal(t, 2, strings.Count(xml, "<w:p>"))

	// 普通文本先于加粗文本出现
	assert.Less(t, strings.Index(xml, "Hello "), strings.Index(xml, "world"))
}

func TestWriteHeadingLevels(t *testing.T) {
	var sb strings.Builder
	for i := 1; i <= 6; i++ {
		fmt.Fprintf(&sb, "<h%d>t%d</h%d>", i, i, i)
	}
	xml := renderDocumentXML(t, sb.String())

	for i := 1; i <= 6; i++ {
		assert.Contains(t, xml, fmt.Sprintf(`w:pStyle w:val="Heading%d"`, i))
	}
	assert.Equal(t, 6, strings.Count(xml, "<w:p>"))
}

func TestWriteEmptyProducesPlaceholder(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{name: "empty", src: ""},
		{name: "whitespace only", src: "  \n\t "},
		{name: "unsupported elements only", src: "<table><tr><td>cell</td></tr></table>"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			xml := renderDocumentXML(t, tt.src)
			assert.Contains(t, xml, export.PlaceholderText)
			assert.Equal(t, 1, strings.Count(xml, "<w:p>"))
		})
	}
}

func TestWriteLists(t *testing.T) {
	xml := renderDocumentXML(t, "<ul><li>alpha</li><li>beta</li></ul><ol><li>one</li></ol>")

	assert.Contains(t, xml, "alpha")
	assert.Contains(t, xml, "beta")
	assert.Contains(t, xml, "one")
	assert.Contains(t, xml, "<w:numPr>")
	assert.Equal(t, 3, strings.Count(xml, "<w:p>"))
}

func TestWriteListNumberingDefinitions(t *testing.T) {
	numbering := renderPart(t, "<ul><li>a</li></ul><ol><li>b</li></ol>", "word/numbering.xml")

	assert.Contains(t, numbering, `w:val="bullet"`)
	assert.Contains(t, numbering, `w:val="decimal"`)
}

func TestWriteNestedListFlattens(t *testing.T) {
	xml := renderDocumentXML(t, "<ul><li>top<ul><li>nested</li></ul></li></ul>")

	assert.Contains(t, xml, "topnested")
	assert.Equal(t, 1, strings.Count(xml, "<w:p>"))
}

func TestWriteCodeBlock(t *testing.T) {
	xml := renderDocumentXML(t, `<pre><code class="language-go">x := 1</code></pre>`)

	assert.Contains(t, xml, "Courier New")
	assert.Contains(t, xml, "x := 1")
	assert.Equal(t, 1, strings.Count(xml, "<w:p>"))
}

func TestWriteBlockquote(t *testing.T) {
	xml := renderDocumentXML(t, "<blockquote>wisdom</blockquote>")

	assert.Contains(t, xml, `w:val="Quote"`)
	assert.Contains(t, xml, "wisdom")

	styles := renderPart(t, "<blockquote>wisdom</blockquote>", "word/styles.xml")
	assert.Contains(t, styles, `w:styleId="Quote"`)
}

func TestWriteInlineRuns(t *testing.T) {
	xml := renderDocumentXML(t, `<p><em>it</em> and <code>mono</code> and <a href="https://example.com">site</a></p>`)

	assert.Contains(t, xml, "<w:i>")
	assert.Contains(t, xml, "Courier New")
	assert.Contains(t, xml, "0563C1")
	assert.Contains(t, xml, `w:val="single"`)
	assert.Contains(t, xml, "site")
	assert.Equal(t, 1, strings.Count(xml, "<w:p>"))
}

func TestWriteIgnoresUnknownElements(t *testing.T) {
	xml := renderDocumentXML(t, "<table><tr><td>cell</td></tr></table><h9999>big</h9999><p>kept</p>")

	assert.NotContains(t, xml, "cell")
	assert.Contains(t, xml, "kept")
	assert.Equal(t, 1, strings.Count(xml, "<w:p>"))

	// h9999 不是合法标题标签，不产生任何 Heading 样式
	assert.NotContains(t, xml, "big")
	assert.NotContains(t, xml, "Heading")
}

// 任意输入都能产出可解包的文档
func TestPropertyWriteAlwaysProducesReadableDocument(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 50

	properties := gopter.NewProperties(parameters)

	properties.Property("write never fails and output is a zip package", prop.ForAll(
		func(src string) bool {
			var buf bytes.Buffer
			if err := Write(&buf, src); err != nil {
				return false
			}
			_, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
			return err == nil
		},
		gen.AnyString(),
	))

	properties.TestingRun(t)
}
