package pdf

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	wkhtmltopdf "github.com/SebastiaanKlippert/go-wkhtmltopdf"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"

	"github.com/haierkeys/markdown-format-service/internal/export"
)

func TestWrapDocument(t *testing.T) {
	got := WrapDocument("<p>hello</p>")

	assert.Contains(t, got, "<p>hello</p>")
	assert.Contains(t, got, "size: A4")
	assert.Contains(t, got, "margin: 2cm")
	assert.Contains(t, got, `<meta charset="UTF-8">`)
	assert.True(t, strings.HasPrefix(got, "<!DOCTYPE html>"))

	// 正文位于 body 内
	assert.Less(t, strings.Index(got, "<body>"), strings.Index(got, "<p>hello</p>"))
	assert.Less(t, strings.Index(got, "<p>hello</p>"), strings.Index(got, "</body>"))
}

func TestWrapDocumentEmpty(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{name: "empty", in: ""},
		{name: "whitespace only", in: "  \n\t "},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := WrapDocument(tt.in)
			assert.Contains(t, got, "<p>"+export.PlaceholderText+"</p>")
		})
	}
}

func TestRenderEngineMissing(t *testing.T) {
	e := NewEngine(Config{EnginePath: filepath.Join(t.TempDir(), "missing-binary")})
	defer wkhtmltopdf.SetPath("")

	_, err := e.Render(context.Background(), "<p>x</p>")
	assert.Error(t, err)
}

// 非空片段原样出现在包装结果中，且模板字节稳定
func TestPropertyWrapDocument(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	properties.Property("fragment is embedded verbatim", prop.ForAll(
		func(fragment string) bool {
			if strings.TrimSpace(fragment) == "" {
				return true
			}
			got := WrapDocument(fragment)
			return strings.Contains(got, fragment) && got == WrapDocument(fragment)
		},
		gen.AnyString(),
	))

	properties.TestingRun(t)
}
