package render

import (
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultTestConfig() Config {
	return Config{
		HardWraps:  true,
		Unsafe:     true,
		Extensions: []string{"table", "footnote", "definition"},
	}
}

func TestPreprocess(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{name: "empty", text: "", want: ""},
		{name: "whitespace only", text: "  \n\t\n  ", want: ""},
		{name: "strip surrounding", text: "  hello  ", want: "hello"},
		{name: "trailing spaces before newline", text: "a   \nb", want: "a\nb"},
		{name: "trailing tab before newline", text: "a\t\nb", want: "a\nb"},
		{name: "blank lines collapse", text: "a\n\n\nb", want: "a\nb"},
		{name: "crlf", text: "a\r\nb", want: "a\nb"},
		{name: "mixed blank run", text: "a \n \t \nb", want: "a\nb"},
		{name: "leading spaces kept", text: "a\n  b", want: "a\n  b"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Preprocess(tt.text))
		})
	}
}

func TestEngineRender(t *testing.T) {
	e := NewEngine(defaultTestConfig())

	tests := []struct {
		name string
		text string
		want string
	}{
		{
			name: "empty input",
			text: "",
			want: "",
		},
		{
			name: "heading without id",
			text: "# Hello World",
			want: "<h1>Hello World</h1>",
		},
		{
			name: "emphasis",
			text: "**bold** and *italic*",
			want: "<p><strong>bold</strong> and <em>italic</em></p>",
		},
		{
			name: "hard wrap renders br",
			text: "line one\nline two",
			want: "<p>line one<br />\nline two</p>",
		},
		{
			name: "blank line collapses into same paragraph",
			text: "para one\n\npara two",
			want: "<p>para one<br />\npara two</p>",
		},
		{
			name: "trailing spaces stripped before render",
			text: "text   \nnext",
			want: "<p>text<br />\nnext</p>",
		},
		{
			name: "fenced code with language",
			text: "```go\nx := 1\n```",
			want: "<pre><code class=\"language-go\">x := 1\n</code></pre>",
		},
		{
			name: "raw html passes through",
			text: "<div class=\"note\">hi</div>",
			want: "<div class=\"note\">hi</div>",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := e.Render(tt.text)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEngineRenderTable(t *testing.T) {
	e := NewEngine(defaultTestConfig())

	got, err := e.Render("| a | b |\n| --- | --- |\n| 1 | 2 |")
	require.NoError(t, err)
	assert.Contains(t, got, "<table>")
	assert.Contains(t, got, "<th>a</th>")
	assert.Contains(t, got, "<td>2</td>")
}

func TestEngineRenderLists(t *testing.T) {
	e := NewEngine(defaultTestConfig())

	got, err := e.Render("1. one\n2. two")
	require.NoError(t, err)
	assert.Contains(t, got, "<ol>")
	assert.Contains(t, got, "<li>one</li>")

	got, err = e.Render("- first\n- second")
	require.NoError(t, err)
	assert.Contains(t, got, "<ul>")
	assert.Contains(t, got, "<li>second</li>")
}

func TestEngineRenderSafeMode(t *testing.T) {
	cfg := defaultTestConfig()
	cfg.Unsafe = false
	e := NewEngine(cfg)

	got, err := e.Render("<div>hi</div>")
	require.NoError(t, err)
	assert.Equal(t, "<!-- raw HTML omitted -->", got)
}

func TestEngineRenderNoHardWraps(t *testing.T) {
	cfg := defaultTestConfig()
	cfg.HardWraps = false
	e := NewEngine(cfg)

	got, err := e.Render("line one\nline two")
	require.NoError(t, err)
	assert.Equal(t, "<p>line one\nline two</p>", got)
}

func TestEngineRenderStrikethroughOptIn(t *testing.T) {
	cfg := defaultTestConfig()
	cfg.Extensions = append(cfg.Extensions, "strikethrough")
	e := NewEngine(cfg)

	got, err := e.Render("~~old~~")
	require.NoError(t, err)
	assert.Equal(t, "<p><del>old</del></p>", got)
}

func TestCollectExtensions(t *testing.T) {
	tests := []struct {
		name  string
		names []string
		want  int
	}{
		{name: "empty", names: nil, want: 0},
		{name: "known", names: []string{"table", "footnote"}, want: 2},
		{name: "unknown ignored", names: []string{"bogus", "table"}, want: 1},
		{name: "dedupe case insensitive", names: []string{"table", "TABLE", "tables"}, want: 1},
		{name: "blank entries skipped", names: []string{"", "  ", "linkify"}, want: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Len(t, collectExtensions(tt.names), tt.want)
		})
	}
}

func TestEngineRenderUnknownExtensionName(t *testing.T) {
	cfg := defaultTestConfig()
	cfg.Extensions = []string{"does-not-exist"}
	e := NewEngine(cfg)

	got, err := e.Render("# ok")
	require.NoError(t, err)
	assert.Equal(t, "<h1>ok</h1>", got)
}

// 渲染必须是纯函数：同一输入任意次渲染结果一致，且不返回错误
func TestPropertyRenderDeterministic(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)
	e := NewEngine(defaultTestConfig())

	properties.Property("render is deterministic", prop.ForAll(
		func(text string) bool {
			first, err1 := e.Render(text)
			second, err2 := e.Render(text)
			if err1 != nil || err2 != nil {
				return false
			}
			return first == second
		},
		gen.AnyString(),
	))

	properties.Property("preprocess is idempotent", prop.ForAll(
		func(text string) bool {
			once := Preprocess(text)
			return Preprocess(once) == once
		},
		gen.AnyString(),
	))

	properties.Property("preprocess output has no trailing blank runs", prop.ForAll(
		func(text string) bool {
			out := Preprocess(text)
			if out == "" {
				return true
			}
			return !strings.Contains(out, "\n\n") && out == strings.TrimSpace(out)
		},
		gen.AnyString(),
	))

	properties.TestingRun(t)
}
