package export

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
)

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		name string
		in   string
		ext  string
		want string
	}{
		{name: "plain name", in: "report", ext: ".docx", want: "report.docx"},
		{name: "extension already present", in: "report.docx", ext: ".docx", want: "report.docx"},
		{name: "extension case insensitive", in: "report.DOCX", ext: ".docx", want: "report.DOCX"},
		{name: "illegal characters replaced", in: `a<b>c:d"e/f\g|h?i*j`, ext: ".pdf", want: "a_b_c_d_e_f_g_h_i_j.pdf"},
		{name: "empty falls back", in: "", ext: ".docx", want: "document.docx"},
		{name: "only illegal chars keeps underscores", in: "???", ext: ".pdf", want: "___.pdf"},
		{name: "no extension requested", in: "name", ext: "", want: "name"},
		{name: "unicode preserved", in: "报告", ext: ".pdf", want: "报告.pdf"},
		{name: "path separators stripped", in: "../../etc/passwd", ext: ".pdf", want: ".._.._etc_passwd.pdf"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeFilename(tt.in, tt.ext))
		})
	}
}

func TestSanitizeFilenameTruncates(t *testing.T) {
	long := strings.Repeat("x", 500)
	got := SanitizeFilename(long, ".docx")
	assert.Equal(t, strings.Repeat("x", 200)+".docx", got)

	// 截断按字符计数而不是字节
	wide := strings.Repeat("文", 300)
	got = SanitizeFilename(wide, ".pdf")
	assert.Equal(t, 200, utf8.RuneCountInString(strings.TrimSuffix(got, ".pdf")))
}

// 任意输入经清洗后都不含非法字符、非空且长度受限
func TestPropertySanitizeFilename(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200

	properties := gopter.NewProperties(parameters)

	properties.Property("output is always a safe attachment name", prop.ForAll(
		func(name string) bool {
			got := SanitizeFilename(name, ".docx")
			if got == "" {
				return false
			}
			if strings.ContainsAny(strings.TrimSuffix(got, ".docx"), `<>:"/\|?*`) {
				return false
			}
			return utf8.RuneCountInString(got) <= maxNameLength+len(".docx")
		},
		gen.AnyString(),
	))

	properties.TestingRun(t)
}
