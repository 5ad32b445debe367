package diff

import (
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/sergi/go-diff/diffmatchpatch"
)

// 验证差异片段向两侧原文的投影恒等：
// 丢掉插入片段应还原 from，丢掉删除片段应还原 to
func TestTextsProjection(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	properties.Property("equal+delete segments rebuild the source text", prop.ForAll(
		func(from, to string) bool {
			var b strings.Builder
			for _, d := range Texts(from, to) {
				if d.Type != diffmatchpatch.DiffInsert {
					b.WriteString(d.Text)
				}
			}
			return b.String() == from
		},
		gen.AnyString(),
		gen.AnyString(),
	))

	properties.Property("equal+insert segments rebuild the target text", prop.ForAll(
		func(from, to string) bool {
			var b strings.Builder
			for _, d := range Texts(from, to) {
				if d.Type != diffmatchpatch.DiffDelete {
					b.WriteString(d.Text)
				}
			}
			return b.String() == to
		},
		gen.AnyString(),
		gen.AnyString(),
	))

	properties.TestingRun(t)
}

// 相同文本不应产生插入或删除片段
func TestTextsIdenticalInput(t *testing.T) {
	for _, d := range Texts("same text", "same text") {
		if d.Type != diffmatchpatch.DiffEqual {
			t.Errorf("unexpected op %v for identical input", d.Type)
		}
	}
}

// 语义化合并后，词级改动应落在完整的删除+插入片段里
func TestTextsSemanticCleanup(t *testing.T) {
	diffs := Texts("hello world", "hello there")

	var hasDelete, hasInsert bool
	for _, d := range diffs {
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			hasDelete = true
		case diffmatchpatch.DiffInsert:
			hasInsert = true
		}
	}
	if !hasDelete || !hasInsert {
		t.Fatalf("diffs missing delete/insert ops: %+v", diffs)
	}
}
