// Package diff 提供历史记录原文对比的差异计算
package diff

import "github.com/sergi/go-diff/diffmatchpatch"

// Texts 计算两段文本的差异片段
// 按字符粒度计算后做语义化合并，片段更贴近人眼可读的编辑单元
func Texts(from, to string) []diffmatchpatch.Diff {
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(from, to, false)
	return dmp.DiffCleanupSemantic(diffs)
}
