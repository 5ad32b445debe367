package dto

import (
	"github.com/haierkeys/markdown-format-service/pkg/timex"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// 历史条目预览的截断长度与时间格式，与面板端约定保持一致
const (
	HistoryPreviewLength  = 100
	HistoryPreviewTimeFmt = "2006-01-02 15:04"
)

// FormatResultDTO 一次格式化的结果
type FormatResultDTO struct {
	RawText       string `json:"raw_text"`
	FormattedHTML string `json:"formatted_html"`
	ID            int64  `json:"id"`
}

// HistoryDTO 历史记录完整数据传输对象
type HistoryDTO struct {
	ID            int64      `json:"id"`
	RawText       string     `json:"raw_text"`
	FormattedHTML string     `json:"formatted_html"`
	CreatedAt     timex.Time `json:"created_at"`
}

// HistoryItemDTO 历史列表条目，原文按预览长度截断
type HistoryItemDTO struct {
	ID        int64  `json:"id"`
	RawText   string `json:"raw_text"`
	CreatedAt string `json:"created_at"`
}

// HistoryPageDTO 历史分页列表响应对象
type HistoryPageDTO struct {
	Items       []*HistoryItemDTO `json:"items"`
	HasNext     bool              `json:"has_next"`
	HasPrevious bool              `json:"has_previous"`
}

// HistoryFilterDTO 历史检索响应对象，query 为实际参与检索的关键字
type HistoryFilterDTO struct {
	Items []*HistoryItemDTO `json:"items"`
	Query string            `json:"query"`
}

// HistoryDiffDTO 两条历史记录的原文差异
type HistoryDiffDTO struct {
	From  int64                 `json:"from"`
	To    int64                 `json:"to"`
	Diffs []diffmatchpatch.Diff `json:"diffs"`
}

// AdminTokenDTO 管理员登录成功后的凭证响应对象
type AdminTokenDTO struct {
	Token     string     `json:"token"`
	ExpiresAt timex.Time `json:"expires_at"`
}

// TunnelDTO 隧道状态响应对象
type TunnelDTO struct {
	Running bool   `json:"running"`
	URL     string `json:"url"`
}

// ExportEmailResultDTO 邮件投递成功后的响应对象
type ExportEmailResultDTO struct {
	To       string `json:"to"`
	Filename string `json:"filename"`
}
