// Package dto 定义数据传输对象（请求参数和响应结构体）
package dto

// FormatRequest 格式化 Markdown 文本的请求参数
type FormatRequest struct {
	Text string `json:"text" form:"text" binding:"required"`
}

// HistoryDiffRequest 两条历史记录原文对比的请求参数
type HistoryDiffRequest struct {
	From int64 `json:"from" form:"from" binding:"required"`
	To   int64 `json:"to" form:"to" binding:"required"`
}

// ExportEmailRequest 邮件投递导出文档的请求参数
type ExportEmailRequest struct {
	ID     int64  `json:"id" form:"id" binding:"required"`
	Format string `json:"format" form:"format" binding:"required,oneof=word pdf"`
	To     string `json:"to" form:"to" binding:"required,email"`
}

// AdminLoginRequest 管理员登录请求参数
type AdminLoginRequest struct {
	Password string `json:"password" form:"password" binding:"required"`
}

// TunnelActionRequest 隧道控制请求参数
type TunnelActionRequest struct {
	Action string `json:"action" form:"action" binding:"required,oneof=start stop"`
}
