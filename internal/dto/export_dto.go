package dto

// 导出文档的 MIME 类型
const (
	ContentTypeWord = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	ContentTypePDF  = "application/pdf"
)

// ExportFileDTO 生成的导出文档，Data 为文件内容
type ExportFileDTO struct {
	Name        string
	ContentType string
	Data        []byte
}
