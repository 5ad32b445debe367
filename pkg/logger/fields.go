package logger

// 统一的日志字段命名常量
// 用于确保整个项目中日志字段命名的一致性，便于日志查询和分析
const (
	// FieldTraceID 追踪 ID 字段
	FieldTraceID = "traceId"

	// FieldHistoryID 历史记录 ID 字段
	FieldHistoryID = "historyId"

	// FieldAction 操作类型字段
	FieldAction = "action"

	// FieldPath 文件路径字段
	FieldPath = "path"

	// FieldFormat 导出格式字段
	FieldFormat = "format"

	// FieldEngine 渲染/导出引擎字段
	FieldEngine = "engine"

	// FieldDuration 耗时字段
	FieldDuration = "duration"

	// FieldMethod 方法名称字段
	FieldMethod = "method"

	// FieldError 错误信息字段
	FieldError = "error"

	// FieldSize 内容大小字段
	FieldSize = "size"

	// FieldBackend 归档后端名称字段
	FieldBackend = "backend"

	// FieldFileKey 文件键字段
	FieldFileKey = "fileKey"

	// FieldBucket 存储桶名称字段
	FieldBucket = "bucket"
)
