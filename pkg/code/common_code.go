package code

// 通用状态码与业务错误码定义
// 0 为成功，1 为通用失败，100000xx 为服务级错误，200xxxxx 为业务错误

var (
	Success         = NewSuss(0, lang{"Success", "成功"})
	Failed          = NewError(1, lang{"Failed", "失败"})
	SuccessCreate   = NewSuss(2, lang{"Create Success", "创建成功"})
	SuccessUpdate   = NewSuss(3, lang{"Update Success", "更新成功"})
	SuccessNoUpdate = NewSuss(4, lang{"No Update", "无更新"})
	SuccessDelete   = NewSuss(5, lang{"Delete Success", "删除成功"})

	ErrorServerInternal      = NewError(10000000, lang{"Server Internal Error", "服务内部错误"})
	ErrorInvalidParams       = NewError(10000001, lang{"Invalid Params", "入参错误"})
	ErrorNotFoundAPI         = NewError(10000002, lang{"Not Found API", "找不到API"})
	ErrorTooManyRequests     = NewError(10000003, lang{"Too Many Requests", "请求过多"})
	ErrorServerTimeout       = NewError(10000004, lang{"Server Timeout", "服务超时"})
	ErrorDBQuery             = NewError(10000005, lang{"Database Query Error", "数据库查询错误"})
	ErrorConfigSaveFailed    = NewError(10000006, lang{"Config Save Failed", "配置保存失败"})
	ErrorInvalidStorageType  = NewError(10000007, lang{"Invalid Storage Type", "存储类型无效"})
	ErrorStorageTypeDisabled = NewError(10000008, lang{"Storage Type Is Disabled", "存储类型未启用"})

	ErrorHistoryNotFound     = NewError(20010001, lang{"History Not Found", "历史记录不存在"})
	ErrorEmptyContent        = NewError(20010002, lang{"Please enter some text to format", "请输入要格式化的文本"})
	ErrorRenderFail          = NewError(20010003, lang{"Markdown Render Failed", "Markdown 渲染失败"})
	ErrorHistoryCreateFailed = NewError(20010004, lang{"History Create Failed", "历史记录创建失败"})
	ErrorHistoryDeleteFailed = NewError(20010005, lang{"History Delete Failed", "历史记录删除失败"})
	ErrorHistoryListFailed   = NewError(20010006, lang{"History List Failed", "历史记录查询失败"})
	ErrorHistoryDiffFailed   = NewError(20010007, lang{"History Diff Failed", "历史记录比对失败"})

	ErrorEmptyExportContent = NewError(20020001, lang{"No content to export, please format text first", "没有可导出的内容，请先格式化文本"})
	ErrorExportWordFail     = NewError(20020002, lang{"Word Export Failed", "Word 导出失败"})
	ErrorExportPDFFail      = NewError(20020003, lang{"PDF Export Failed", "PDF 导出失败"})
	ErrorMailDisabled       = NewError(20020004, lang{"Mail Delivery Is Disabled", "邮件发送未启用"})
	ErrorMailSendFail       = NewError(20020005, lang{"Mail Send Failed", "邮件发送失败"})

	ErrorAdminAuthFail    = NewError(20030001, lang{"Admin Password Not Match", "管理员密码错误"})
	ErrorNotAuthToken     = NewError(20030002, lang{"Auth Token Is Missing", "鉴权 Token 缺失"})
	ErrorInvalidAuthToken = NewError(20030003, lang{"Auth Token Is Invalid Or Expired", "鉴权 Token 无效或已过期"})
	ErrorTokenGenerate    = NewError(20030004, lang{"Auth Token Generate Failed", "鉴权 Token 生成失败"})
	ErrorTunnelFail       = NewError(20030005, lang{"Tunnel Operation Failed", "隧道操作失败"})
)
