package api_router

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/haierkeys/markdown-format-service/internal/app"
	"github.com/haierkeys/markdown-format-service/internal/dto"
	"github.com/haierkeys/markdown-format-service/internal/middleware"
	pkgapp "github.com/haierkeys/markdown-format-service/pkg/app"
	"github.com/haierkeys/markdown-format-service/pkg/code"
	apperrors "github.com/haierkeys/markdown-format-service/pkg/errors"
	"go.uber.org/zap"
)

// ExportHandler 导出 API 路由处理器
// 使用 App Container 注入依赖
type ExportHandler struct {
	*Handler
}

// NewExportHandler 创建 ExportHandler 实例
func NewExportHandler(a *app.App) *ExportHandler {
	return &ExportHandler{
		Handler: NewHandler(a),
	}
}

// Email 将历史记录导出并通过邮件发送
// @Summary 导出历史记录并邮件发送
// @Description 将指定历史记录导出为 Word 或 PDF 文档，并作为附件发送至目标邮箱
// @Tags 导出
// @Accept json
// @Produce json
// @Param params body dto.ExportEmailRequest true "导出参数"
// @Success 200 {object} pkgapp.Res{data=dto.ExportEmailResultDTO} "成功"
// @Router /api/export/email [post]
func (h *ExportHandler) Email(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.ExportEmailRequest{}

	// 参数绑定和验证
	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("ExportHandler.Email.BindAndValid err", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.Errors()...).WithData(errs.Maps()))
		return
	}

	ctx := c.Request.Context()

	result, err := h.App.ExportService.Email(ctx, params)
	if err != nil {
		h.logError(ctx, "ExportHandler.Email", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(result))
}

// logError 记录错误日志，包含 Trace ID
func (h *ExportHandler) logError(ctx context.Context, method string, err error) {
	traceID := middleware.GetTraceID(ctx)
	h.App.Logger().Error(method,
		zap.Error(err),
		zap.String("traceId", traceID),
	)
}
