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

// FormatHandler 格式化 API 路由处理器
// 使用 App Container 注入依赖
type FormatHandler struct {
	*Handler
}

// NewFormatHandler 创建 FormatHandler 实例
func NewFormatHandler(a *app.App) *FormatHandler {
	return &FormatHandler{
		Handler: NewHandler(a),
	}
}

// Format 渲染 Markdown 文本并保存为历史记录
// @Summary 格式化 Markdown 文本
// @Description 将 Markdown 渲染为 HTML，并保存为一条历史记录
// @Tags 格式化
// @Accept json
// @Produce json
// @Param params body dto.FormatRequest true "格式化参数"
// @Success 200 {object} pkgapp.Res{data=dto.FormatResultDTO} "成功"
// @Router /api/format [post]
func (h *FormatHandler) Format(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.FormatRequest{}

	// 参数绑定和验证
	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("FormatHandler.Format.BindAndValid err", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.Errors()...).WithData(errs.Maps()))
		return
	}

	ctx := c.Request.Context()

	result, err := h.App.RenderService.Format(ctx, params.Text)
	if err != nil {
		h.logError(ctx, "FormatHandler.Format", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(result))
}

// logError 记录错误日志，包含 Trace ID
func (h *FormatHandler) logError(ctx context.Context, method string, err error) {
	traceID := middleware.GetTraceID(ctx)
	h.App.Logger().Error(method,
		zap.Error(err),
		zap.String("traceId", traceID),
	)
}
