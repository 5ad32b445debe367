package api_router

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/haierkeys/markdown-format-service/internal/app"
	"github.com/haierkeys/markdown-format-service/internal/dto"
	"github.com/haierkeys/markdown-format-service/internal/middleware"
	pkgapp "github.com/haierkeys/markdown-format-service/pkg/app"
	"github.com/haierkeys/markdown-format-service/pkg/code"
	"github.com/haierkeys/markdown-format-service/pkg/convert"
	apperrors "github.com/haierkeys/markdown-format-service/pkg/errors"
	"go.uber.org/zap"
)

// HistoryHandler 历史记录 API 路由处理器
// 使用 App Container 注入依赖
type HistoryHandler struct {
	*Handler
}

// NewHistoryHandler 创建 HistoryHandler 实例
func NewHistoryHandler(a *app.App) *HistoryHandler {
	return &HistoryHandler{
		Handler: NewHandler(a),
	}
}

// List 分页获取历史记录列表
// @Summary 获取历史记录列表
// @Description 分页获取格式化历史记录，包含完整的原文与渲染结果
// @Tags 历史记录
// @Produce json
// @Param page query int false "页码"
// @Param pageSize query int false "每页数量"
// @Success 200 {object} pkgapp.Res{data=pkgapp.ListRes{list=[]dto.HistoryDTO}} "成功"
// @Router /api/history [get]
func (h *HistoryHandler) List(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	cfg := h.App.Config()

	page := pkgapp.GetPage(c)
	pageSize := pkgapp.GetPageSizeWithConfig(c, pkgapp.PaginationConfig{
		DefaultPageSize: cfg.App.DefaultPageSize,
		MaxPageSize:     cfg.App.MaxPageSize,
	})

	ctx := c.Request.Context()

	list, count, err := h.App.HistoryService.List(ctx, page, pageSize)
	if err != nil {
		h.logError(ctx, "HistoryHandler.List", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponseList(code.Success, list, int(count))
}

// Get 获取单条历史记录
// @Summary 获取历史记录详情
// @Description 根据 ID 获取一条历史记录的原文与渲染结果
// @Tags 历史记录
// @Produce json
// @Param id path int true "历史记录 ID"
// @Success 200 {object} pkgapp.Res{data=dto.HistoryDTO} "成功"
// @Router /api/history/{id} [get]
func (h *HistoryHandler) Get(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	id := convert.StrTo(c.Param("id")).MustInt64()
	if id <= 0 {
		response.ToResponse(code.ErrorInvalidParams.WithDetails("id must be a positive integer"))
		return
	}

	ctx := c.Request.Context()

	entry, err := h.App.HistoryService.Get(ctx, id)
	if err != nil {
		h.logError(ctx, "HistoryHandler.Get", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(entry))
}

// Diff 对比两条历史记录
// @Summary 对比两条历史记录
// @Description 对比两条历史记录的原文，返回差异片段
// @Tags 历史记录
// @Produce json
// @Param params query dto.HistoryDiffRequest true "对比参数"
// @Success 200 {object} pkgapp.Res{data=dto.HistoryDiffDTO} "成功"
// @Router /api/history/diff [get]
func (h *HistoryHandler) Diff(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.HistoryDiffRequest{}

	// 参数绑定和验证
	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("HistoryHandler.Diff.BindAndValid err", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.Errors()...).WithData(errs.Maps()))
		return
	}

	ctx := c.Request.Context()

	diff, err := h.App.HistoryService.Diff(ctx, params.From, params.To)
	if err != nil {
		h.logError(ctx, "HistoryHandler.Diff", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(diff))
}

// logError 记录错误日志，包含 Trace ID
func (h *HistoryHandler) logError(ctx context.Context, method string, err error) {
	traceID := middleware.GetTraceID(ctx)
	h.App.Logger().Error(method,
		zap.Error(err),
		zap.String("traceId", traceID),
	)
}
