package api_router

import (
	"errors"
	"io/fs"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/haierkeys/markdown-format-service/internal/app"
	"github.com/haierkeys/markdown-format-service/internal/dto"
	"github.com/haierkeys/markdown-format-service/internal/middleware"
	pkgapp "github.com/haierkeys/markdown-format-service/pkg/app"
	"github.com/haierkeys/markdown-format-service/pkg/code"
	"github.com/haierkeys/markdown-format-service/pkg/convert"
	"go.uber.org/zap"
)

// DashboardHandler 仪表盘路由处理器
// 仪表盘端点保持历史版本的 JSON 响应格式与状态码，不走统一响应结构
type DashboardHandler struct {
	*Handler
	frontend fs.FS
}

// NewDashboardHandler 创建 DashboardHandler 实例
// frontend 为内嵌的仪表盘页面文件系统
func NewDashboardHandler(a *app.App, frontend fs.FS) *DashboardHandler {
	return &DashboardHandler{
		Handler:  NewHandler(a),
		frontend: frontend,
	}
}

// Home 返回仪表盘页面
func (h *DashboardHandler) Home(c *gin.Context) {
	h.servePage(c, "index.html")
}

// Instructions 返回使用说明页面
func (h *DashboardHandler) Instructions(c *gin.Context) {
	h.servePage(c, "instructions.html")
}

// Dispatch 处理仪表盘表单提交，按表单字段分发意图
// 无法识别的提交返回仪表盘页面本身
func (h *DashboardHandler) Dispatch(c *gin.Context) {
	if _, ok := c.GetPostForm("format"); ok {
		h.format(c)
		return
	}
	if _, ok := c.GetPostForm("export_word"); ok {
		h.export(c, dto.ContentTypeWord)
		return
	}
	if _, ok := c.GetPostForm("export_pdf"); ok {
		h.export(c, dto.ContentTypePDF)
		return
	}
	h.Home(c)
}

// format 格式化文本并保存历史记录
func (h *DashboardHandler) format(c *gin.Context) {
	text := strings.TrimSpace(c.PostForm("raw_text"))
	if text == "" {
		c.JSON(http.StatusOK, gin.H{"error": "Please enter some text to format."})
		return
	}

	ctx := c.Request.Context()

	result, err := h.App.RenderService.Format(ctx, text)
	if err != nil {
		h.logError(c, "DashboardHandler.format", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}

	c.JSON(http.StatusOK, result)
}

// export 将格式化结果导出为文档并以附件返回
func (h *DashboardHandler) export(c *gin.Context, contentType string) {
	html := c.PostForm("formatted_html")
	if html == "" {
		c.JSON(http.StatusOK, gin.H{"error": "No content to export. Please format text first."})
		return
	}

	filename := strings.TrimSpace(c.PostForm("file_name"))
	ctx := c.Request.Context()

	var (
		file *dto.ExportFileDTO
		err  error
	)
	if contentType == dto.ContentTypeWord {
		file, err = h.App.ExportService.Word(ctx, html, filename)
	} else {
		file, err = h.App.ExportService.PDF(ctx, html, filename)
	}
	if err != nil {
		h.logError(c, "DashboardHandler.export", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "An error occurred while exporting: " + errDetail(err)})
		return
	}

	h.App.Logger().Info("dashboard export",
		zap.String("file", file.Name),
		zap.Int("size", len(file.Data)),
		zap.String("traceId", middleware.GetTraceIDFromGin(c)),
	)

	c.Header("Content-Disposition", `attachment; filename="`+file.Name+`"`)
	c.Data(http.StatusOK, file.ContentType, file.Data)
}

// LoadHistory 加载一条历史记录
func (h *DashboardHandler) LoadHistory(c *gin.Context) {
	id := convert.StrTo(c.Param("id")).MustInt64()

	ctx := c.Request.Context()

	entry, err := h.App.HistoryService.Get(ctx, id)
	if err != nil {
		if errors.Is(err, code.ErrorHistoryNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Item not found"})
			return
		}
		h.logError(c, "DashboardHandler.LoadHistory", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"raw_text":       entry.RawText,
		"formatted_html": entry.FormattedHTML,
	})
}

// DeleteHistory 删除一条历史记录，记录不存在同样返回成功
func (h *DashboardHandler) DeleteHistory(c *gin.Context) {
	id := convert.StrTo(c.Param("id")).MustInt64()

	ctx := c.Request.Context()

	h.App.Logger().Info("dashboard delete history",
		zap.Int64("id", id),
		zap.String("traceId", middleware.GetTraceIDFromGin(c)),
	)

	if err := h.App.HistoryService.Delete(ctx, id); err != nil {
		h.logError(c, "DashboardHandler.DeleteHistory", err)
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": errDetail(err)})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// DeleteAllHistory 清空历史记录
func (h *DashboardHandler) DeleteAllHistory(c *gin.Context) {
	ctx := c.Request.Context()

	h.App.Logger().Info("dashboard delete all history",
		zap.String("traceId", middleware.GetTraceIDFromGin(c)),
	)

	deleted, err := h.App.HistoryService.DeleteAll(ctx)
	if err != nil {
		h.logError(c, "DashboardHandler.DeleteAllHistory", err)
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": errDetail(err)})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok", "deleted": deleted})
}

// HistoryPage 分页获取历史记录摘要
func (h *DashboardHandler) HistoryPage(c *gin.Context) {
	page := pkgapp.GetPage(c)

	ctx := c.Request.Context()

	result, err := h.App.HistoryService.Page(ctx, page)
	if err != nil {
		h.logError(c, "DashboardHandler.HistoryPage", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}

	c.JSON(http.StatusOK, result)
}

// FilterHistory 按关键字检索历史记录
func (h *DashboardHandler) FilterHistory(c *gin.Context) {
	ctx := c.Request.Context()

	result, err := h.App.HistoryService.Filter(ctx, c.Query("q"))
	if err != nil {
		h.logError(c, "DashboardHandler.FilterHistory", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}

	c.JSON(http.StatusOK, result)
}

// servePage 输出内嵌页面
func (h *DashboardHandler) servePage(c *gin.Context, name string) {
	data, err := fs.ReadFile(h.frontend, name)
	if err != nil {
		h.App.Logger().Error("DashboardHandler.servePage err",
			zap.String("page", name), zap.Error(err))
		c.String(http.StatusInternalServerError, "page not available")
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", data)
}

// logError 记录错误日志，包含 Trace ID
func (h *DashboardHandler) logError(c *gin.Context, method string, err error) {
	h.App.Logger().Error(method,
		zap.Error(err),
		zap.String("traceId", middleware.GetTraceIDFromGin(c)),
	)
}

// errDetail 提取错误的详情文本，用于仪表盘的历史版本响应格式
func errDetail(err error) string {
	var codeErr *code.Code
	if errors.As(err, &codeErr) && codeErr.HaveDetails() {
		return strings.Join(codeErr.Details(), ",")
	}
	return err.Error()
}
