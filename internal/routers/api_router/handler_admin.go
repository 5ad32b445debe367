package api_router

import (
	"context"
	"os"
	"runtime"
	"runtime/debug"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/haierkeys/markdown-format-service/internal/app"
	"github.com/haierkeys/markdown-format-service/internal/dto"
	"github.com/haierkeys/markdown-format-service/internal/middleware"
	pkgapp "github.com/haierkeys/markdown-format-service/pkg/app"
	"github.com/haierkeys/markdown-format-service/pkg/code"
	apperrors "github.com/haierkeys/markdown-format-service/pkg/errors"
	"github.com/haierkeys/markdown-format-service/pkg/util"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// AdminHandler 管理接口 API 路由处理器
// 使用 App Container 注入依赖
type AdminHandler struct {
	*Handler
}

// NewAdminHandler 创建 AdminHandler 实例
func NewAdminHandler(a *app.App) *AdminHandler {
	return &AdminHandler{
		Handler: NewHandler(a),
	}
}

// adminConfig Admin configuration structure (admin interface)
// adminConfig 管理员可调整的运行配置子集
type adminConfig struct {
	FontSet           string   `json:"fontSet" form:"fontSet"`                     // Font set // 字体设置
	RenderExtensions  []string `json:"renderExtensions" form:"renderExtensions"`   // Markdown extensions // Markdown 扩展
	RenderHardWraps   bool     `json:"renderHardWraps" form:"renderHardWraps"`     // Newline to <br> // 换行渲染为 <br>
	RenderUnsafe      bool     `json:"renderUnsafe" form:"renderUnsafe"`           // Raw HTML passthrough // 原样输出内嵌 HTML
	HistoryRetention  string   `json:"historyRetention" form:"historyRetention"`   // History retention // 历史保留时长
	HistoryMaxRows    int      `json:"historyMaxRows" form:"historyMaxRows"`       // History row cap // 历史条数上限
	CleanupCron       string   `json:"cleanupCron" form:"cleanupCron"`             // Cleanup schedule // 清理任务计划
	TempFileTTL       string   `json:"tempFileTtl" form:"tempFileTtl"`             // Temp file TTL // 临时文件保留时长
	ExportTimeout     string   `json:"exportTimeout" form:"exportTimeout"`         // Export timeout // 导出超时
	ArchiveEnabled    bool     `json:"archiveEnabled" form:"archiveEnabled"`       // Archive toggle // 归档开关
	ArchiveGitEnabled bool     `json:"archiveGitEnabled" form:"archiveGitEnabled"` // Git archive toggle // Git 归档开关
	MailEnabled       bool     `json:"mailEnabled" form:"mailEnabled"`             // Mail delivery toggle // 邮件发送开关
	TokenExpiry       string   `json:"tokenExpiry" form:"tokenExpiry"`             // Token expiry // Token 有效期
}

// Login 管理员登录
// @Summary 管理员登录
// @Description 校验管理员密码，签发鉴权 Token
// @Tags 管理
// @Accept json
// @Produce json
// @Param params body dto.AdminLoginRequest true "登录参数"
// @Success 200 {object} pkgapp.Res{data=dto.AdminTokenDTO} "成功"
// @Router /api/admin/login [post]
func (h *AdminHandler) Login(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.AdminLoginRequest{}

	// 参数绑定和验证
	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("AdminHandler.Login.BindAndValid err", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.Errors()...).WithData(errs.Maps()))
		return
	}

	ctx := c.Request.Context()

	token, err := h.App.AdminService.Login(ctx, params.Password, pkgapp.GetRequestIP(c))
	if err != nil {
		h.logError(ctx, "AdminHandler.Login", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(token))
}

// GetConfig 获取管理配置
// @Summary 获取管理配置
// @Description 获取管理员可调整的运行配置子集，需要管理员 Token
// @Tags 管理
// @Security AdminAuthToken
// @Param Authorization header string true "鉴权 Token"
// @Produce json
// @Success 200 {object} pkgapp.Res{data=adminConfig} "成功"
// @Router /api/admin/config [get]
func (h *AdminHandler) GetConfig(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	cfg := h.App.Config()

	data := &adminConfig{
		FontSet:           cfg.WebGUI.FontSet,
		RenderExtensions:  cfg.Render.Extensions,
		RenderHardWraps:   cfg.Render.HardWraps,
		RenderUnsafe:      cfg.Render.Unsafe,
		HistoryRetention:  cfg.App.HistoryRetention,
		HistoryMaxRows:    cfg.App.HistoryMaxRows,
		CleanupCron:       cfg.App.CleanupCron,
		TempFileTTL:       cfg.App.TempFileTTL,
		ExportTimeout:     cfg.Export.Timeout,
		ArchiveEnabled:    cfg.Archive.Enabled,
		ArchiveGitEnabled: cfg.Archive.Git.Enabled,
		MailEnabled:       cfg.Mail.Enabled,
		TokenExpiry:       cfg.Security.TokenExpiry,
	}

	response.ToResponse(code.Success.WithData(data))
}

// UpdateConfig 更新管理配置
// @Summary 更新管理配置
// @Description 修改管理员可调整的运行配置子集并持久化，需要管理员 Token
// @Tags 管理
// @Security AdminAuthToken
// @Param Authorization header string true "鉴权 Token"
// @Accept json
// @Produce json
// @Param params body adminConfig true "配置参数"
// @Success 200 {object} pkgapp.Res{data=adminConfig} "成功"
// @Router /api/admin/config [post]
func (h *AdminHandler) UpdateConfig(c *gin.Context) {
	params := &adminConfig{}
	response := pkgapp.NewResponse(c)
	cfg := h.App.Config()
	logger := h.App.Logger()

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		logger.Error("AdminHandler.UpdateConfig.BindAndValid err", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.Errors()...).WithData(errs.Maps()))
		return
	}

	// 时长类字段先做格式校验，避免把非法值写进配置文件
	for name, value := range map[string]string{
		"historyRetention": params.HistoryRetention,
		"tempFileTtl":      params.TempFileTTL,
		"exportTimeout":    params.ExportTimeout,
		"tokenExpiry":      params.TokenExpiry,
	} {
		if value == "" {
			continue
		}
		if _, err := util.ParseDuration(value); err != nil {
			logger.Warn("AdminHandler.UpdateConfig invalid duration",
				zap.String("field", name), zap.String("value", value))
			response.ToResponse(code.ErrorInvalidParams.WithDetails(name + " format invalid, e.g. 30m, 24h, 7d"))
			return
		}
	}

	if params.HistoryMaxRows < 0 {
		response.ToResponse(code.ErrorInvalidParams.WithDetails("historyMaxRows must not be negative"))
		return
	}

	if params.CleanupCron != "" {
		parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)
		if _, err := parser.Parse(params.CleanupCron); err != nil {
			logger.Warn("AdminHandler.UpdateConfig invalid cron expression",
				zap.String("value", params.CleanupCron))
			response.ToResponse(code.ErrorInvalidParams.WithDetails("cleanupCron format invalid, e.g. 13 3 * * *"))
			return
		}
	}

	// 更新配置
	cfg.WebGUI.FontSet = params.FontSet
	cfg.Render.Extensions = params.RenderExtensions
	cfg.Render.HardWraps = params.RenderHardWraps
	cfg.Render.Unsafe = params.RenderUnsafe
	cfg.App.HistoryRetention = params.HistoryRetention
	cfg.App.HistoryMaxRows = params.HistoryMaxRows
	cfg.App.CleanupCron = params.CleanupCron
	cfg.App.TempFileTTL = params.TempFileTTL
	cfg.Export.Timeout = params.ExportTimeout
	cfg.Archive.Enabled = params.ArchiveEnabled
	cfg.Archive.Git.Enabled = params.ArchiveGitEnabled
	cfg.Mail.Enabled = params.MailEnabled
	cfg.Security.TokenExpiry = params.TokenExpiry

	// 保存配置到文件
	if err := cfg.Save(); err != nil {
		logger.Error("AdminHandler.UpdateConfig.Save err", zap.Error(err))
		response.ToResponse(code.ErrorConfigSaveFailed)
		return
	}

	logger.Info("Config updated", zap.String("admin", pkgapp.GetAdminUser(c)))
	response.ToResponse(code.SuccessUpdate.WithData(params))
}

// TunnelStatus 获取隧道状态
// @Summary 获取隧道状态
// @Description 获取 ngrok 隧道的运行状态与公网地址，需要管理员 Token
// @Tags 管理
// @Security AdminAuthToken
// @Param Authorization header string true "鉴权 Token"
// @Produce json
// @Success 200 {object} pkgapp.Res{data=dto.TunnelDTO} "成功"
// @Router /api/admin/tunnel [get]
func (h *AdminHandler) TunnelStatus(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	url := h.App.NgrokService.TunnelURL()
	response.ToResponse(code.Success.WithData(dto.TunnelDTO{
		Running: url != "",
		URL:     url,
	}))
}

// Tunnel 启停隧道
// @Summary 启动或停止隧道
// @Description 启动或停止 ngrok 隧道，需要管理员 Token
// @Tags 管理
// @Security AdminAuthToken
// @Param Authorization header string true "鉴权 Token"
// @Accept json
// @Produce json
// @Param params body dto.TunnelActionRequest true "操作参数"
// @Success 200 {object} pkgapp.Res{data=dto.TunnelDTO} "成功"
// @Router /api/admin/tunnel [post]
func (h *AdminHandler) Tunnel(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.TunnelActionRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("AdminHandler.Tunnel.BindAndValid err", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.Errors()...).WithData(errs.Maps()))
		return
	}

	// 隧道生命周期长于本次请求，不使用请求上下文
	switch params.Action {
	case "start":
		if err := h.App.NgrokService.Start(context.Background(), h.App.Config().Server.HttpPort); err != nil {
			h.logError(c.Request.Context(), "AdminHandler.Tunnel start", err)
			apperrors.ErrorResponse(c, code.ErrorTunnelFail.WithDetails(err.Error()))
			return
		}
	case "stop":
		if err := h.App.NgrokService.Stop(context.Background()); err != nil {
			h.logError(c.Request.Context(), "AdminHandler.Tunnel stop", err)
			apperrors.ErrorResponse(c, code.ErrorTunnelFail.WithDetails(err.Error()))
			return
		}
	}

	url := h.App.NgrokService.TunnelURL()
	response.ToResponse(code.Success.WithData(dto.TunnelDTO{
		Running: url != "",
		URL:     url,
	}))
}

// Restart 触发服务重启
// @Summary 触发服务重启
// @Description 优雅重启服务进程，需要管理员 Token
// @Tags 管理
// @Security AdminAuthToken
// @Param Authorization header string true "鉴权 Token"
// @Produce json
// @Success 200 {object} pkgapp.Res "成功"
// @Router /api/admin/restart [post]
func (h *AdminHandler) Restart(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	currentBinary, err := os.Executable()
	if err != nil {
		response.ToResponse(code.Failed.WithDetails("Failed to get current executable path: " + err.Error()))
		return
	}

	h.App.Logger().Info("Restart triggered", zap.String("admin", pkgapp.GetAdminUser(c)))
	h.App.TriggerUpgrade(currentBinary)

	response.ToResponse(code.Success.WithDetails("Restart triggered, server is restarting..."))
}

// GC 手动触发垃圾回收并释放内存给操作系统
// @Summary 手动触发 GC
// @Description 手动运行 Go 运行时 GC 并释放内存给操作系统，需要管理员 Token
// @Tags 管理
// @Security AdminAuthToken
// @Param Authorization header string true "鉴权 Token"
// @Produce json
// @Success 200 {object} pkgapp.Res "成功"
// @Router /api/admin/gc [get]
func (h *AdminHandler) GC(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	logger := h.App.Logger()

	var mBefore, mAfter runtime.MemStats
	runtime.ReadMemStats(&mBefore)

	startTime := time.Now()
	// 触发 GC
	runtime.GC()
	// 释放内存给操作系统
	debug.FreeOSMemory()
	duration := time.Since(startTime)

	runtime.ReadMemStats(&mAfter)

	memReleased := int64(mBefore.Alloc) - int64(mAfter.Alloc)
	logger.Info("Manual GC completed",
		zap.Duration("duration", duration),
		zap.Uint64("allocBefore", mBefore.Alloc),
		zap.Uint64("allocAfter", mAfter.Alloc),
		zap.Int64("released", memReleased),
	)

	data := gin.H{
		"duration":    duration.String(),
		"allocBefore": mBefore.Alloc,
		"allocAfter":  mAfter.Alloc,
		"released":    memReleased,
	}

	response.ToResponse(code.Success.WithData(data).WithDetails("Manual GC completed successfully"))
}

// logError 记录错误日志，包含 Trace ID
func (h *AdminHandler) logError(ctx context.Context, method string, err error) {
	traceID := middleware.GetTraceID(ctx)
	h.App.Logger().Error(method,
		zap.Error(err),
		zap.String("traceId", traceID),
	)
}
