// Package routers 组装 HTTP 路由
package routers

import (
	"embed"
	"io/fs"
	"net/http"
	"time"

	_ "github.com/haierkeys/markdown-format-service/docs"
	"github.com/haierkeys/markdown-format-service/internal/app"
	"github.com/haierkeys/markdown-format-service/internal/middleware"
	"github.com/haierkeys/markdown-format-service/internal/routers/api_router"
	"github.com/haierkeys/markdown-format-service/pkg/limiter"

	"github.com/gin-gonic/gin"
	ut "github.com/go-playground/universal-translator"
)

// methodLimiters 按路由路径限流，渲染与导出相对开销大，桶更小
var methodLimiters = limiter.NewMethodLimiter().AddBuckets(
	limiter.BucketRule{
		Key:          "/api/format",
		FillInterval: time.Second,
		Capacity:     20,
		Quantum:      20,
	},
	limiter.BucketRule{
		Key:          "/api/export/email",
		FillInterval: time.Second,
		Capacity:     5,
		Quantum:      5,
	},
	limiter.BucketRule{
		Key:          "/api/admin/login",
		FillInterval: time.Second,
		Capacity:     10,
		Quantum:      10,
	},
)

// NewRouter 创建公开监听的路由
// 根路径挂载保持历史响应格式的仪表盘端点，/api 分组使用统一响应结构
func NewRouter(frontendFiles embed.FS, appContainer *app.App, uni *ut.UniversalTranslator) *gin.Engine {

	// 获取配置
	cfg := appContainer.Config()
	logger := appContainer.Logger()

	frontendSub, _ := fs.Sub(frontendFiles, "frontend")
	frontendStatic, _ := fs.Sub(frontendFiles, "frontend/static")

	r := gin.New()

	// 创建 Handlers（注入 App Container）
	dashboardHandler := api_router.NewDashboardHandler(appContainer, frontendSub)
	healthHandler := api_router.NewHealthHandler(appContainer)
	versionHandler := api_router.NewVersionHandler(appContainer)
	sysInfoHandler := api_router.NewSysInfoHandler(appContainer)
	formatHandler := api_router.NewFormatHandler(appContainer)
	historyHandler := api_router.NewHistoryHandler(appContainer)
	exportHandler := api_router.NewExportHandler(appContainer)
	adminHandler := api_router.NewAdminHandler(appContainer)

	cacheMiddleware := func(c *gin.Context) {
		// 设置强缓存，缓存一年
		c.Header("Cache-Control", "public, s-maxage=31536000, max-age=31536000, must-revalidate")
		c.Next()
	}
	r.Group("/static", cacheMiddleware).StaticFS("/", http.FS(frontendStatic))

	// 仪表盘路由，响应格式与历史版本保持一致
	dashboard := r.Group("/")
	dashboard.Use(middleware.TraceMiddlewareWithConfig(cfg.Tracer.Enabled, cfg.Tracer.Header))
	dashboard.Use(middleware.Metrics())
	dashboard.Use(middleware.AccessLogWithLogger(logger))
	dashboard.Use(middleware.RecoveryWithLogger(logger))
	{
		dashboard.GET("/", dashboardHandler.Home)
		dashboard.POST("/", dashboardHandler.Dispatch)
		dashboard.GET("/instructions", dashboardHandler.Instructions)
		dashboard.GET("/load_history/:id", dashboardHandler.LoadHistory)
		dashboard.POST("/delete_history/:id", dashboardHandler.DeleteHistory)
		dashboard.POST("/delete_all_history", dashboardHandler.DeleteAllHistory)
		dashboard.GET("/history_page", dashboardHandler.HistoryPage)
		dashboard.GET("/filter_history", dashboardHandler.FilterHistory)
	}

	api := r.Group("/api")
	{
		api.Use(middleware.AppInfoWithConfig(app.Name, appContainer.Version().Version))
		api.Use(gin.Logger())
		api.Use(middleware.TraceMiddlewareWithConfig(cfg.Tracer.Enabled, cfg.Tracer.Header)) // Trace ID 中间件
		api.Use(middleware.Metrics())
		api.Use(middleware.RateLimiter(methodLimiters))
		api.Use(middleware.ContextTimeout(time.Duration(cfg.App.DefaultContextTimeout) * time.Second))
		api.Use(middleware.Cors())
		api.Use(middleware.LangWithTranslator(uni))
		api.Use(middleware.AccessLogWithLogger(logger))
		api.Use(middleware.RecoveryWithLogger(logger))

		// 公开接口
		api.GET("/health", healthHandler.Check)
		api.GET("/version", versionHandler.ServerVersion)
		api.GET("/sysinfo", sysInfoHandler.Info)
		api.POST("/format", formatHandler.Format)
		api.GET("/history", historyHandler.List)
		api.GET("/history/diff", historyHandler.Diff)
		api.GET("/history/:id", historyHandler.Get)
		api.POST("/export/email", exportHandler.Email)

		// 管理员登录无需鉴权
		api.POST("/admin/login", adminHandler.Login)

		// 管理员接口
		admin := api.Group("/admin")
		admin.Use(middleware.AdminAuthTokenWithConfig(cfg.Security.AuthTokenKey))
		{
			admin.GET("/config", adminHandler.GetConfig)
			admin.POST("/config", adminHandler.UpdateConfig)
			admin.GET("/tunnel", adminHandler.TunnelStatus)
			admin.POST("/tunnel", adminHandler.Tunnel)
			admin.POST("/restart", adminHandler.Restart)
			admin.GET("/gc", adminHandler.GC)
		}
	}

	r.Use(middleware.Cors())
	r.NoRoute(middleware.NoFound())

	return r
}
