package routers

import (
	"net/http"
	"net/http/pprof"

	"github.com/haierkeys/markdown-format-service/internal/app"
	"github.com/haierkeys/markdown-format-service/internal/mcp"
	"github.com/haierkeys/markdown-format-service/internal/middleware"
	"github.com/haierkeys/markdown-format-service/internal/routers/api_router"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

// NewPrivateRouterWithApp 创建完整私有路由：监控指标、swagger 文档和 MCP 服务。
// 只应挂在内网监听地址上
func NewPrivateRouterWithApp(appContainer *app.App) *gin.Engine {
	cfg := appContainer.Config()

	r := NewPrivateRouterWithLogger(cfg.Server.RunMode, appContainer.Logger())

	// swagger 文档
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// MCP 服务挂载，按配置可加令牌校验
	if cfg.MCP.Enabled {
		mcpHandler := mcp.NewServer(appContainer).HTTPHandler()
		g := r.Group(cfg.MCP.Path)
		if cfg.MCP.AuthToken != "" {
			g.Use(middleware.SimpleAuthTokenWithConfig(cfg.MCP.AuthToken))
		}
		g.Any("", gin.WrapH(mcpHandler))
		g.Any("/*any", gin.WrapH(mcpHandler))
	}

	return r
}

// NewPrivateRouterWithLogger 创建私有基础路由：expvar 和 prometheus 指标，debug 模式下再开 pprof
func NewPrivateRouterWithLogger(runMode string, logger *zap.Logger) *gin.Engine {
	r := gin.New()

	if runMode == "debug" {
		r.Use(gin.Recovery())
	} else {
		r.Use(middleware.RecoveryWithLogger(logger))
	}

	r.GET("/debug/vars", api_router.Expvar)
	r.GET("metrics", gin.WrapH(promhttp.Handler()))

	if runMode == "debug" {
		registerPprof(r.Group("pprof"))
	}

	return r
}

// registerPprof 注册 pprof 路由，命名 profile 统一走 pprof.Handler
func registerPprof(g *gin.RouterGroup) {
	g.GET("/", wrapHTTP(pprof.Index))
	g.GET("/cmdline", wrapHTTP(pprof.Cmdline))
	g.GET("/profile", wrapHTTP(pprof.Profile))
	g.GET("/symbol", wrapHTTP(pprof.Symbol))
	g.POST("/symbol", wrapHTTP(pprof.Symbol))
	g.GET("/trace", wrapHTTP(pprof.Trace))

	for _, name := range []string{"allocs", "block", "goroutine", "heap", "mutex", "threadcreate"} {
		g.GET("/"+name, wrapHTTP(pprof.Handler(name).ServeHTTP))
	}
}

func wrapHTTP(h http.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}
