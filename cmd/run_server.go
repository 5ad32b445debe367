package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	internalApp "github.com/haierkeys/markdown-format-service/internal/app"
	"github.com/haierkeys/markdown-format-service/internal/dao"
	"github.com/haierkeys/markdown-format-service/internal/routers"
	"github.com/haierkeys/markdown-format-service/internal/task"
	"github.com/haierkeys/markdown-format-service/internal/upgrade"
	"github.com/haierkeys/markdown-format-service/pkg/logger"
	"github.com/haierkeys/markdown-format-service/pkg/safe_close"
	"github.com/haierkeys/markdown-format-service/pkg/tracer"
	"github.com/haierkeys/markdown-format-service/pkg/validator"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/locales/en"
	"github.com/go-playground/locales/zh"
	ut "github.com/go-playground/universal-translator"
	validatorV10 "github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	zh_translations "github.com/go-playground/validator/v10/translations/zh"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// defaultSecretKeys 视为未修改的默认密钥集合
var defaultSecretKeys = []string{
	"markdown-format-Auth-Token",
	"",
}

// DefaultShutdownTimeout 应用容器优雅关闭的超时时间
const DefaultShutdownTimeout = 30 * time.Second

type Server struct {
	logger            *zap.Logger
	config            *internalApp.AppConfig
	db                *gorm.DB
	ut                *ut.UniversalTranslator
	httpServer        *http.Server
	privateHttpServer *http.Server
	sc                *safe_close.SafeClose
	app               *internalApp.App
}

// checkSecurityConfig 使用默认密钥启动时同时往控制台和日志里输出警告
func checkSecurityConfig(cfg *internalApp.AppConfig, lg *zap.Logger) {
	isDefault := false
	for _, key := range defaultSecretKeys {
		if cfg.Security.AuthTokenKey == key {
			isDefault = true
			break
		}
	}
	if !isDefault {
		return
	}

	fmt.Println()
	fmt.Println(strings.Repeat("=", 60))
	fmt.Println("⚠️  SECURITY WARNING: Using default secret key!")
	fmt.Println()
	fmt.Println("Please modify 'security.auth-token-key' in config.yaml")
	fmt.Println("Generate a secure key with:")
	fmt.Println("  openssl rand -base64 32")
	fmt.Println(strings.Repeat("=", 60))
	fmt.Println()

	if lg != nil {
		lg.Warn("Using default secret key - please change security.auth-token-key in config.yaml")
	}
}

func NewServer(runEnv *runFlags) (*Server, error) {
	appConfig, configRealpath, err := internalApp.LoadConfig(runEnv.config)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	// 命令行 mode 优先于配置文件，都没有时按发布模式跑
	runMode := runEnv.runMode
	if runMode == "" {
		runMode = appConfig.Server.RunMode
	}
	if runMode != "" {
		gin.SetMode(runMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &Server{
		config: appConfig,
		sc:     safe_close.NewSafeClose(),
	}

	if err := initLoggerWithConfig(s, appConfig); err != nil {
		return nil, fmt.Errorf("initLogger: %w", err)
	}

	checkSecurityConfig(appConfig, s.logger)

	// 配置了 Jaeger 上报地址时注册全局 Tracer
	if agent := appConfig.Tracer.JaegerAgent; agent != "" {
		_, closer, err := tracer.NewJaegerTracer(internalApp.Name, agent)
		if err != nil {
			s.logger.Warn("jaeger tracer init failed", zap.Error(err))
		} else {
			s.sc.Attach(func(done func(), closeSignal <-chan struct{}) {
				defer done()
				<-closeSignal
				_ = closer.Close()
			})
		}
	}

	if err := initStorageWithConfig(appConfig); err != nil {
		return nil, fmt.Errorf("initStorage: %w", err)
	}

	db, err := initDatabaseWithConfig(appConfig, s.logger)
	if err != nil {
		return nil, fmt.Errorf("initDatabase: %w", err)
	}
	s.db = db

	app, err := internalApp.NewApp(appConfig, s.logger, db)
	if err != nil {
		return nil, fmt.Errorf("failed to create app container: %w", err)
	}
	s.app = app

	// 启动前自动执行数据迁移
	if err := upgrade.Execute(app); err != nil {
		return nil, fmt.Errorf("upgrade.Execute: %w", err)
	}

	uni, err := initValidatorWithLogger(s.logger)
	if err != nil {
		return nil, fmt.Errorf("initValidator: %w", err)
	}
	s.ut = uni

	validator.RegisterCustom()

	initScheduler(s)

	// 配置启用时自动开启 ngrok 隧道
	if appConfig.Ngrok.Enabled {
		if err := s.app.NgrokService.Start(context.Background(), appConfig.Server.HttpPort); err != nil {
			s.logger.Warn("ngrok tunnel start failed", zap.Error(err))
		}
	}

	banner := `
    __  ___ ____       ______                                __
   /  |/  // __ \     / ____/____   _____ ____ ___   ____ _ / /_
  / /|_/ // / / /    / /_   / __ \ / ___// __  __ \ / __  // __/
 / /  / // /_/ /    / __/  / /_/ // /   / / / / / // /_/ // /_
/_/  /_//_____/    /_/     \____//_/   /_/ /_/ /_/ \__,_/ \__/    `
	s.logger.Warn(fmt.Sprintf("%s\n\n%s v%s\nGit: %s\nBuildTime: %s\n", banner, internalApp.Name, internalApp.Version, internalApp.GitTag, internalApp.BuildTime))

	s.logger.Warn("config loaded", zap.String("path", configRealpath))

	if httpAddr := appConfig.Server.HttpPort; httpAddr != "" {
		s.logger.Warn("api_router", zap.String("config.server.HttpPort", httpAddr))
		s.httpServer = &http.Server{
			Addr:           httpAddr,
			Handler:        routers.NewRouter(frontendFiles, s.app, s.ut),
			ReadTimeout:    time.Duration(appConfig.Server.ReadTimeout) * time.Second,
			WriteTimeout:   time.Duration(appConfig.Server.WriteTimeout) * time.Second,
			MaxHeaderBytes: 1 << 20,
		}
		attachHTTPServer(s, s.httpServer, "api")
	}

	// 私有服务承载 pprof、expvar 等调试路由，只应监听内网地址
	if privateAddr := appConfig.Server.PrivateHttpListen; privateAddr != "" {
		s.logger.Info("api_router", zap.String("config.server.PrivateHttpListen", privateAddr))
		s.privateHttpServer = &http.Server{
			Addr:           privateAddr,
			Handler:        routers.NewPrivateRouterWithApp(s.app),
			ReadTimeout:    time.Duration(appConfig.Server.ReadTimeout) * time.Second,
			WriteTimeout:   time.Duration(appConfig.Server.WriteTimeout) * time.Second,
			MaxHeaderBytes: 1 << 20,
		}
		attachHTTPServer(s, s.privateHttpServer, "private api")
	}

	// 应用容器最后关：等 HTTP 服务器都停了再放数据库和后台队列
	s.sc.Attach(func(done func(), closeSignal <-chan struct{}) {
		defer done()
		<-closeSignal
		if s.app == nil {
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), DefaultShutdownTimeout)
		defer cancel()

		if err := s.app.Shutdown(ctx); err != nil {
			s.logger.Error("failed to shutdown app container", zap.Error(err))
		} else {
			s.logger.Info("App container shutdown gracefully")
		}
	})

	return s, nil
}

// attachHTTPServer 把 HTTP 服务器挂进关闭链：ListenAndServe 意外退出时触发整体关停，
// 收到关闭信号时限时优雅停机
func attachHTTPServer(s *Server, srv *http.Server, name string) {
	s.sc.Attach(func(done func(), closeSignal <-chan struct{}) {
		defer done()

		errChan := make(chan error, 1)
		go func() {
			errChan <- srv.ListenAndServe()
		}()

		select {
		case err := <-errChan:
			s.logger.Error(name+" service err", zap.Error(err))
			s.sc.SendCloseSignal(err)
		case <-closeSignal:
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := srv.Shutdown(ctx); err != nil {
				s.logger.Error(name+" service shutdown error", zap.Error(err))
			}
		}
	})
}

func initScheduler(s *Server) {
	manager := task.NewManager(s.logger, s.sc, s.app)

	if err := manager.RegisterTasks(); err != nil {
		s.logger.Error("failed to register tasks", zap.Error(err))
		return
	}

	manager.Start()
}

// initLoggerWithConfig 初始化日志器
func initLoggerWithConfig(s *Server, cfg *internalApp.AppConfig) error {
	lg, err := logger.NewLogger(logger.Config{
		Level:      cfg.Log.Level,
		File:       cfg.Log.File,
		Production: cfg.Log.Production,
	})
	if err != nil {
		return fmt.Errorf("failed to init logger: %w", err)
	}
	s.logger = lg

	return nil
}

// initValidatorWithLogger 初始化请求验证器并注册中英文翻译，字段名按 json 标签报错
func initValidatorWithLogger(lg *zap.Logger) (*ut.UniversalTranslator, error) {
	customValidator := validator.NewCustomValidator()
	customValidator.Engine()
	binding.Validator = customValidator

	var uni *ut.UniversalTranslator

	validate, ok := binding.Validator.Engine().(*validatorV10.Validate)
	if ok {
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})

		uni = ut.New(en.New(), en.New(), zh.New())

		zhTran, _ := uni.GetTranslator("zh")
		enTran, _ := uni.GetTranslator("en")

		if err := zh_translations.RegisterDefaultTranslations(validate, zhTran); err != nil {
			return nil, err
		}
		if err := en_translations.RegisterDefaultTranslations(validate, enTran); err != nil {
			return nil, err
		}
	}

	return uni, nil
}

// initDatabaseWithConfig 初始化数据库连接
func initDatabaseWithConfig(cfg *internalApp.AppConfig, lg *zap.Logger) (*gorm.DB, error) {
	dbConfig := dao.DatabaseConfig{
		Type:            cfg.Database.Type,
		Path:            cfg.Database.Path,
		UserName:        cfg.Database.UserName,
		Password:        cfg.Database.Password,
		Host:            cfg.Database.Host,
		Name:            cfg.Database.Name,
		TablePrefix:     cfg.Database.TablePrefix,
		AutoMigrate:     cfg.Database.AutoMigrate,
		Charset:         cfg.Database.Charset,
		ParseTime:       cfg.Database.ParseTime,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		ConnMaxIdleTime: cfg.Database.ConnMaxIdleTime,
		RunMode:         cfg.Server.RunMode,
	}

	return dao.NewDBEngineWithConfig(dbConfig, lg)
}

// initStorageWithConfig 建出日志、临时文件和数据库文件所在目录
func initStorageWithConfig(cfg *internalApp.AppConfig) error {
	dirs := []string{
		filepath.Dir(cfg.Log.File),
		cfg.App.TempPath,
		filepath.Dir(cfg.Database.Path),
	}

	for _, dir := range dirs {
		if dir == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0754); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

// GetApp 获取应用容器
func (s *Server) GetApp() *internalApp.App {
	return s.app
}

// GetConfig 获取应用配置
func (s *Server) GetConfig() *internalApp.AppConfig {
	return s.config
}
