// Package app 提供应用容器，封装所有依赖和服务
package app

import (
	"os"
	"path/filepath"
	"time"

	"github.com/haierkeys/markdown-format-service/pkg/storage"
	"github.com/haierkeys/markdown-format-service/pkg/util"
	"github.com/haierkeys/markdown-format-service/pkg/workerpool"
	"github.com/haierkeys/markdown-format-service/pkg/writequeue"

	"github.com/creasty/defaults"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// AppConfig 应用配置
type AppConfig struct {
	File     string         `yaml:"-"` // 配置文件路径，不序列化
	Server   ServerConfig   `yaml:"server"`
	Log      LogConfig      `yaml:"log"`
	Database DatabaseConfig `yaml:"database"`
	App      AppSettings    `yaml:"app"`
	Render   RenderConfig   `yaml:"render"`
	Export   ExportConfig   `yaml:"export"`
	Archive  ArchiveConfig  `yaml:"archive"`
	Mail     MailConfig     `yaml:"mail"`
	MCP      MCPConfig      `yaml:"mcp"`
	Ngrok    NgrokConfig    `yaml:"ngrok"`
	Security SecurityConfig `yaml:"security"`
	Tracer   TracerConfig   `yaml:"tracer"`
	WebGUI   WebGUIConfig   `yaml:"webgui"`
}

// LogConfig 日志配置
type LogConfig struct {
	// Level 日志级别，参见 zapcore.ParseLevel
	Level string `yaml:"level" default:"warn"`
	// File 日志文件路径，默认为 stderr
	File string `yaml:"file" default:"storage/logs/log.log"`
	// Production 是否启用 JSON 输出
	Production bool `yaml:"production" default:"true"`
}

// ServerConfig 服务器配置
type ServerConfig struct {
	// RunMode 运行模式
	RunMode string `yaml:"run-mode" default:"release"`
	// HttpPort HTTP 端口
	HttpPort string `yaml:"http-port" default:":8000"`
	// ReadTimeout 读取超时（秒）
	ReadTimeout int `yaml:"read-timeout" default:"60"`
	// WriteTimeout 写入超时（秒）
	WriteTimeout int `yaml:"write-timeout" default:"60"`
	// PrivateHttpListen 私有 HTTP 监听地址
	PrivateHttpListen string `yaml:"private-http-listen" default:":8001"`
}

// SecurityConfig 安全配置
type SecurityConfig struct {
	AuthTokenKey string `yaml:"auth-token-key" default:"markdown-format-Auth-Token"`
	// TokenExpiry Token 过期时间，支持格式：7d（天）、24h（小时）、30m（分钟）
	TokenExpiry string `yaml:"token-expiry" default:"7d"`
	// AdminUser 管理员用户名
	AdminUser string `yaml:"admin-user" default:"admin"`
	// AdminPassword 管理员密码的 bcrypt 哈希，为空时管理接口不可登录
	AdminPassword string `yaml:"admin-password"`
}

// DatabaseConfig 数据库配置
type DatabaseConfig struct {
	// Type 数据库类型
	Type string `yaml:"type" default:"sqlite"`
	// Path SQLite 数据库文件路径
	Path string `yaml:"path" default:"storage/database/db.sqlite3"`
	// UserName 用户名
	UserName string `yaml:"username"`
	// Password 密码
	Password string `yaml:"password"`
	// Host 主机
	Host string `yaml:"host"`
	// Name 数据库名
	Name string `yaml:"name"`
	// TablePrefix 表前缀
	TablePrefix string `yaml:"table-prefix"`
	// AutoMigrate 是否启用自动迁移
	AutoMigrate bool `yaml:"auto-migrate" default:"true"`
	// Charset 字符集
	Charset string `yaml:"charset"`
	// ParseTime 是否解析时间
	ParseTime bool `yaml:"parse-time"`
	// MaxIdleConns 最大闲置连接数，默认 10
	MaxIdleConns int `yaml:"max-idle-conns" default:"10"`
	// MaxOpenConns 最大打开连接数，默认 100
	MaxOpenConns int `yaml:"max-open-conns" default:"100"`
	// ConnMaxLifetime 连接最大生命周期，支持格式：30m（分钟）、1h（小时），默认 30m
	ConnMaxLifetime string `yaml:"conn-max-lifetime" default:"30m"`
	// ConnMaxIdleTime 空闲连接最大生命周期，支持格式：10m（分钟）、1h（小时），默认 10m
	ConnMaxIdleTime string `yaml:"conn-max-idle-time" default:"10m"`
}

// AppSettings 应用设置
type AppSettings struct {
	// DefaultPageSize 默认页面大小
	DefaultPageSize int `yaml:"default-page-size" default:"10"`
	// MaxPageSize 最大页面大小
	MaxPageSize int `yaml:"max-page-size" default:"100"`
	// DefaultContextTimeout 默认上下文超时时间
	DefaultContextTimeout int `yaml:"default-context-timeout" default:"60"`
	// TempPath 导出临时文件路径
	TempPath string `yaml:"temp-path" default:"storage/temp"`
	// HistoryRetention 历史记录保留时长，支持格式：720h（小时）、30d（天），0 表示永久保留
	HistoryRetention string `yaml:"history-retention" default:"0"`
	// HistoryMaxRows 历史记录最大条数，超出时删除最旧的记录，0 表示不限制
	HistoryMaxRows int `yaml:"history-max-rows" default:"0"`
	// CleanupCron 历史清理任务的 cron 表达式，五段分钟级
	CleanupCron string `yaml:"cleanup-cron" default:"13 3 * * *"`
	// TempFileTTL 临时文件保留时长，超期由清理任务删除
	TempFileTTL string `yaml:"temp-file-ttl" default:"1h"`

	// Worker Pool 配置
	WorkerPoolMaxWorkers int `yaml:"worker-pool-max-workers" default:"100"`
	WorkerPoolQueueSize  int `yaml:"worker-pool-queue-size" default:"1000"`

	// Write Queue 配置
	WriteQueueCapacity int    `yaml:"write-queue-capacity" default:"100"`
	WriteQueueTimeout  string `yaml:"write-queue-timeout" default:"30s"`
	WriteQueueIdleTime string `yaml:"write-queue-idle-time" default:"10m"`
}

// RenderConfig Markdown 渲染配置
type RenderConfig struct {
	// HardWraps 单个换行渲染为 <br>
	HardWraps bool `yaml:"hard-wraps" default:"true"`
	// Unsafe 允许原样输出内嵌 HTML
	Unsafe bool `yaml:"unsafe" default:"true"`
	// Extensions 启用的语法扩展
	Extensions []string `yaml:"extensions" default:"[\"table\",\"footnote\",\"definition\"]"`
}

// ExportConfig 导出配置
type ExportConfig struct {
	// PDFEnginePath wkhtmltopdf 可执行文件路径，为空时从 PATH 查找
	PDFEnginePath string `yaml:"pdf-engine-path"`
	// Timeout 单次导出超时时间，支持格式：30s（秒）、1m（分钟）
	Timeout string `yaml:"timeout" default:"60s"`
}

// ArchiveConfig 导出归档配置
type ArchiveConfig struct {
	// Enabled 是否在导出后归档副本
	Enabled bool `yaml:"enabled" default:"false"`
	// Storage 归档存储后端
	Storage storage.Config `yaml:"storage"`
	// Git 归档 Git 仓库配置
	Git GitArchiveConfig `yaml:"git"`
}

// GitArchiveConfig Git 归档配置
type GitArchiveConfig struct {
	// Enabled 是否启用 Git 归档
	Enabled bool `yaml:"enabled" default:"false"`
	// RepoPath 本地仓库路径
	RepoPath string `yaml:"repo-path" default:"storage/archive-repo"`
	// RemoteURL 远端仓库地址，为空时仅本地提交
	RemoteURL string `yaml:"remote-url"`
	// Branch 分支名
	Branch string `yaml:"branch" default:"main"`
	// Username 推送认证用户名
	Username string `yaml:"username"`
	// Token 推送认证令牌
	Token string `yaml:"token"`
	// AuthorName 提交作者
	AuthorName string `yaml:"author-name" default:"markdown-format-service"`
	// AuthorEmail 提交邮箱
	AuthorEmail string `yaml:"author-email" default:"archive@localhost"`
}

// MailConfig 邮件发送配置
type MailConfig struct {
	// Enabled 是否启用邮件导出
	Enabled bool `yaml:"enabled" default:"false"`
	// Host SMTP 主机
	Host string `yaml:"host"`
	// Port SMTP 端口
	Port int `yaml:"port" default:"465"`
	// Username SMTP 用户名
	Username string `yaml:"username"`
	// Password SMTP 密码
	Password string `yaml:"password"`
	// From 发件人地址，为空时使用 Username
	From string `yaml:"from"`
	// SSL 是否使用 SSL 连接
	SSL bool `yaml:"ssl" default:"true"`
}

// MCPConfig MCP 服务配置
type MCPConfig struct {
	// Enabled 是否在私有端口挂载 MCP 服务
	Enabled bool `yaml:"enabled" default:"true"`
	// Path MCP 服务路径
	Path string `yaml:"path" default:"/mcp"`
	// AuthToken 访问令牌，为空时不校验
	AuthToken string `yaml:"auth-token"`
}

// NgrokConfig Ngrok 隧道配置
type NgrokConfig struct {
	// Enabled 是否启用隧道
	Enabled bool `yaml:"enabled" default:"false"`
	// AuthToken Ngrok 认证令牌
	AuthToken string `yaml:"auth-token"`
	// Domain 自定义域名，为空时使用随机域名
	Domain string `yaml:"domain"`
}

// WebGUIConfig Web GUI 配置
type WebGUIConfig struct {
	FontSet string `yaml:"font-set" json:"fontSet" default:"local"`
}

// TracerConfig 请求追踪配置
type TracerConfig struct {
	// Enabled 是否启用追踪
	Enabled bool `yaml:"enabled" default:"true"`
	// Header 追踪 ID 请求头名称，默认 X-Trace-ID
	Header string `yaml:"header" default:"X-Trace-ID"`
	// JaegerAgent Jaeger Agent 地址（如 127.0.0.1:6831），为空时不上报链路
	JaegerAgent string `yaml:"jaeger-agent"`
}

// LoadConfig 从文件加载配置
// 返回配置实例和配置文件的绝对路径
func LoadConfig(f string) (*AppConfig, string, error) {
	realpath, err := filepath.Abs(f)
	if err != nil {
		return nil, "", err
	}
	realpath = filepath.Clean(realpath)

	c := new(AppConfig)
	c.File = realpath

	// 设置默认值
	if err := defaults.Set(c); err != nil {
		return nil, realpath, errors.Wrap(err, "set default config failed")
	}

	file, err := os.ReadFile(realpath)
	if err != nil {
		return nil, realpath, errors.Wrap(err, "read config file failed")
	}

	err = yaml.Unmarshal(file, c)
	if err != nil {
		return nil, realpath, errors.Wrap(err, "parse config file failed")
	}

	// 再次设置默认值，以填充 YAML 中存在但值为空的字段
	// defaults.Set 只有在字段为该类型的零值时才会填充
	if err := defaults.Set(c); err != nil {
		return nil, realpath, errors.Wrap(err, "re-set default config failed")
	}

	return c, realpath, nil
}

// Save 保存配置到文件
func (c *AppConfig) Save() error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return errors.Wrap(err, "marshal config failed")
	}

	err = os.WriteFile(c.File, data, 0644)
	if err != nil {
		return errors.Wrap(err, "write config file failed")
	}

	return nil
}

// GetWorkerPoolConfig 获取 Worker Pool 配置
func (c *AppConfig) GetWorkerPoolConfig() workerpool.Config {
	cfg := workerpool.DefaultConfig()

	if c.App.WorkerPoolMaxWorkers > 0 {
		cfg.MaxWorkers = c.App.WorkerPoolMaxWorkers
	}
	if c.App.WorkerPoolQueueSize > 0 {
		cfg.QueueSize = c.App.WorkerPoolQueueSize
	}

	return cfg
}

// GetWriteQueueConfig 获取 Write Queue 配置
func (c *AppConfig) GetWriteQueueConfig() writequeue.Config {
	cfg := writequeue.DefaultConfig()

	if c.App.WriteQueueCapacity > 0 {
		cfg.QueueCapacity = c.App.WriteQueueCapacity
	}
	if c.App.WriteQueueTimeout != "" {
		if timeout, err := util.ParseDuration(c.App.WriteQueueTimeout); err == nil {
			cfg.WriteTimeout = timeout
		}
	}
	if c.App.WriteQueueIdleTime != "" {
		if idleTime, err := util.ParseDuration(c.App.WriteQueueIdleTime); err == nil {
			cfg.IdleTimeout = idleTime
		}
	}

	return cfg
}

// GetTokenExpiry 获取 Token 过期时间
func (c *AppConfig) GetTokenExpiry() time.Duration {
	if expiry, err := util.ParseDuration(c.Security.TokenExpiry); err == nil {
		return expiry
	}
	return 7 * 24 * time.Hour // 理论上不会走到这里，因为有默认值
}

// GetExportTimeout 获取导出超时时间
func (c *AppConfig) GetExportTimeout() time.Duration {
	if timeout, err := util.ParseDuration(c.Export.Timeout); err == nil {
		return timeout
	}
	return 60 * time.Second
}

// GetHistoryRetention 获取历史保留时长，0 表示不清理
func (c *AppConfig) GetHistoryRetention() time.Duration {
	if c.App.HistoryRetention == "" || c.App.HistoryRetention == "0" {
		return 0
	}
	if retention, err := util.ParseDuration(c.App.HistoryRetention); err == nil && retention > 0 {
		return retention
	}
	return 0
}

// GetTempFileTTL 获取临时文件保留时长
func (c *AppConfig) GetTempFileTTL() time.Duration {
	if ttl, err := util.ParseDuration(c.App.TempFileTTL); err == nil && ttl > 0 {
		return ttl
	}
	return time.Hour
}
