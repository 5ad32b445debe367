// Package dao 实现数据访问层
package dao

import (
	"context"
	"fmt"
	"os"

	"github.com/haierkeys/markdown-format-service/internal/model"
	"github.com/haierkeys/markdown-format-service/pkg/fileurl"
	"github.com/haierkeys/markdown-format-service/pkg/util"
	"github.com/haierkeys/markdown-format-service/pkg/writequeue"

	"github.com/glebarez/sqlite"
	"github.com/haierkeys/gormTracing"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

// DatabaseConfig 数据库配置（与 AppConfig 解耦，便于独立测试）
type DatabaseConfig struct {
	Type            string
	Path            string
	UserName        string
	Password        string
	Host            string
	Name            string
	TablePrefix     string
	AutoMigrate     bool
	Charset         string
	ParseTime       bool
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime string
	ConnMaxIdleTime string
	RunMode         string
}

// Dao 数据访问对象，封装数据库连接与依赖
type Dao struct {
	db            *gorm.DB
	ctx           context.Context
	config        *DatabaseConfig
	logger        *zap.Logger
	writeQueueMgr *writequeue.Manager
}

// Option Dao 配置选项
type Option func(*Dao)

// WithConfig 注入数据库配置
func WithConfig(cfg *DatabaseConfig) Option {
	return func(d *Dao) {
		d.config = cfg
	}
}

// WithLogger 注入日志器
func WithLogger(lg *zap.Logger) Option {
	return func(d *Dao) {
		d.logger = lg
	}
}

// WithWriteQueueManager 注入写队列管理器
func WithWriteQueueManager(mgr *writequeue.Manager) Option {
	return func(d *Dao) {
		d.writeQueueMgr = mgr
	}
}

// New 创建 Dao 实例
func New(db *gorm.DB, ctx context.Context, opts ...Option) *Dao {
	d := &Dao{db: db, ctx: ctx}
	for _, opt := range opts {
		opt(d)
	}
	if d.logger == nil {
		d.logger = zap.NewNop()
	}
	return d
}

// DB 获取数据库连接
func (d *Dao) DB() *gorm.DB {
	return d.db
}

// ExecuteWrite executes a write through the write queue. Writes sharing
// the same lane are serialized in FIFO order, which keeps SQLite from
// hitting "database is locked".
//
// ExecuteWrite 通过写队列执行写操作，同一通道的写操作按 FIFO 顺序串行化
func (d *Dao) ExecuteWrite(ctx context.Context, lane string, fn func(db *gorm.DB) error) error {
	if d.writeQueueMgr == nil {
		return fn(d.db)
	}
	return d.writeQueueMgr.Execute(ctx, lane, func() error {
		return fn(d.db)
	})
}

// NewDBEngineWithConfig 创建数据库引擎（使用注入的配置与日志器）
func NewDBEngineWithConfig(c DatabaseConfig, lg *zap.Logger) (*gorm.DB, error) {
	dialector := newDialector(c)
	if dialector == nil {
		return nil, fmt.Errorf("unsupported database type: %s", c.Type)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
		NamingStrategy: schema.NamingStrategy{
			TablePrefix:   c.TablePrefix,
			SingularTable: true,
		},
	})
	if err != nil {
		return nil, err
	}

	if c.RunMode == "debug" {
		db.Config.Logger = logger.Default.LogMode(logger.Info)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	sqlDB.SetMaxIdleConns(c.MaxIdleConns)
	sqlDB.SetMaxOpenConns(c.MaxOpenConns)
	if lifetime, err := util.ParseDuration(c.ConnMaxLifetime); err == nil {
		sqlDB.SetConnMaxLifetime(lifetime)
	}
	if idle, err := util.ParseDuration(c.ConnMaxIdleTime); err == nil {
		sqlDB.SetConnMaxIdleTime(idle)
	}

	if c.AutoMigrate {
		if err := model.AutoMigrateAll(db); err != nil {
			return nil, fmt.Errorf("auto migrate failed: %w", err)
		}
	}

	_ = db.Use(&gormTracing.OpentracingPlugin{})

	if lg != nil {
		lg.Info("Database engine initialized", zap.String("type", c.Type))
	}

	return db, nil
}

func newDialector(c DatabaseConfig) gorm.Dialector {
	switch c.Type {
	case "mysql":
		return mysql.Open(fmt.Sprintf("%s:%s@tcp(%s)/%s?charset=%s&parseTime=%t&loc=Local",
			c.UserName,
			c.Password,
			c.Host,
			c.Name,
			c.Charset,
			c.ParseTime,
		))
	case "postgres":
		return postgres.Open(fmt.Sprintf("host=%s user=%s password=%s dbname=%s sslmode=disable",
			c.Host,
			c.UserName,
			c.Password,
			c.Name,
		))
	case "sqlite":
		if !fileurl.IsExist(c.Path) {
			fileurl.CreatePath(c.Path, os.ModePerm)
		}
		return sqlite.Open(c.Path)
	}
	return nil
}
