// Package logger 提供基于 zap 的结构化日志封装
package logger

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config 日志配置
type Config struct {
	// Level 日志级别 debug, info, warn, error
	Level string
	// File 日志文件路径，为空时仅输出到控制台
	File string
	// Production 生产模式下文件日志使用 JSON 编码
	Production bool
}

// NewLogger creates the main application logger (supports dependency injection)
// NewLogger 创建应用主日志器（支持依赖注入）
func NewLogger(c Config) (*zap.Logger, error) {

	level := zapcore.InfoLevel
	if c.Level != "" {
		if l, err := zapcore.ParseLevel(c.Level); err == nil {
			level = l
		}
	}

	var cores []zapcore.Core

	if c.File != "" {
		if dir := filepath.Dir(c.File); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, err
			}
		}
		f, err := os.OpenFile(c.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, err
		}

		encCfg := zap.NewProductionEncoderConfig()
		encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
		var fileEnc zapcore.Encoder
		if c.Production {
			fileEnc = zapcore.NewJSONEncoder(encCfg)
		} else {
			encCfg.EncodeLevel = zapcore.CapitalLevelEncoder
			fileEnc = zapcore.NewConsoleEncoder(encCfg)
		}
		cores = append(cores, zapcore.NewCore(fileEnc, zapcore.AddSync(f), level))
	}

	// 非生产模式或未配置文件时同时输出到控制台
	if !c.Production || c.File == "" {
		consoleCfg := zap.NewDevelopmentEncoderConfig()
		consoleCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		consoleCfg.EncodeTime = zapcore.ISO8601TimeEncoder
		consoleEnc := zapcore.NewConsoleEncoder(consoleCfg)
		cores = append(cores, zapcore.NewCore(consoleEnc, zapcore.AddSync(os.Stdout), level))
	}

	lg := zap.New(zapcore.NewTee(cores...), zap.AddCaller())
	if !c.Production {
		lg = lg.WithOptions(zap.Development())
	}

	return lg, nil
}
