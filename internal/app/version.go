// Package app 提供应用容器，封装所有依赖和服务
package app

// 版本信息在构建期通过 -ldflags -X 注入，下面是未注入时的开发默认值
var (
	Version   = "0.9.0"
	GitTag    = "dev"
	BuildTime = "unknown"
)

const (
	// Name 应用名称
	Name = "Markdown Format Service"
)
