package main

import (
	"embed"

	"github.com/haierkeys/markdown-format-service/cmd"
)

//go:embed frontend
var efs embed.FS

//go:embed config/config.yaml
var c string

// @title                       Markdown Format Service API
// @version                     1.0
// @description                 Markdown 格式化、历史记录与文档导出服务 API
// @BasePath                    /

// @securityDefinitions.apikey  AdminAuthToken
// @in                          header
// @name                        Authorization
func main() {
	cmd.Execute(efs, c)
}
