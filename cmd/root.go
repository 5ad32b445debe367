package cmd

import (
	"embed"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// frontendFiles 与 configDefault 由 main 包注入，分别是内嵌的控制台前端与默认配置模板
var (
	frontendFiles embed.FS
	configDefault string
)

var rootCmd = &cobra.Command{
	Use:   "markdown-format-service",
	Short: "Markdown format, history and export service // Markdown 格式化、历史记录与导出服务",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// Execute 注入内嵌资源并运行根命令
func Execute(efs embed.FS, c string) {
	frontendFiles = efs
	configDefault = c
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
