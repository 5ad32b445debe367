package cmd

import (
	"fmt"
	"os"

	internalApp "github.com/haierkeys/markdown-format-service/internal/app"
	"github.com/haierkeys/markdown-format-service/internal/upgrade"
	"github.com/haierkeys/markdown-format-service/pkg/logger"

	"github.com/spf13/cobra"
)

var upgradeCmd = &cobra.Command{
	Use:   "upgrade",
	Short: "Upgrade legacy database schema and other data to the latest version",
	Long: `Upgrade legacy database schema and other data to the latest version.

This command will check the current database version and apply all pending migrations.
It is safe to run this command multiple times - already applied migrations will be skipped.`,
	Run: func(cmd *cobra.Command, args []string) {
		configPath, _ := cmd.Flags().GetString("config")
		if configPath == "" {
			configPath = "config/config.yaml"
		}

		appConfig, configRealpath, err := internalApp.LoadConfig(configPath)
		if err != nil {
			fatalf("Failed to load config: %v", err)
		}
		fmt.Printf("Loading config from: %s\n", configRealpath)

		lg, err := logger.NewLogger(logger.Config{
			Level:      appConfig.Log.Level,
			File:       appConfig.Log.File,
			Production: appConfig.Log.Production,
		})
		if err != nil {
			fatalf("Failed to init logger: %v", err)
		}

		db, err := initDatabaseWithConfig(appConfig, lg)
		if err != nil {
			fatalf("Failed to init database: %v", err)
		}

		app, err := internalApp.NewApp(appConfig, lg, db)
		if err != nil {
			fatalf("Failed to create app container: %v", err)
		}

		fmt.Println("Starting database upgrade...")
		if err := upgrade.Execute(app); err != nil {
			fatalf("Upgrade failed: %v", err)
		}
		fmt.Println("Database upgrade completed successfully!")
	},
}

// fatalf 一次性命令没有日志器兜底，打印到控制台后直接退出
func fatalf(format string, args ...interface{}) {
	fmt.Printf(format+"\n", args...)
	os.Exit(1)
}

func init() {
	rootCmd.AddCommand(upgradeCmd)
	upgradeCmd.Flags().StringP("config", "c", "", "config file path")
}
