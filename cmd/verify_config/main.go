package main

import (
	"fmt"
	"log"
	"path/filepath"

	"github.com/haierkeys/markdown-format-service/internal/app"
	"github.com/haierkeys/markdown-format-service/pkg/storage"
	"github.com/haierkeys/markdown-format-service/pkg/util"

	"github.com/robfig/cron/v3"
)

func main() {
	configPath := "config/config.yaml"
	absPath, _ := filepath.Abs(configPath)
	fmt.Printf("Loading config from: %s\n", absPath)

	cfg, _, err := app.LoadConfig(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	fmt.Println("Server Configuration Loaded:")
	fmt.Printf("RunMode: %s\n", cfg.Server.RunMode)
	fmt.Printf("HttpPort: %s\n", cfg.Server.HttpPort)
	fmt.Printf("PrivateHttpListen: %s\n", cfg.Server.PrivateHttpListen)

	// 校验各 duration 字段
	for name, v := range map[string]string{
		"security.token-expiry": cfg.Security.TokenExpiry,
		"export.timeout":        cfg.Export.Timeout,
		"app.temp-file-ttl":     cfg.App.TempFileTTL,
	} {
		if _, err := util.ParseDuration(v); err != nil {
			log.Fatalf("Invalid duration for %s: %q", name, v)
		}
	}
	if cfg.App.HistoryRetention != "" && cfg.App.HistoryRetention != "0" {
		if _, err := util.ParseDuration(cfg.App.HistoryRetention); err != nil {
			log.Fatalf("Invalid duration for app.history-retention: %q", cfg.App.HistoryRetention)
		}
	}

	// 校验清理任务 cron 表达式，五段分钟级
	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)
	if _, err := parser.Parse(cfg.App.CleanupCron); err != nil {
		log.Fatalf("Invalid app.cleanup-cron %q: %v", cfg.App.CleanupCron, err)
	}

	fmt.Printf("Archive Enabled: %v\n", cfg.Archive.Enabled)
	if cfg.Archive.Enabled {
		sc := cfg.Archive.Storage
		if sc.Type != "" && !storage.StorageTypeMap[sc.Type] {
			log.Fatalf("Unknown archive.storage.type: %q", sc.Type)
		}
		fmt.Printf("Archive Storage Type: %s\n", sc.Type)
		fmt.Printf("Archive Git Enabled: %v\n", cfg.Archive.Git.Enabled)
	}

	fmt.Println("Config OK")
}
