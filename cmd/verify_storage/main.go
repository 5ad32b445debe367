package main

import (
	"fmt"
	"log"
	"path/filepath"
	"time"

	"github.com/haierkeys/markdown-format-service/internal/app"
	"github.com/haierkeys/markdown-format-service/pkg/storage"
)

func main() {
	configPath := "config/config.yaml"
	absPath, _ := filepath.Abs(configPath)
	fmt.Printf("Loading config from: %s\n", absPath)

	cfg, _, err := app.LoadConfig(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	sc := cfg.Archive.Storage
	fmt.Printf("Archive Enabled: %v\n", cfg.Archive.Enabled)
	fmt.Printf("Storage Type: %s\n", sc.Type)
	fmt.Printf("Storage Enabled: %v\n", sc.IsEnabled)

	if sc.Type == "" {
		log.Fatal("archive.storage.type is empty")
	}
	if !storage.StorageTypeMap[sc.Type] {
		log.Fatalf("Unknown storage type: %s", sc.Type)
	}

	client, err := storage.NewClient(&sc)
	if err != nil {
		log.Fatalf("Failed to create storage client: %v", err)
	}

	// 写入探针文件再删除，验证后端读写可用
	probeKey := fmt.Sprintf("verify/probe-%d.txt", time.Now().Unix())
	fmt.Printf("Writing probe object: %s\n", probeKey)

	if _, err := client.SendContent(probeKey, []byte("storage verify probe"), time.Now()); err != nil {
		log.Fatalf("SendContent failed: %v", err)
	}
	fmt.Println("SendContent OK")

	if err := client.Delete(probeKey); err != nil {
		log.Fatalf("Delete failed: %v", err)
	}
	fmt.Println("Delete OK")

	fmt.Println("Storage backend verified.")
}
