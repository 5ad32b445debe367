package task

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/haierkeys/markdown-format-service/internal/app"
	"go.uber.org/zap"
)

// TempFileCleanupTask 临时文件清理任务
// 删除导出临时目录中超过保留时长的文件,目录本身保留
type TempFileCleanupTask struct {
	app *app.App
}

// NewTempFileCleanupTask 创建临时文件清理任务
func NewTempFileCleanupTask(appContainer *app.App) (Task, error) {
	return &TempFileCleanupTask{app: appContainer}, nil
}

// Name 任务名称
func (t *TempFileCleanupTask) Name() string {
	return "TempFileCleanup"
}

// LoopInterval 执行间隔
func (t *TempFileCleanupTask) LoopInterval() time.Duration {
	return 10 * time.Minute
}

// IsStartupRun 是否立即执行一次
func (t *TempFileCleanupTask) IsStartupRun() bool {
	return true
}

// Run 执行清理任务
func (t *TempFileCleanupTask) Run(ctx context.Context) error {
	cfg := t.app.Config()
	logger := t.app.Logger()

	tempDir := cfg.App.TempPath
	if tempDir == "" {
		return nil
	}

	entries, err := os.ReadDir(tempDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		logger.Error("task log",
			zap.String("task", t.Name()),
			zap.String("path", tempDir),
			zap.Error(err))
		return err
	}

	cutoff := time.Now().Add(-cfg.GetTempFileTTL())
	removed := 0

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.ModTime().After(cutoff) {
			continue
		}

		if err := os.Remove(filepath.Join(tempDir, entry.Name())); err != nil {
			logger.Warn("task log",
				zap.String("task", t.Name()),
				zap.String("file", entry.Name()),
				zap.Error(err))
			continue
		}
		removed++
	}

	if removed > 0 {
		logger.Info("task log",
			zap.String("task", t.Name()),
			zap.String("path", tempDir),
			zap.Int("removed", removed))
	}

	return nil
}

// init 自动注册临时文件清理任务
func init() {
	RegisterWithApp(func(appContainer *app.App) (Task, error) {
		return NewTempFileCleanupTask(appContainer)
	})
}
