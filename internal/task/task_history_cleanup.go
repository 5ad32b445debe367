package task

import (
	"context"
	"sync"
	"time"

	"github.com/haierkeys/markdown-format-service/internal/app"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// HistoryCleanupTask 历史记录清理任务
// 每分钟检查一次 cron 计划,到点后按保留期和总量上限清理历史
type HistoryCleanupTask struct {
	app      *app.App
	schedule cron.Schedule

	mu   sync.Mutex
	next time.Time
}

// NewHistoryCleanupTask 创建历史清理任务
// 保留期和总量上限都未配置时返回 (nil, nil),任务不注册
func NewHistoryCleanupTask(appContainer *app.App) (Task, error) {
	cfg := appContainer.Config()

	if cfg.GetHistoryRetention() <= 0 && cfg.App.HistoryMaxRows <= 0 {
		return nil, nil
	}

	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)
	schedule, err := parser.Parse(cfg.App.CleanupCron)
	if err != nil {
		return nil, err
	}

	return &HistoryCleanupTask{
		app:      appContainer,
		schedule: schedule,
		next:     schedule.Next(time.Now()),
	}, nil
}

// Name 返回任务名称
func (t *HistoryCleanupTask) Name() string {
	return "HistoryCleanup"
}

// LoopInterval 返回执行间隔,按分钟检查计划
func (t *HistoryCleanupTask) LoopInterval() time.Duration {
	return time.Minute
}

// IsStartupRun 是否立即执行一次
func (t *HistoryCleanupTask) IsStartupRun() bool {
	return false
}

// Run 到达计划时间时执行清理,未到点直接返回
func (t *HistoryCleanupTask) Run(ctx context.Context) error {
	if !t.due(time.Now()) {
		return nil
	}

	cfg := t.app.Config()
	logger := t.app.Logger()

	var firstErr error

	if retention := cfg.GetHistoryRetention(); retention > 0 {
		deleted, err := t.app.HistoryService.CleanupExpired(ctx, retention)
		if err != nil {
			firstErr = err
			logger.Error("task log",
				zap.String("task", t.Name()),
				zap.String("sub_task", "CleanupExpired"),
				zap.Error(err))
		} else if deleted > 0 {
			logger.Info("task log",
				zap.String("task", t.Name()),
				zap.String("sub_task", "CleanupExpired"),
				zap.Int64("deleted", deleted))
		}
	}

	if maxRows := cfg.App.HistoryMaxRows; maxRows > 0 {
		deleted, err := t.app.HistoryService.EnforceMaxRows(ctx, maxRows)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			logger.Error("task log",
				zap.String("task", t.Name()),
				zap.String("sub_task", "EnforceMaxRows"),
				zap.Error(err))
		} else if deleted > 0 {
			logger.Info("task log",
				zap.String("task", t.Name()),
				zap.String("sub_task", "EnforceMaxRows"),
				zap.Int64("deleted", deleted))
		}
	}

	return firstErr
}

// due 判断当前时间是否到达计划点,到点时推进下次执行时间
func (t *HistoryCleanupTask) due(now time.Time) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if now.Before(t.next) {
		return false
	}
	t.next = t.schedule.Next(now)
	return true
}

// init 自动注册历史清理任务
func init() {
	RegisterWithApp(func(appContainer *app.App) (Task, error) {
		return NewHistoryCleanupTask(appContainer)
	})
}
