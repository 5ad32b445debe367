// Package domain 定义领域模型和接口
package domain

import (
	"context"
	"time"
)

// HistoryRepository 格式化历史仓储接口
type HistoryRepository interface {
	// Create 创建历史记录
	Create(ctx context.Context, history *History) (*History, error)

	// GetByID 根据ID获取历史记录
	GetByID(ctx context.Context, id int64) (*History, error)

	// List 按创建时间倒序分页获取历史记录
	List(ctx context.Context, limit, offset int) ([]*History, error)

	// Search 在原文和渲染结果中检索关键字，按创建时间倒序返回
	Search(ctx context.Context, query string, limit int) ([]*History, error)

	// Count 获取历史记录总数
	Count(ctx context.Context) (int64, error)

	// Delete 删除指定ID的历史记录，返回受影响行数
	Delete(ctx context.Context, id int64) (int64, error)

	// DeleteAll 删除全部历史记录，返回删除数量
	DeleteAll(ctx context.Context) (int64, error)

	// DeleteCreatedBefore 删除创建时间早于指定时间的历史记录，返回删除数量
	DeleteCreatedBefore(ctx context.Context, before time.Time) (int64, error)

	// TrimToNewest 仅保留最新的 keep 条记录，删除更早的部分，返回删除数量
	TrimToNewest(ctx context.Context, keep int) (int64, error)
}
