package dao

import (
	"context"
	"strings"
	"time"

	"github.com/haierkeys/markdown-format-service/internal/domain"
	"github.com/haierkeys/markdown-format-service/internal/model"
	"github.com/haierkeys/markdown-format-service/pkg/timex"

	"gorm.io/gorm"
)

// writeLaneHistory 历史表写入通道，全部历史写操作走同一通道串行执行
const writeLaneHistory = "history"

// historyRepository 实现 domain.HistoryRepository 接口
type historyRepository struct {
	dao *Dao
}

// NewHistoryRepository 创建 HistoryRepository 实例
func NewHistoryRepository(dao *Dao) domain.HistoryRepository {
	return &historyRepository{dao: dao}
}

// toDomain 将数据库模型转换为领域模型
func (r *historyRepository) toDomain(m *model.History) *domain.History {
	if m == nil {
		return nil
	}
	return &domain.History{
		ID:            m.ID,
		RawText:       m.RawText,
		FormattedHTML: m.FormattedHTML,
		CreatedAt:     time.Time(m.CreatedAt),
	}
}

// toModel 将领域模型转换为数据库模型
func (r *historyRepository) toModel(d *domain.History) *model.History {
	if d == nil {
		return nil
	}
	return &model.History{
		ID:            d.ID,
		RawText:       d.RawText,
		FormattedHTML: d.FormattedHTML,
		CreatedAt:     timex.Time(d.CreatedAt),
	}
}

// escapeLike 转义 LIKE 模式中的通配符
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}

// Create 创建历史记录
func (r *historyRepository) Create(ctx context.Context, history *domain.History) (*domain.History, error) {
	m := r.toModel(history)
	m.ID = 0
	if m.CreatedAt.IsZero() {
		m.CreatedAt = timex.Now()
	}

	err := r.dao.ExecuteWrite(ctx, writeLaneHistory, func(db *gorm.DB) error {
		return db.WithContext(ctx).Create(m).Error
	})
	if err != nil {
		return nil, err
	}
	return r.toDomain(m), nil
}

// GetByID 根据ID获取历史记录
func (r *historyRepository) GetByID(ctx context.Context, id int64) (*domain.History, error) {
	var m model.History
	err := r.dao.DB().WithContext(ctx).Where("id = ?", id).First(&m).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return r.toDomain(&m), nil
}

// List 按创建时间倒序分页获取历史记录
func (r *historyRepository) List(ctx context.Context, limit, offset int) ([]*domain.History, error) {
	var ms []*model.History
	err := r.dao.DB().WithContext(ctx).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Offset(offset).
		Find(&ms).Error
	if err != nil {
		return nil, err
	}

	list := make([]*domain.History, 0, len(ms))
	for _, m := range ms {
		list = append(list, r.toDomain(m))
	}
	return list, nil
}

// Search 在原文和渲染结果中检索关键字，按创建时间倒序返回
// 匹配不区分大小写，通配符按字面值处理
func (r *historyRepository) Search(ctx context.Context, query string, limit int) ([]*domain.History, error) {
	pattern := "%" + escapeLike(strings.ToLower(query)) + "%"

	var ms []*model.History
	err := r.dao.DB().WithContext(ctx).
		Where(`LOWER(raw_text) LIKE ? ESCAPE '\' OR LOWER(formatted_html) LIKE ? ESCAPE '\'`, pattern, pattern).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&ms).Error
	if err != nil {
		return nil, err
	}

	list := make([]*domain.History, 0, len(ms))
	for _, m := range ms {
		list = append(list, r.toDomain(m))
	}
	return list, nil
}

// Count 获取历史记录总数
func (r *historyRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.dao.DB().WithContext(ctx).Model(&model.History{}).Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

// Delete 删除指定ID的历史记录，返回受影响行数
func (r *historyRepository) Delete(ctx context.Context, id int64) (int64, error) {
	var affected int64
	err := r.dao.ExecuteWrite(ctx, writeLaneHistory, func(db *gorm.DB) error {
		res := db.WithContext(ctx).Where("id = ?", id).Delete(&model.History{})
		affected = res.RowsAffected
		return res.Error
	})
	if err != nil {
		return 0, err
	}
	return affected, nil
}

// DeleteAll 删除全部历史记录，返回删除数量
func (r *historyRepository) DeleteAll(ctx context.Context) (int64, error) {
	var affected int64
	err := r.dao.ExecuteWrite(ctx, writeLaneHistory, func(db *gorm.DB) error {
		res := db.WithContext(ctx).Where("1 = 1").Delete(&model.History{})
		affected = res.RowsAffected
		return res.Error
	})
	if err != nil {
		return 0, err
	}
	return affected, nil
}

// DeleteCreatedBefore 删除创建时间早于指定时间的历史记录，返回删除数量
func (r *historyRepository) DeleteCreatedBefore(ctx context.Context, before time.Time) (int64, error) {
	var affected int64
	err := r.dao.ExecuteWrite(ctx, writeLaneHistory, func(db *gorm.DB) error {
		res := db.WithContext(ctx).
			Where("created_at < ?", timex.Time(before)).
			Delete(&model.History{})
		affected = res.RowsAffected
		return res.Error
	})
	if err != nil {
		return 0, err
	}
	return affected, nil
}

// TrimToNewest 仅保留最新的 keep 条记录，删除更早的部分，返回删除数量
// 先取出待删除记录的主键再按主键删除，兼容 MySQL 对同表子查询的限制
func (r *historyRepository) TrimToNewest(ctx context.Context, keep int) (int64, error) {
	if keep < 0 {
		keep = 0
	}

	count, err := r.Count(ctx)
	if err != nil {
		return 0, err
	}
	if count <= int64(keep) {
		return 0, nil
	}

	var ids []int64
	err = r.dao.DB().WithContext(ctx).
		Model(&model.History{}).
		Order("created_at ASC, id ASC").
		Limit(int(count - int64(keep))).
		Pluck("id", &ids).Error
	if err != nil {
		return 0, err
	}
	if len(ids) == 0 {
		return 0, nil
	}

	var affected int64
	err = r.dao.ExecuteWrite(ctx, writeLaneHistory, func(db *gorm.DB) error {
		res := db.WithContext(ctx).Where("id IN ?", ids).Delete(&model.History{})
		affected = res.RowsAffected
		return res.Error
	})
	if err != nil {
		return 0, err
	}
	return affected, nil
}
