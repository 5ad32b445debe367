package service

import (
	"context"
	"strings"
	"time"

	"github.com/haierkeys/markdown-format-service/internal/domain"
	"github.com/haierkeys/markdown-format-service/internal/dto"
	pkgapp "github.com/haierkeys/markdown-format-service/pkg/app"
	"github.com/haierkeys/markdown-format-service/pkg/code"
	"github.com/haierkeys/markdown-format-service/pkg/convert"
	"github.com/haierkeys/markdown-format-service/pkg/diff"
	"github.com/haierkeys/markdown-format-service/pkg/timex"

	"go.uber.org/zap"
)

// 历史列表的分页与检索约定
const (
	historyPageSize       = 10
	historyFilterMaxQuery = 200
	historyFilterMaxItems = 50
	historyRecentItems    = 10
)

// HistoryService 定义格式化历史业务服务接口
type HistoryService interface {
	// Get 获取一条完整的历史记录
	Get(ctx context.Context, id int64) (*dto.HistoryDTO, error)

	// Page 按页获取历史列表
	Page(ctx context.Context, page int) (*dto.HistoryPageDTO, error)

	// List 按页获取完整的历史记录及总数
	List(ctx context.Context, page int, pageSize int) ([]*dto.HistoryDTO, int64, error)

	// Filter 按关键字检索历史，关键字为空时返回最近记录
	Filter(ctx context.Context, query string) (*dto.HistoryFilterDTO, error)

	// Recent 获取最近的 n 条历史条目
	Recent(ctx context.Context, n int) ([]*dto.HistoryItemDTO, error)

	// Delete 删除一条历史记录，记录不存在不视为错误
	Delete(ctx context.Context, id int64) error

	// DeleteAll 清空历史，返回删除数量
	DeleteAll(ctx context.Context) (int64, error)

	// Diff 对比两条历史记录的原文
	Diff(ctx context.Context, from int64, to int64) (*dto.HistoryDiffDTO, error)

	// CleanupExpired 删除超过保留期的历史记录
	CleanupExpired(ctx context.Context, retention time.Duration) (int64, error)

	// EnforceMaxRows 控制历史总量，超出部分从最旧的开始删除
	EnforceMaxRows(ctx context.Context, max int) (int64, error)
}

type historyService struct {
	repo   domain.HistoryRepository
	logger *zap.Logger
}

// NewHistoryService 创建 HistoryService 实例
func NewHistoryService(repo domain.HistoryRepository, logger *zap.Logger) HistoryService {
	return &historyService{
		repo:   repo,
		logger: logger,
	}
}

func (s *historyService) domainToDTO(h *domain.History) *dto.HistoryDTO {
	if h == nil {
		return nil
	}
	return convert.StructAssign(h, &dto.HistoryDTO{}).(*dto.HistoryDTO)
}

func (s *historyService) domainToItemDTO(h *domain.History) *dto.HistoryItemDTO {
	if h == nil {
		return nil
	}
	return &dto.HistoryItemDTO{
		ID:        h.ID,
		RawText:   h.Preview(dto.HistoryPreviewLength),
		CreatedAt: timex.Time(h.CreatedAt).Format(dto.HistoryPreviewTimeFmt),
	}
}

func (s *historyService) domainToItemDTOs(list []*domain.History) []*dto.HistoryItemDTO {
	items := make([]*dto.HistoryItemDTO, 0, len(list))
	for _, h := range list {
		items = append(items, s.domainToItemDTO(h))
	}
	return items
}

func (s *historyService) Get(ctx context.Context, id int64) (*dto.HistoryDTO, error) {
	h, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}
	if h == nil {
		return nil, code.ErrorHistoryNotFound
	}
	return s.domainToDTO(h), nil
}

func (s *historyService) Page(ctx context.Context, page int) (*dto.HistoryPageDTO, error) {
	if page < 1 {
		page = 1
	}

	count, err := s.repo.Count(ctx)
	if err != nil {
		return nil, code.ErrorHistoryListFailed.WithDetails(err.Error())
	}

	offset := pkgapp.GetPageOffset(page, historyPageSize)
	var list []*domain.History
	if int64(offset) < count {
		list, err = s.repo.List(ctx, historyPageSize, offset)
		if err != nil {
			return nil, code.ErrorHistoryListFailed.WithDetails(err.Error())
		}
	}

	return &dto.HistoryPageDTO{
		Items:       s.domainToItemDTOs(list),
		HasNext:     int64(offset+len(list)) < count,
		HasPrevious: page > 1 && count > 0,
	}, nil
}

func (s *historyService) List(ctx context.Context, page int, pageSize int) ([]*dto.HistoryDTO, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = historyPageSize
	}

	count, err := s.repo.Count(ctx)
	if err != nil {
		return nil, 0, code.ErrorHistoryListFailed.WithDetails(err.Error())
	}

	offset := pkgapp.GetPageOffset(page, pageSize)
	var list []*domain.History
	if int64(offset) < count {
		list, err = s.repo.List(ctx, pageSize, offset)
		if err != nil {
			return nil, 0, code.ErrorHistoryListFailed.WithDetails(err.Error())
		}
	}

	items := make([]*dto.HistoryDTO, 0, len(list))
	for _, h := range list {
		items = append(items, s.domainToDTO(h))
	}
	return items, count, nil
}

func (s *historyService) Filter(ctx context.Context, query string) (*dto.HistoryFilterDTO, error) {
	query = strings.TrimSpace(query)
	if runes := []rune(query); len(runes) > historyFilterMaxQuery {
		query = string(runes[:historyFilterMaxQuery])
	}

	var (
		list []*domain.History
		err  error
	)
	if query != "" {
		list, err = s.repo.Search(ctx, query, historyFilterMaxItems)
	} else {
		list, err = s.repo.List(ctx, historyRecentItems, 0)
	}
	if err != nil {
		return nil, code.ErrorHistoryListFailed.WithDetails(err.Error())
	}

	return &dto.HistoryFilterDTO{
		Items: s.domainToItemDTOs(list),
		Query: query,
	}, nil
}

func (s *historyService) Recent(ctx context.Context, n int) ([]*dto.HistoryItemDTO, error) {
	if n < 1 {
		n = historyRecentItems
	}
	list, err := s.repo.List(ctx, n, 0)
	if err != nil {
		return nil, code.ErrorHistoryListFailed.WithDetails(err.Error())
	}
	return s.domainToItemDTOs(list), nil
}

func (s *historyService) Delete(ctx context.Context, id int64) error {
	_, err := s.repo.Delete(ctx, id)
	if err != nil {
		return code.ErrorHistoryDeleteFailed.WithDetails(err.Error())
	}
	return nil
}

func (s *historyService) DeleteAll(ctx context.Context) (int64, error) {
	deleted, err := s.repo.DeleteAll(ctx)
	if err != nil {
		return 0, code.ErrorHistoryDeleteFailed.WithDetails(err.Error())
	}
	return deleted, nil
}

func (s *historyService) Diff(ctx context.Context, from int64, to int64) (*dto.HistoryDiffDTO, error) {
	fromEntry, err := s.repo.GetByID(ctx, from)
	if err != nil {
		return nil, code.ErrorHistoryDiffFailed.WithDetails(err.Error())
	}
	if fromEntry == nil {
		return nil, code.ErrorHistoryNotFound
	}

	toEntry, err := s.repo.GetByID(ctx, to)
	if err != nil {
		return nil, code.ErrorHistoryDiffFailed.WithDetails(err.Error())
	}
	if toEntry == nil {
		return nil, code.ErrorHistoryNotFound
	}

	return &dto.HistoryDiffDTO{
		From:  from,
		To:    to,
		Diffs: diff.Texts(fromEntry.RawText, toEntry.RawText),
	}, nil
}

func (s *historyService) CleanupExpired(ctx context.Context, retention time.Duration) (int64, error) {
	if retention <= 0 {
		return 0, nil
	}
	deleted, err := s.repo.DeleteCreatedBefore(ctx, time.Now().Add(-retention))
	if err != nil {
		return 0, code.ErrorHistoryDeleteFailed.WithDetails(err.Error())
	}
	if deleted > 0 {
		s.logger.Info("expired history removed", zap.Int64("deleted", deleted), zap.Duration("retention", retention))
	}
	return deleted, nil
}

func (s *historyService) EnforceMaxRows(ctx context.Context, max int) (int64, error) {
	if max <= 0 {
		return 0, nil
	}
	deleted, err := s.repo.TrimToNewest(ctx, max)
	if err != nil {
		return 0, code.ErrorHistoryDeleteFailed.WithDetails(err.Error())
	}
	if deleted > 0 {
		s.logger.Info("history trimmed to cap", zap.Int64("deleted", deleted), zap.Int("max", max))
	}
	return deleted, nil
}
