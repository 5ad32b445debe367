package service

import (
	"context"
	"strings"

	"github.com/haierkeys/markdown-format-service/internal/domain"
	"github.com/haierkeys/markdown-format-service/internal/dto"
	"github.com/haierkeys/markdown-format-service/internal/metrics"
	"github.com/haierkeys/markdown-format-service/internal/render"
	"github.com/haierkeys/markdown-format-service/pkg/code"
	"github.com/haierkeys/markdown-format-service/pkg/logger"
	"github.com/haierkeys/markdown-format-service/pkg/util"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// RenderService 定义 Markdown 格式化业务服务接口
type RenderService interface {
	// Format 格式化文本并保存一条历史记录
	Format(ctx context.Context, text string) (*dto.FormatResultDTO, error)

	// Render 仅格式化文本，不落库
	Render(ctx context.Context, text string) (string, error)
}

type renderService struct {
	repo   domain.HistoryRepository
	engine *render.Engine
	logger *zap.Logger
	sf     singleflight.Group
}

// NewRenderService 创建 RenderService 实例
func NewRenderService(repo domain.HistoryRepository, engine *render.Engine, logger *zap.Logger) RenderService {
	return &renderService{
		repo:   repo,
		engine: engine,
		logger: logger,
	}
}

// renderShared 渲染文本，相同文本的并发请求只渲染一次
func (s *renderService) renderShared(text string) (string, error) {
	key := util.EncodeMD5(text)
	v, err, _ := s.sf.Do(key, func() (interface{}, error) {
		metrics.RenderTotal.Inc()
		return s.engine.Render(text)
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

func (s *renderService) Format(ctx context.Context, text string) (*dto.FormatResultDTO, error) {
	if strings.TrimSpace(text) == "" {
		return nil, code.ErrorEmptyContent
	}

	html, err := s.renderShared(text)
	if err != nil {
		s.logger.Error("render markdown failed",
			zap.String(logger.FieldMethod, "RenderService.Format"),
			zap.Error(err))
		return nil, code.ErrorRenderFail.WithDetails(err.Error())
	}

	created, err := s.repo.Create(ctx, &domain.History{
		RawText:       text,
		FormattedHTML: html,
	})
	if err != nil {
		s.logger.Error("create history failed",
			zap.String(logger.FieldMethod, "RenderService.Format"),
			zap.Error(err))
		return nil, code.ErrorHistoryCreateFailed.WithDetails(err.Error())
	}

	return &dto.FormatResultDTO{
		RawText:       created.RawText,
		FormattedHTML: created.FormattedHTML,
		ID:            created.ID,
	}, nil
}

func (s *renderService) Render(ctx context.Context, text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", code.ErrorEmptyContent
	}

	html, err := s.renderShared(text)
	if err != nil {
		return "", code.ErrorRenderFail.WithDetails(err.Error())
	}
	return html, nil
}
