package service

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/haierkeys/markdown-format-service/internal/domain"
	"github.com/haierkeys/markdown-format-service/internal/dto"
	"github.com/haierkeys/markdown-format-service/internal/export"
	"github.com/haierkeys/markdown-format-service/internal/export/docx"
	"github.com/haierkeys/markdown-format-service/internal/export/pdf"
	"github.com/haierkeys/markdown-format-service/internal/metrics"
	"github.com/haierkeys/markdown-format-service/pkg/code"
	"github.com/haierkeys/markdown-format-service/pkg/logger"
	"github.com/haierkeys/markdown-format-service/pkg/workerpool"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// 导出文件扩展名
const (
	extWord = ".docx"
	extPDF  = ".pdf"
)

// ExportService 定义文档导出业务服务接口
type ExportService interface {
	// Word 将格式化结果生成 Word 文档
	Word(ctx context.Context, html string, filename string) (*dto.ExportFileDTO, error)

	// PDF 将格式化结果生成 PDF 文档
	PDF(ctx context.Context, html string, filename string) (*dto.ExportFileDTO, error)

	// Email 将指定历史记录生成文档并以附件形式发送
	Email(ctx context.Context, params *dto.ExportEmailRequest) (*dto.ExportEmailResultDTO, error)
}

type exportService struct {
	repo      domain.HistoryRepository
	pdfEngine *pdf.Engine
	mail      MailService
	archive   ArchiveService
	pool      *workerpool.Pool
	tempPath  string
	timeout   time.Duration
	logger    *zap.Logger
}

// NewExportService 创建 ExportService 实例
// archive 为 nil 时不做归档，mail 为 nil 时邮件投递返回未启用错误
// tempPath 为空时不保留导出文件的临时副本
func NewExportService(repo domain.HistoryRepository, pdfEngine *pdf.Engine, mail MailService, archive ArchiveService, pool *workerpool.Pool, tempPath string, timeout time.Duration, logger *zap.Logger) ExportService {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &exportService{
		repo:      repo,
		pdfEngine: pdfEngine,
		mail:      mail,
		archive:   archive,
		pool:      pool,
		tempPath:  tempPath,
		timeout:   timeout,
		logger:    logger,
	}
}

func (s *exportService) Word(ctx context.Context, html string, filename string) (*dto.ExportFileDTO, error) {
	if html == "" {
		return nil, code.ErrorEmptyExportContent
	}

	var buf bytes.Buffer
	if err := docx.Write(&buf, html); err != nil {
		s.logger.Error("export word failed",
			zap.String(logger.FieldFormat, "word"),
			zap.Error(err))
		return nil, code.ErrorExportWordFail.WithDetails(err.Error())
	}
	metrics.ExportTotal.WithLabelValues("word").Inc()

	file := &dto.ExportFileDTO{
		Name:        export.SanitizeFilename(filename, extWord),
		ContentType: dto.ContentTypeWord,
		Data:        buf.Bytes(),
	}
	s.spoolTemp(file)
	s.submitArchive(file)
	return file, nil
}

func (s *exportService) PDF(ctx context.Context, html string, filename string) (*dto.ExportFileDTO, error) {
	if html == "" {
		return nil, code.ErrorEmptyExportContent
	}

	genCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	data, err := s.pdfEngine.Render(genCtx, html)
	if err != nil {
		s.logger.Error("export pdf failed",
			zap.String(logger.FieldFormat, "pdf"),
			zap.Error(err))
		return nil, code.ErrorExportPDFFail.WithDetails(err.Error())
	}
	metrics.ExportTotal.WithLabelValues("pdf").Inc()

	file := &dto.ExportFileDTO{
		Name:        export.SanitizeFilename(filename, extPDF),
		ContentType: dto.ContentTypePDF,
		Data:        data,
	}
	s.spoolTemp(file)
	s.submitArchive(file)
	return file, nil
}

func (s *exportService) Email(ctx context.Context, params *dto.ExportEmailRequest) (*dto.ExportEmailResultDTO, error) {
	if s.mail == nil || !s.mail.IsEnabled() {
		return nil, code.ErrorMailDisabled
	}

	entry, err := s.repo.GetByID(ctx, params.ID)
	if err != nil {
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}
	if entry == nil {
		return nil, code.ErrorHistoryNotFound
	}

	filename := exportNameFromText(entry.RawText)

	var file *dto.ExportFileDTO
	switch params.Format {
	case "word":
		file, err = s.Word(ctx, entry.FormattedHTML, filename)
	case "pdf":
		file, err = s.PDF(ctx, entry.FormattedHTML, filename)
	default:
		return nil, code.ErrorInvalidParams.WithDetails("format must be word or pdf")
	}
	if err != nil {
		return nil, err
	}

	if err := s.mail.SendDocument(ctx, params.To, file); err != nil {
		return nil, err
	}

	return &dto.ExportEmailResultDTO{
		To:       params.To,
		Filename: file.Name,
	}, nil
}

// spoolTemp 在临时目录保留导出文档副本，由清理任务按保留时长回收
// 文件名加 uuid 前缀避免同名覆盖，写入失败只记录日志
func (s *exportService) spoolTemp(file *dto.ExportFileDTO) {
	if s.tempPath == "" {
		return
	}

	dst := filepath.Join(s.tempPath, uuid.New().String()+"-"+file.Name)
	if err := os.WriteFile(dst, file.Data, 0644); err != nil {
		s.logger.Warn("temp spool failed", zap.String(logger.FieldPath, dst), zap.Error(err))
	}
}

// submitArchive 异步归档导出文档，失败只记录日志
func (s *exportService) submitArchive(file *dto.ExportFileDTO) {
	if s.archive == nil || s.pool == nil {
		return
	}

	pathKey := archivePathKey(file.Name)
	data := file.Data
	err := s.pool.SubmitAsync(context.Background(), func(ctx context.Context) error {
		if err := s.archive.Archive(ctx, pathKey, data); err != nil {
			s.logger.Warn("archive export failed", zap.String(logger.FieldPath, pathKey), zap.Error(err))
		}
		return nil
	})
	if err != nil {
		s.logger.Warn("archive submit failed", zap.String(logger.FieldPath, pathKey), zap.Error(err))
	}
}

// archivePathKey 生成按年月划分、带时间戳前缀的归档路径
func archivePathKey(name string) string {
	now := time.Now()
	return fmt.Sprintf("%s/%s-%s", now.Format("2006/01"), now.Format("20060102-150405"), name)
}

// exportNameFromText 取原文首个非空行作为导出文件名
func exportNameFromText(text string) string {
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(strings.TrimLeft(line, "# "))
		if line == "" {
			continue
		}
		if runes := []rune(line); len(runes) > 60 {
			line = string(runes[:60])
		}
		return line
	}
	return ""
}
