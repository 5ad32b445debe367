package service

import (
	"context"
	"fmt"
	"io"

	"github.com/haierkeys/markdown-format-service/internal/dto"
	"github.com/haierkeys/markdown-format-service/pkg/code"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

// MailConfig 邮件投递配置
type MailConfig struct {
	Enabled  bool
	Host     string
	Port     int
	Username string
	Password string
	From     string
	SSL      bool
}

// MailService 定义邮件投递业务服务接口
type MailService interface {
	// IsEnabled 返回邮件投递是否可用
	IsEnabled() bool

	// SendDocument 将导出文档作为附件发送到指定邮箱
	SendDocument(ctx context.Context, to string, file *dto.ExportFileDTO) error
}

type mailService struct {
	config MailConfig
	logger *zap.Logger
}

// NewMailService 创建 MailService 实例
func NewMailService(cfg MailConfig, logger *zap.Logger) MailService {
	return &mailService{
		config: cfg,
		logger: logger,
	}
}

func (s *mailService) IsEnabled() bool {
	return s.config.Enabled && s.config.Host != ""
}

func (s *mailService) SendDocument(ctx context.Context, to string, file *dto.ExportFileDTO) error {
	if !s.IsEnabled() {
		return code.ErrorMailDisabled
	}

	from := s.config.From
	if from == "" {
		from = s.config.Username
	}

	// 邮件主题与正文按全局语言选择
	subject := fmt.Sprintf("Exported document: %s", file.Name)
	body := fmt.Sprintf("The document %s you exported is attached.", file.Name)
	if code.GetGlobalDefaultLang() == "zh_cn" {
		subject = fmt.Sprintf("导出文档: %s", file.Name)
		body = fmt.Sprintf("您导出的文档 %s 见附件。", file.Name)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)
	m.Attach(file.Name,
		gomail.SetCopyFunc(func(w io.Writer) error {
			_, err := w.Write(file.Data)
			return err
		}),
		gomail.SetHeader(map[string][]string{"Content-Type": {file.ContentType}}),
	)

	d := gomail.NewDialer(s.config.Host, s.config.Port, s.config.Username, s.config.Password)
	d.SSL = s.config.SSL

	if err := d.DialAndSend(m); err != nil {
		s.logger.Error("send mail failed", zap.String("to", to), zap.Error(err))
		return code.ErrorMailSendFail.WithDetails(err.Error())
	}

	s.logger.Info("export mailed", zap.String("to", to), zap.String("filename", file.Name))
	return nil
}
