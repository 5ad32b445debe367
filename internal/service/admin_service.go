package service

import (
	"context"
	"time"

	"github.com/haierkeys/markdown-format-service/internal/dto"
	pkgapp "github.com/haierkeys/markdown-format-service/pkg/app"
	"github.com/haierkeys/markdown-format-service/pkg/code"
	"github.com/haierkeys/markdown-format-service/pkg/timex"
	"github.com/haierkeys/markdown-format-service/pkg/util"

	"go.uber.org/zap"
)

// AdminService 定义管理员认证业务服务接口
type AdminService interface {
	// Login 校验管理密码并签发访问凭证
	Login(ctx context.Context, password string, ip string) (*dto.AdminTokenDTO, error)
}

type adminService struct {
	username     string
	passwordHash string
	tokenExpiry  time.Duration
	tokens       pkgapp.TokenManager
	logger       *zap.Logger
}

// NewAdminService 创建 AdminService 实例
func NewAdminService(username, passwordHash string, tokenExpiry time.Duration, tokens pkgapp.TokenManager, logger *zap.Logger) AdminService {
	return &adminService{
		username:     username,
		passwordHash: passwordHash,
		tokenExpiry:  tokenExpiry,
		tokens:       tokens,
		logger:       logger,
	}
}

func (s *adminService) Login(ctx context.Context, password string, ip string) (*dto.AdminTokenDTO, error) {
	if s.passwordHash == "" || !util.CheckPasswordHash(s.passwordHash, password) {
		s.logger.Warn("admin login rejected", zap.String("ip", ip))
		return nil, code.ErrorAdminAuthFail
	}

	token, err := s.tokens.Generate(s.username, ip)
	if err != nil {
		s.logger.Error("generate admin token failed", zap.Error(err))
		return nil, code.ErrorTokenGenerate.WithDetails(err.Error())
	}

	return &dto.AdminTokenDTO{
		Token:     token,
		ExpiresAt: timex.Time(time.Now().Add(s.tokenExpiry)),
	}, nil
}
