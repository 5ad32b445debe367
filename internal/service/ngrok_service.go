package service

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/url"
	"sync"

	"go.uber.org/zap"
	"golang.ngrok.com/ngrok/v2"
)

// NgrokService 把本地 HTTP 端口通过 ngrok 隧道暴露到公网
type NgrokService interface {
	Start(ctx context.Context, addr string) error
	Stop(ctx context.Context) error
	TunnelURL() string
}

type ngrokService struct {
	logger    *zap.Logger
	authToken string
	domain    string

	mu       sync.Mutex // 管理端可并发启停，串行化隧道状态变更
	listener net.Listener
	url      string
	agent    ngrok.Agent
}

// NewNgrokService 创建 ngrok 隧道服务
func NewNgrokService(logger *zap.Logger, authToken, domain string) NgrokService {
	return &ngrokService{
		logger:    logger,
		authToken: authToken,
		domain:    domain,
	}
}

// Start 建立隧道并把入站连接转发到 addr，重复启动返回错误
func (s *ngrokService) Start(ctx context.Context, addr string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.authToken == "" {
		return fmt.Errorf("ngrok auth token is required")
	}
	if s.listener != nil {
		return fmt.Errorf("ngrok tunnel is already running at %s", s.url)
	}

	agent, err := ngrok.NewAgent(ngrok.WithAuthtoken(s.authToken))
	if err != nil {
		return fmt.Errorf("failed to create ngrok agent: %w", err)
	}
	s.agent = agent

	// 配了自定义域名就绑定，否则用 ngrok 分配的随机地址
	var endpointOpts []ngrok.EndpointOption
	if s.domain != "" {
		endpointOpts = append(endpointOpts, ngrok.WithURL("https://"+s.domain))
	}

	ln, err := agent.Listen(ctx, endpointOpts...)
	if err != nil {
		return fmt.Errorf("failed to start ngrok tunnel: %w", err)
	}
	s.listener = ln
	s.url = endpointURL(ln)

	s.logger.Info("ngrok tunnel established", zap.String("url", s.url))

	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				s.logger.Debug("ngrok tunnel accept error (likely closed)", zap.Error(err))
				return
			}
			go s.forward(conn, addr)
		}
	}()

	return nil
}

// endpointURL 取隧道的公网地址，SDK 小版本间监听器的 URL 方法签名不一致
func endpointURL(ln net.Listener) string {
	if u, ok := ln.(interface{ URL() *url.URL }); ok {
		return u.URL().String()
	}
	if u, ok := ln.(interface{ URL() string }); ok {
		return u.URL()
	}
	return ln.Addr().String()
}

// forward 在隧道连接和本地端口之间双向拷贝，任一方向断开即拆链
func (s *ngrokService) forward(conn net.Conn, addr string) {
	defer conn.Close()

	local, err := net.Dial("tcp", addr)
	if err != nil {
		s.logger.Error("failed to dial local address", zap.String("addr", addr), zap.Error(err))
		return
	}
	defer local.Close()

	done := make(chan struct{}, 2)
	pipe := func(dst, src net.Conn) {
		_, _ = io.Copy(dst, src)
		done <- struct{}{}
	}
	go pipe(local, conn)
	go pipe(conn, local)
	<-done
}

// Stop 关闭隧道并断开 agent，幂等
func (s *ngrokService) Stop(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.listener != nil {
		if err := s.listener.Close(); err != nil {
			s.logger.Warn("failed to close ngrok tunnel", zap.Error(err))
		}
		s.listener = nil
	}
	if s.agent != nil {
		if err := s.agent.Disconnect(); err != nil {
			s.logger.Warn("failed to disconnect ngrok agent", zap.Error(err))
		}
		s.agent = nil
	}
	s.url = ""
	return nil
}

// TunnelURL 返回当前隧道地址，未启动时为空串
func (s *ngrokService) TunnelURL() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.url
}
