package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/haierkeys/markdown-format-service/pkg/logger"
	"github.com/haierkeys/markdown-format-service/pkg/storage"

	"github.com/go-git/go-git/v5"
	gitconfig "github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/transport"
	"github.com/go-git/go-git/v5/plumbing/transport/http"
	"go.uber.org/zap"
)

// GitArchiveConfig 导出文档的 Git 归档配置
type GitArchiveConfig struct {
	Enabled     bool
	RepoPath    string
	RemoteURL   string
	Branch      string
	Username    string
	Token       string
	AuthorName  string
	AuthorEmail string
}

// ArchiveConfig 导出文档归档配置
type ArchiveConfig struct {
	Enabled bool
	Storage storage.Config
	Git     GitArchiveConfig
}

// ArchiveService 定义导出文档归档业务服务接口
type ArchiveService interface {
	// Archive 将导出文档写入归档存储并提交到归档仓库
	Archive(ctx context.Context, pathKey string, data []byte) error
}

type archiveService struct {
	config  ArchiveConfig
	storage storage.Storager
	logger  *zap.Logger
	mu      sync.Mutex // Git 工作区串行访问
}

// NewArchiveService 创建 ArchiveService 实例
func NewArchiveService(cfg ArchiveConfig, logger *zap.Logger) (ArchiveService, error) {
	s := &archiveService{
		config: cfg,
		logger: logger,
	}

	if cfg.Storage.Type != "" && cfg.Storage.IsEnabled {
		client, err := storage.NewClient(&cfg.Storage)
		if err != nil {
			return nil, fmt.Errorf("init archive storage: %w", err)
		}
		s.storage = client
	}

	return s, nil
}

func (s *archiveService) Archive(ctx context.Context, pathKey string, data []byte) error {
	if s.storage != nil {
		if _, err := s.storage.SendContent(pathKey, data, time.Now()); err != nil {
			return fmt.Errorf("archive storage send: %w", err)
		}
	}

	if s.config.Git.Enabled {
		if err := s.commitToRepo(ctx, pathKey, data); err != nil {
			return fmt.Errorf("archive git commit: %w", err)
		}
	}

	return nil
}

func (s *archiveService) branch() string {
	if s.config.Git.Branch != "" {
		return s.config.Git.Branch
	}
	return "main"
}

func (s *archiveService) auth() *http.BasicAuth {
	if s.config.Git.Username == "" && s.config.Git.Token == "" {
		return nil
	}
	return &http.BasicAuth{
		Username: s.config.Git.Username,
		Password: s.config.Git.Token,
	}
}

// ensureRepo 打开归档仓库，不存在时克隆远端或本地初始化
func (s *archiveService) ensureRepo() (*git.Repository, error) {
	repoPath := s.config.Git.RepoPath

	if _, err := os.Stat(filepath.Join(repoPath, ".git")); err == nil {
		return git.PlainOpen(repoPath)
	}

	if s.config.Git.RemoteURL != "" {
		s.logger.Info("cloning archive repo", zap.String(logger.FieldPath, repoPath))
		r, err := git.PlainClone(repoPath, false, &git.CloneOptions{
			URL:           s.config.Git.RemoteURL,
			Auth:          s.auth(),
			ReferenceName: plumbing.NewBranchReferenceName(s.branch()),
			SingleBranch:  true,
		})
		if err == nil {
			return r, nil
		}
		if !errors.Is(err, transport.ErrEmptyRemoteRepository) {
			return nil, fmt.Errorf("git clone failed: %w", err)
		}
		// 远端为空仓库时本地初始化并挂上远端
		r, err = git.PlainInit(repoPath, false)
		if err != nil {
			return nil, err
		}
		_, err = r.CreateRemote(&gitconfig.RemoteConfig{
			Name: "origin",
			URLs: []string{s.config.Git.RemoteURL},
		})
		if err != nil {
			return nil, err
		}
		return r, nil
	}

	s.logger.Info("initializing archive repo", zap.String(logger.FieldPath, repoPath))
	return git.PlainInit(repoPath, false)
}

func (s *archiveService) commitToRepo(ctx context.Context, pathKey string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, err := s.ensureRepo()
	if err != nil {
		return err
	}

	wt, err := r.Worktree()
	if err != nil {
		return err
	}

	fullPath := filepath.Join(s.config.Git.RepoPath, pathKey)
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return err
	}
	if err := os.WriteFile(fullPath, data, 0644); err != nil {
		return err
	}

	status, err := wt.Status()
	if err != nil {
		return err
	}
	if status.IsClean() {
		return nil
	}

	if err := wt.AddWithOptions(&git.AddOptions{All: true}); err != nil {
		return err
	}

	author := &object.Signature{
		Name:  s.config.Git.AuthorName,
		Email: s.config.Git.AuthorEmail,
		When:  time.Now(),
	}
	if author.Name == "" {
		author.Name = "Markdown Format Service"
	}
	if author.Email == "" {
		author.Email = "archive@localhost"
	}

	_, err = wt.Commit("Archive "+pathKey, &git.CommitOptions{Author: author})
	if err != nil {
		return err
	}

	if s.config.Git.RemoteURL != "" {
		s.logger.Info("pushing archive repo", zap.String(logger.FieldPath, pathKey))
		err = r.PushContext(ctx, &git.PushOptions{Auth: s.auth()})
		if err != nil && !errors.Is(err, git.NoErrAlreadyUpToDate) {
			return fmt.Errorf("git push failed: %w", err)
		}
	}

	return nil
}
