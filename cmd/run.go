package cmd

import (
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	internalApp "github.com/haierkeys/markdown-format-service/internal/app"
	"github.com/haierkeys/markdown-format-service/pkg/fileurl"
	"github.com/haierkeys/markdown-format-service/pkg/util"

	"github.com/radovskyb/watcher"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type runFlags struct {
	dir     string // 项目根目录
	port    string // 启动端口
	runMode string // 启动模式
	config  string // 指定要使用的配置文件路径
}

func init() {
	runEnv := new(runFlags)

	var runCommand = &cobra.Command{
		Use:   "run [-c config_file] [-d working_dir] [-p port]",
		Short: "Run service",
		Run: func(cmd *cobra.Command, args []string) {
			if runEnv.dir != "" {
				if err := os.Chdir(runEnv.dir); err != nil {
					bootstrapLogger.Error("change working directory failed", zap.Error(err))
				} else {
					bootstrapLogger.Info("working directory changed", zap.String("dir", runEnv.dir))
				}
			}

			if runEnv.config == "" {
				path, err := ensureConfig()
				if err != nil {
					bootstrapLogger.Error("prepare config file failed", zap.Error(err))
					return
				}
				runEnv.config = path
			}

			s, err := NewServer(runEnv)
			if err != nil {
				bootstrapLogger.Error("service start failed", zap.Error(err))
				return
			}

			// 配置热更新：配置文件被写入后关停旧 Server 并整体重建
			go watchConfig(runEnv.config, func() {
				s.sc.SendCloseSignal(nil)

				next, err := NewServer(runEnv)
				if err != nil {
					bootstrapLogger.Error("service restart failed", zap.Error(err))
					return
				}
				s = next
			})

			quit := make(chan os.Signal, 1)
			signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

			select {
			case <-quit:
				s.logger.Info("received shutdown signal, closing gracefully")
				s.sc.SendCloseSignal(nil)
			case newBinary := <-s.GetApp().UpgradeSignal:
				s.logger.Info("received upgrade signal, starting smooth restart", zap.String("newBinary", newBinary))
				s.sc.SendCloseSignal(nil)
				if err := s.sc.WaitClosed(); err != nil {
					s.logger.Error("shutdown before upgrade failed", zap.Error(err))
				}
				applyUpgrade(s, newBinary)
				return
			}

			// 等待所有关闭处理器完成，包括 App 容器的优雅关闭
			if err := s.sc.WaitClosed(); err != nil {
				s.logger.Error("shutdown finished with error", zap.Error(err))
			} else {
				s.logger.Info("service has been shut down gracefully")
			}
		},
	}

	rootCmd.AddCommand(runCommand)
	fs := runCommand.Flags()
	fs.StringVarP(&runEnv.dir, "dir", "d", "", "run dir")
	fs.StringVarP(&runEnv.port, "port", "p", "", "run port")
	fs.StringVarP(&runEnv.runMode, "mode", "m", "", "run mode")
	fs.StringVarP(&runEnv.config, "config", "c", "", "config file")
}

// ensureConfig 按约定顺序探测配置文件，一个都不存在时写入默认配置并随机化管理口令
func ensureConfig() (string, error) {
	candidates := []string{"config/config-dev.yaml", "config.yaml", "config/config.yaml"}
	for _, path := range candidates {
		if fileurl.IsExist(path) {
			return path, nil
		}
	}

	path := "config/config.yaml"
	bootstrapLogger.Warn("config file not found, creating default config", zap.String("path", path))

	content := strings.Replace(configDefault, "markdown-format-Auth-Token", util.GetRandomString(32), 1)
	if err := fileurl.CreatePath(path, os.ModePerm); err != nil {
		return "", err
	}
	if err := os.WriteFile(path, []byte(content), 0666); err != nil {
		return "", err
	}

	bootstrapLogger.Info("default config created", zap.String("path", path))
	return path, nil
}

// watchConfig 监听配置文件的写入事件，每个轮询周期至多触发一次 reload
func watchConfig(path string, reload func()) {
	w := watcher.New()
	w.SetMaxEvents(1)
	w.FilterOps(watcher.Write)

	go func() {
		for {
			select {
			case event := <-w.Event:
				bootstrapLogger.Info("config file changed", zap.String("file", event.Path), zap.String("op", event.Op.String()))
				reload()
			case err := <-w.Error:
				bootstrapLogger.Error("config watcher error", zap.Error(err))
			case <-w.Closed:
				bootstrapLogger.Info("config watcher closed")
				return
			}
		}
	}()

	if err := w.Add(path); err != nil {
		bootstrapLogger.Error("config watcher add file failed", zap.Error(err))
	}
	if err := w.Start(time.Second * 5); err != nil {
		bootstrapLogger.Error("config watcher start failed", zap.Error(err))
	}
}

// applyUpgrade 备份当前二进制、换入新版本并原地重启进程。
// 调用前服务必须已完成关停，端口和数据库此时都已释放
func applyUpgrade(s *Server, newBinary string) {
	currentBinary, _ := os.Executable()
	oldBinary := currentBinary + ".old"

	_ = os.Remove(oldBinary)
	if err := util.MoveFile(currentBinary, oldBinary); err != nil {
		s.logger.Error("backup current binary failed", zap.Error(err))
		return
	}
	if err := util.MoveFile(newBinary, currentBinary); err != nil {
		s.logger.Error("replace binary failed", zap.Error(err))
		_ = util.MoveFile(oldBinary, currentBinary)
		return
	}
	if err := os.Chmod(currentBinary, 0755); err != nil {
		s.logger.Error("set executable permission failed", zap.Error(err))
	}

	// 下载目录里还留着压缩包和解出的临时文件
	tempDir := filepath.Dir(newBinary)
	if err := os.RemoveAll(tempDir); err != nil {
		s.logger.Warn("cleanup upgrade temp directory failed", zap.String("path", tempDir), zap.Error(err))
	}

	// Linux 下 syscall.Exec 成功后不会返回
	if err := internalApp.RestartProcess(currentBinary, os.Args, os.Environ()); err != nil {
		s.logger.Error("restart process failed", zap.Error(err))
	}
}
