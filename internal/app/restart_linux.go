//go:build linux

package app

import (
	"syscall"
)

// RestartProcess 原地重启当前进程
// syscall.Exec 直接替换进程映像，PID 不变
func RestartProcess(argv0 string, args []string, env []string) error {
	return syscall.Exec(argv0, args, env)
}
