//go:build windows

package app

import (
	"os"
	"os/exec"
)

// RestartProcess 重启当前进程
// Windows 没有 exec 语义，先拉起新进程再退出旧进程
func RestartProcess(argv0 string, args []string, env []string) error {
	var argRest []string
	if len(args) > 1 {
		argRest = args[1:]
	}

	cmd := exec.Command(argv0, argRest...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Env = env
	if err := cmd.Start(); err != nil {
		return err
	}

	os.Exit(0)
	return nil
}
