package util

import (
	"os"
	"os/exec"
	"runtime"
	"strings"
)

// GetOSPrettyName 返回带发行版或版本号的操作系统名称
// 读取失败时退回通用名称
func GetOSPrettyName() string {
	switch runtime.GOOS {
	case "linux":
		if name := linuxPrettyName(); name != "" {
			return name
		}
		return "Linux"
	case "windows":
		if out := commandOutput("cmd", "/c", "ver"); out != "" {
			return out
		}
		return "Windows"
	case "darwin":
		if out := commandOutput("sw_vers", "-productVersion"); out != "" {
			return "macOS " + out
		}
		return "macOS"
	default:
		return runtime.GOOS
	}
}

// linuxPrettyName 取 /etc/os-release 的 PRETTY_NAME
func linuxPrettyName() string {
	data, err := os.ReadFile("/etc/os-release")
	if err != nil {
		return ""
	}
	for _, line := range strings.Split(string(data), "\n") {
		if value, ok := strings.CutPrefix(line, "PRETTY_NAME="); ok {
			return strings.Trim(value, "\"")
		}
	}
	return ""
}

func commandOutput(name string, args ...string) string {
	out, err := exec.Command(name, args...).Output()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(out))
}
