package util

import (
	"errors"
	"os"
	"os/exec"
	"runtime"
	"strings"
	"sync"

	"github.com/denisbrodbeck/machineid"
)

var machineIDOnce struct {
	sync.Once
	id string
}

// GetMachineID 返回当前机器的唯一标识
// 优先取 machineid 库，失败回退主板序列号，全部失败返回空串
func GetMachineID() string {
	machineIDOnce.Do(func() {
		if id, err := machineid.ID(); err == nil && id != "" {
			machineIDOnce.id = id
			return
		}
		if id, err := boardSerial(); err == nil && id != "" {
			machineIDOnce.id = id
		}
	})
	return machineIDOnce.id
}

// boardSerial 读取主板序列号
func boardSerial() (string, error) {
	switch runtime.GOOS {
	case "linux":
		content, err := os.ReadFile("/sys/class/dmi/id/board_serial")
		if err != nil {
			return "", err
		}
		return strings.TrimSpace(string(content)), nil
	case "windows":
		out, err := exec.Command("wmic", "baseboard", "get", "serialnumber").Output()
		if err != nil {
			return "", err
		}
		return firstSerialLine(string(out)), nil
	default:
		// darwin 需要解析 ioreg 输出，未实现，走空值回退
		return "", errors.New("board serial not supported on " + runtime.GOOS)
	}
}

// firstSerialLine 取 wmic 输出里标题行之后的第一个非空行
func firstSerialLine(output string) string {
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.EqualFold(line, "SerialNumber") {
			continue
		}
		return line
	}
	return ""
}
