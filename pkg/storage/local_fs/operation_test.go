package local_fs

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T) *LocalFS {
	t.Helper()
	client, err := NewClient(&Config{SavePath: t.TempDir()})
	require.NoError(t, err)
	return client
}

func TestSendFile(t *testing.T) {
	client := newTestClient(t)

	content := "# 导出归档\n\n正文内容\n"
	modTime := time.Date(2025, 3, 15, 9, 30, 0, 0, time.UTC)

	savedPath, err := client.SendFile("exports/2025/notes.md", strings.NewReader(content), "text/markdown", modTime)
	require.NoError(t, err)

	// 子目录应当自动创建
	got, err := os.ReadFile(savedPath)
	require.NoError(t, err)
	assert.Equal(t, content, string(got))

	info, err := os.Stat(savedPath)
	require.NoError(t, err)
	// 文件系统时间精度不一，允许 1s 以内误差
	assert.WithinDuration(t, modTime, info.ModTime(), time.Second)
}

func TestSendFileZeroModTime(t *testing.T) {
	client := newTestClient(t)

	before := time.Now()
	savedPath, err := client.SendFile("plain.md", strings.NewReader("body"), "text/markdown", time.Time{})
	require.NoError(t, err)

	// 零值时间不回写 mtime，保留写入时刻
	info, err := os.Stat(savedPath)
	require.NoError(t, err)
	assert.False(t, info.ModTime().Before(before.Add(-time.Second)))
}

func TestSendContent(t *testing.T) {
	client := newTestClient(t)

	content := []byte("archive payload")
	modTime := time.Date(2025, 3, 16, 18, 0, 0, 0, time.UTC)

	savedPath, err := client.SendContent("exports/archive-20250316.zip", content, modTime)
	require.NoError(t, err)
	assert.Equal(t, "exports", filepath.Base(filepath.Dir(savedPath)))

	got, err := os.ReadFile(savedPath)
	require.NoError(t, err)
	assert.Equal(t, content, got)

	info, err := os.Stat(savedPath)
	require.NoError(t, err)
	assert.WithinDuration(t, modTime, info.ModTime(), time.Second)
}

func TestDelete(t *testing.T) {
	client := newTestClient(t)

	savedPath, err := client.SendContent("exports/tmp.md", []byte("x"), time.Time{})
	require.NoError(t, err)

	require.NoError(t, client.Delete("exports/tmp.md"))
	_, err = os.Stat(savedPath)
	assert.True(t, os.IsNotExist(err))

	// 删除不存在的文件不报错
	assert.NoError(t, client.Delete("exports/missing.md"))
}
