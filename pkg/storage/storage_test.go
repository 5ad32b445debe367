package storage_test

import (
	"testing"

	"github.com/haierkeys/markdown-format-service/pkg/code"
	"github.com/haierkeys/markdown-format-service/pkg/storage"
	"github.com/haierkeys/markdown-format-service/pkg/storage/local_fs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClientLocal(t *testing.T) {
	client, err := storage.NewClient(&storage.Config{
		Type:      storage.LOCAL,
		IsEnabled: true,
		SavePath:  t.TempDir(),
	})
	require.NoError(t, err)
	require.NotNil(t, client)

	// localfs 类型应当落到 LocalFS 实现
	assert.IsType(t, &local_fs.LocalFS{}, client)
}

func TestNewClientInvalidType(t *testing.T) {
	_, err := storage.NewClient(&storage.Config{Type: "ftp", IsEnabled: true})
	assert.ErrorIs(t, err, code.ErrorInvalidStorageType)
}

func TestNewClientDisabled(t *testing.T) {
	// 未启用的后端直接拒绝，不尝试建连
	_, err := storage.NewClient(&storage.Config{Type: storage.LOCAL})
	assert.ErrorIs(t, err, code.ErrorStorageTypeDisabled)
}

func TestNewClientNilConfig(t *testing.T) {
	_, err := storage.NewClient(nil)
	assert.ErrorIs(t, err, code.ErrorInvalidStorageType)
}
