package local_fs

import (
	"os"

	"github.com/haierkeys/markdown-format-service/pkg/fileurl"
)

// Delete 删除本地存储目录中的文件，文件不存在时视为成功
func (p *LocalFS) Delete(fileKey string) error {
	dst := p.getSavePath() + fileKey
	if !fileurl.IsExist(dst) {
		return nil
	}
	return os.Remove(dst)
}
