package webdav

import (
	"github.com/haierkeys/markdown-format-service/pkg/fileurl"
)

// Delete 删除 WebDAV 远端的归档文件
func (w *WebDAV) Delete(fileKey string) error {
	key := fileurl.PathSuffixCheckAdd(w.Config.CustomPath, "/") + fileKey
	return w.Client.Remove(key)
}
