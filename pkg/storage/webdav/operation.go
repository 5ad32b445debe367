package webdav

import (
	"io"
	"os"
	"path"
	"time"

	"github.com/haierkeys/markdown-format-service/pkg/fileurl"

	"github.com/pkg/errors"
)

// SendFile 将文件流上传到 WebDAV 服务器。
// WebDAV 协议不支持设置文件修改时间，modTime 仅用于满足统一接口。
func (w *WebDAV) SendFile(fileKey string, file io.Reader, cType string, modTime time.Time) (string, error) {

	fileKey = fileurl.PathSuffixCheckAdd(w.Config.CustomPath, "/") + fileKey

	err := w.Client.MkdirAll(path.Dir(fileKey), 0644)
	if err != nil {
		return "", errors.Wrap(err, "webdav")
	}

	content, err := io.ReadAll(file)
	if err != nil {
		return "", errors.Wrap(err, "webdav")
	}

	err = w.Client.Write(fileKey, content, os.ModePerm)
	if err != nil {
		return "", errors.Wrap(err, "webdav")
	}

	return fileKey, nil
}

// SendContent 将二进制内容上传到 WebDAV 服务器。
func (w *WebDAV) SendContent(fileKey string, content []byte, modTime time.Time) (string, error) {

	fileKey = fileurl.PathSuffixCheckAdd(w.Config.CustomPath, "/") + fileKey

	err := w.Client.Write(fileKey, content, os.ModePerm)
	if err != nil {
		return "", errors.Wrap(err, "webdav")
	}

	return fileKey, nil
}
