package local_fs

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/haierkeys/markdown-format-service/pkg/fileurl"

	"github.com/pkg/errors"
)

// getSavePath 返回带结尾斜杠的保存根路径
func (p *LocalFS) getSavePath() string {
	return fileurl.PathSuffixCheckAdd(p.Config.SavePath, "/")
}

// SendFile 将文件流保存到本地存储目录，返回保存后的完整路径
func (p *LocalFS) SendFile(fileKey string, file io.Reader, cType string, modTime time.Time) (string, error) {

	dst := p.getSavePath() + fileKey
	if err := os.MkdirAll(filepath.Dir(dst), os.ModePerm); err != nil {
		return "", errors.Wrap(err, "local_fs")
	}

	out, err := os.Create(dst)
	if err != nil {
		return "", errors.Wrap(err, "local_fs")
	}
	if _, err := io.Copy(out, file); err != nil {
		out.Close()
		return "", errors.Wrap(err, "local_fs")
	}
	if err := out.Close(); err != nil {
		return "", errors.Wrap(err, "local_fs")
	}

	if !modTime.IsZero() {
		if err := os.Chtimes(dst, modTime, modTime); err != nil {
			return "", errors.Wrap(err, "local_fs")
		}
	}

	return dst, nil
}

// SendContent 将二进制内容保存到本地存储目录，返回保存后的完整路径
func (p *LocalFS) SendContent(fileKey string, content []byte, modTime time.Time) (string, error) {

	dst := p.getSavePath() + fileKey
	if err := os.MkdirAll(filepath.Dir(dst), os.ModePerm); err != nil {
		return "", errors.Wrap(err, "local_fs")
	}

	if err := os.WriteFile(dst, content, 0644); err != nil {
		return "", errors.Wrap(err, "local_fs")
	}

	if !modTime.IsZero() {
		if err := os.Chtimes(dst, modTime, modTime); err != nil {
			return "", errors.Wrap(err, "local_fs")
		}
	}

	return dst, nil
}
