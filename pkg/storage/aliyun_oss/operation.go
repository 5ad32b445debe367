package aliyun_oss

import (
	"bytes"
	"io"
	"time"

	"github.com/haierkeys/markdown-format-service/pkg/fileurl"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"
	"github.com/pkg/errors"
)

func (p *OSS) GetBucket(bucketName string) error {
	// Get bucket
	if len(bucketName) <= 0 {
		bucketName = p.Config.BucketName
	}
	var err error
	p.Bucket, err = p.Client.Bucket(bucketName)
	return err
}

// SendFile 上传文件流
func (p *OSS) SendFile(fileKey string, file io.Reader, cType string, modTime time.Time) (string, error) {
	if p.Bucket == nil {
		err := p.GetBucket("")
		if err != nil {
			return "", errors.Wrap(err, "aliyun_oss")
		}
	}

	fileKey = fileurl.PathSuffixCheckAdd(p.Config.CustomPath, "/") + fileKey

	options := []oss.Option{}
	if cType != "" {
		options = append(options, oss.ContentType(cType))
	}
	if !modTime.IsZero() {
		options = append(options, oss.Meta("modification-time", modTime.Format(time.RFC3339)))
	}

	err := p.Bucket.PutObject(fileKey, file, options...)
	if err != nil {
		return "", errors.Wrap(err, "aliyun_oss")
	}
	return fileKey, nil
}

// SendContent 上传二进制内容
func (p *OSS) SendContent(fileKey string, content []byte, modTime time.Time) (string, error) {
	if p.Bucket == nil {
		err := p.GetBucket("")
		if err != nil {
			return "", errors.Wrap(err, "aliyun_oss")
		}
	}

	fileKey = fileurl.PathSuffixCheckAdd(p.Config.CustomPath, "/") + fileKey

	options := []oss.Option{}
	if !modTime.IsZero() {
		options = append(options, oss.Meta("modification-time", modTime.Format(time.RFC3339)))
	}

	err := p.Bucket.PutObject(fileKey, bytes.NewReader(content), options...)
	if err != nil {
		return "", errors.Wrap(err, "aliyun_oss")
	}
	return fileKey, nil
}
