package cloudflare_r2

import (
	"context"

	"github.com/haierkeys/markdown-format-service/pkg/fileurl"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Delete 删除 R2 存储桶中的归档对象，走 S3 兼容接口
func (p *R2) Delete(fileKey string) error {
	key := fileurl.PathSuffixCheckAdd(p.Config.CustomPath, "/") + fileKey
	_, err := p.S3Client.DeleteObject(context.Background(), &s3.DeleteObjectInput{
		Bucket: aws.String(p.GetBucket("")),
		Key:    aws.String(key),
	})
	return err
}
