package aws_s3

import (
	"context"

	"github.com/haierkeys/markdown-format-service/pkg/fileurl"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Delete 删除存储桶中的归档对象，对象不存在时 S3 同样返回成功
func (p *S3) Delete(fileKey string) error {
	key := fileurl.PathSuffixCheckAdd(p.Config.CustomPath, "/") + fileKey
	_, err := p.S3Client.DeleteObject(context.Background(), &s3.DeleteObjectInput{
		Bucket: aws.String(p.GetBucket("")),
		Key:    aws.String(key),
	})
	return err
}
