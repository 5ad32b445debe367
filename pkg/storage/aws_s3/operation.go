package aws_s3

import (
	"bytes"
	"context"
	"io"
	"time"

	"github.com/haierkeys/markdown-format-service/pkg/fileurl"
	"github.com/haierkeys/markdown-format-service/pkg/logger"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/s3/transfermanager"
	tmtypes "github.com/aws/aws-sdk-go-v2/feature/s3/transfermanager/types"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

func (p *S3) GetBucket(bucketName string) string {

	// Get bucket
	if len(bucketName) <= 0 {
		bucketName = p.Config.BucketName
	}

	return bucketName
}

// SendFile 上传文件流
func (p *S3) SendFile(fileKey string, file io.Reader, cType string, modTime time.Time) (string, error) {

	ctx := context.Background()
	bucket := p.GetBucket("")

	fileKey = fileurl.PathSuffixCheckAdd(p.Config.CustomPath, "/") + fileKey

	input := &transfermanager.UploadObjectInput{
		Bucket:      aws.String(bucket),
		Key:         aws.String(fileKey),
		Body:        file,
		ContentType: aws.String(cType),
	}

	if !modTime.IsZero() {
		input.Metadata = map[string]string{
			"modification-time": modTime.Format(time.RFC3339),
		}
	}

	_, err := p.TransferManager.UploadObject(ctx, input)

	if err != nil {
		return "", errors.Wrap(err, "aws_s3")
	}

	return fileKey, nil
}

// SendContent 上传二进制内容
func (p *S3) SendContent(fileKey string, content []byte, modTime time.Time) (string, error) {

	ctx := context.Background()
	bucket := p.GetBucket("")

	fileKey = fileurl.PathSuffixCheckAdd(p.Config.CustomPath, "/") + fileKey

	input := &transfermanager.UploadObjectInput{
		Bucket:            aws.String(bucket),
		Key:               aws.String(fileKey),
		Body:              bytes.NewReader(content),
		ChecksumAlgorithm: tmtypes.ChecksumAlgorithmSha256,
	}

	if !modTime.IsZero() {
		input.Metadata = map[string]string{
			"modification-time": modTime.Format(time.RFC3339),
		}
	}

	_, err := p.TransferManager.UploadObject(ctx, input)
	if err != nil {
		var noBucket *types.NoSuchBucket
		if errors.As(err, &noBucket) {
			p.logger.Warn("Bucket does not exist",
				zap.String(logger.FieldBucket, bucket),
				zap.Error(err),
			)
			err = noBucket
		}
		return fileKey, errors.Wrap(err, "aws_s3")
	}

	err = s3.NewObjectExistsWaiter(p.S3Client).Wait(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(fileKey),
	}, time.Minute)
	if err != nil {
		p.logger.Warn("Failed attempt to wait for object to exist",
			zap.String(logger.FieldFileKey, fileKey),
			zap.String(logger.FieldBucket, bucket),
			zap.Error(err),
		)
	}

	return fileKey, nil
}
