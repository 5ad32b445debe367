package aliyun_oss

import (
	"github.com/haierkeys/markdown-format-service/pkg/fileurl"
)

// Delete 删除 OSS 中的归档对象，Bucket 未初始化时先惰性建立连接
func (p *OSS) Delete(fileKey string) error {
	if p.Bucket == nil {
		if err := p.GetBucket(""); err != nil {
			return err
		}
	}
	key := fileurl.PathSuffixCheckAdd(p.Config.CustomPath, "/") + fileKey
	return p.Bucket.DeleteObject(key)
}
