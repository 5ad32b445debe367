package dto

// VersionDTO 版本信息 API 响应对象
type VersionDTO struct {
	Version        string `json:"version"`          // 当前版本
	GitTag         string `json:"git_tag"`          // Git 标签
	BuildTime      string `json:"build_time"`       // 构建时间
	VersionIsNew   bool   `json:"version_is_new"`   // 是否有新版本
	VersionNewName string `json:"version_new_name"` // 新版本名称
	VersionNewLink string `json:"version_new_link"` // 新版本下载链接
}
