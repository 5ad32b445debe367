package app

import (
	"github.com/haierkeys/markdown-format-service/pkg/convert"

	"github.com/gin-gonic/gin"
)

// PaginationConfig 分页参数约束
type PaginationConfig struct {
	DefaultPageSize int
	MaxPageSize     int
}

// DefaultPaginationConfig 未显式配置时的分页约束
var DefaultPaginationConfig = PaginationConfig{
	DefaultPageSize: 10,
	MaxPageSize:     100,
}

// queryOrForm 依次从查询串和表单中取同名参数
func queryOrForm(c *gin.Context, key string) string {
	if s, exist := c.GetQuery(key); exist {
		return s
	}
	return c.PostForm(key)
}

// GetPage 解析页码，非法或缺失时回退到第 1 页
func GetPage(c *gin.Context) int {
	page := convert.StrTo(queryOrForm(c, "page")).MustInt()
	if page <= 0 {
		return 1
	}
	return page
}

// GetPageSizeWithConfig 解析分页大小并收敛到配置的上限内
func GetPageSizeWithConfig(c *gin.Context, cfg PaginationConfig) int {
	pageSize := convert.StrTo(queryOrForm(c, "pageSize")).MustInt()
	if pageSize <= 0 {
		return cfg.DefaultPageSize
	}
	if pageSize > cfg.MaxPageSize {
		return cfg.MaxPageSize
	}
	return pageSize
}

// GetPageSize 使用默认约束解析分页大小
func GetPageSize(c *gin.Context) int {
	return GetPageSizeWithConfig(c, DefaultPaginationConfig)
}

// GetPageOffset 由页码换算记录偏移
func GetPageOffset(page, pageSize int) int {
	if page <= 0 {
		return 0
	}
	return (page - 1) * pageSize
}

// NewPager 基于请求参数构建分页信息
func NewPager(c *gin.Context, totalRows int) *Pager {
	return &Pager{
		Page:      GetPage(c),
		PageSize:  GetPageSize(c),
		TotalRows: totalRows,
	}
}
