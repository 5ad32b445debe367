package convert

import (
	"github.com/jinzhu/copier"
)

// StructAssign 把 src 与 dst 同名字段的值复制到 dst 中
// 字段类型可转换时自动转换（如 time.Time 与 timex.Time）
// dst 需传入指针，返回 dst 本身便于链式断言
func StructAssign(src any, dst any) any {
	copier.Copy(dst, src)
	return dst
}
