package code

import (
	"fmt"
	"net/http"
)

// Code 带业务码与多语言消息的返回体，实现 error 接口
// 服务层返回 *Code，响应层按 Code/Status/Msg/Data 落到统一 JSON 结构
type Code struct {
	code   int
	status bool
	// Lang 多语言消息
	Lang lang
	// data 响应数据
	data interface{}
	// details 错误详情（多条校验信息）
	details     []string
	haveDetails bool
}

// 业务码注册表，重复注册直接 panic，保证码表唯一
var (
	errCodes  = map[int]string{}
	sussCodes = map[int]string{}
)

// NewError 注册一个失败业务码
func NewError(code int, l lang) *Code {
	if _, ok := errCodes[code]; ok {
		panic(fmt.Sprintf("错误码 %d 已经存在，请更换一个", code))
	}
	errCodes[code] = l.GetMessage()

	return &Code{code: code, status: false, Lang: l}
}

// NewSuss 注册一个成功业务码
func NewSuss(code int, l lang) *Code {
	if _, ok := sussCodes[code]; ok {
		panic(fmt.Sprintf("成功码 %d 已经存在，请更换一个", code))
	}
	sussCodes[code] = l.GetMessage()

	return &Code{code: code, status: true, Lang: l}
}

func (e *Code) Error() string {
	return e.Msg()
}

// Is 按业务码比较，WithData/WithDetails 产生的副本仍与注册码匹配
func (e *Code) Is(target error) bool {
	t, ok := target.(*Code)
	return ok && t.code == e.code
}

func (e *Code) Code() int {
	return e.code
}

func (e *Code) Status() bool {
	return e.status
}

func (e *Code) Msg() string {
	return e.Lang.GetMessage()
}

func (e *Code) Data() interface{} {
	return e.data
}

func (e *Code) Details() []string {
	return e.details
}

func (e *Code) HaveDetails() bool {
	return e.haveDetails
}

// WithData 返回携带响应数据的副本，不修改注册的原对象
func (e *Code) WithData(data interface{}) *Code {
	c := *e
	c.data = data
	return &c
}

// WithDetails 返回携带错误详情的副本，不修改注册的原对象
func (e *Code) WithDetails(details ...string) *Code {
	c := *e
	c.haveDetails = true
	c.details = append([]string{}, details...)
	return &c
}

// StatusCode HTTP 状态码固定 200，业务结果由 code/status 表达
func (e *Code) StatusCode() int {
	return http.StatusOK
}
