package errors

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/haierkeys/markdown-format-service/internal/middleware"
	"github.com/haierkeys/markdown-format-service/pkg/code"

	"github.com/gin-gonic/gin"
)

// AppError API 错误响应信封
// 错误码与消息来自 code 注册表，TraceID 由请求中间件注入
type AppError struct {
	// Code 错误码
	Code int `json:"code"`
	// Message 错误消息
	Message string `json:"message"`
	// Details 错误详情（可选）
	Details []string `json:"details,omitempty"`
	// TraceID 请求追踪ID
	TraceID string `json:"traceId,omitempty"`
	// Cause 原始错误（不序列化到JSON）
	Cause error `json:"-"`
	// Timestamp 错误发生时间
	Timestamp time.Time `json:"timestamp"`
}

// Error 实现 error 接口
func (e *AppError) Error() string {
	return e.Message
}

// Unwrap 返回原始错误，支持 errors.Is / errors.As 链式判断
func (e *AppError) Unwrap() error {
	return e.Cause
}

// NewAppError 基于注册表错误码构造 AppError
func NewAppError(c *code.Code, cause error) *AppError {
	return &AppError{
		Code:      c.Code(),
		Message:   c.Msg(),
		Details:   c.Details(),
		Cause:     cause,
		Timestamp: time.Now(),
	}
}

// WithTraceID 填充追踪ID后返回自身
func (e *AppError) WithTraceID(traceID string) *AppError {
	e.TraceID = traceID
	return e
}

// ErrorResponse 将业务错误写成统一 JSON 响应
// 注册表错误码原样透出，上下文超时映射为服务超时码，其余归为内部错误
func ErrorResponse(c *gin.Context, err error) {
	traceID := middleware.GetTraceIDFromGin(c)

	var appErr *AppError
	if errors.As(err, &appErr) {
		c.JSON(http.StatusOK, appErr.WithTraceID(traceID))
		return
	}

	var codeErr *code.Code
	if errors.As(err, &codeErr) {
		c.JSON(http.StatusOK, NewAppError(codeErr, nil).WithTraceID(traceID))
		return
	}

	// 渲染或导出在超时上下文里跑，裸的超时错误在这里兜住
	if errors.Is(err, context.DeadlineExceeded) {
		c.JSON(http.StatusOK, NewAppError(code.ErrorServerTimeout, err).WithTraceID(traceID))
		return
	}

	c.JSON(http.StatusOK, NewAppError(code.ErrorServerInternal, err).WithTraceID(traceID))
}
