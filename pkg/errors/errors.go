package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// AppError 自定义应用错误
// 设计说明：
// 1. Code是业务错误码，前三位即HTTP状态码（40402 → 404）
// 2. Message是返回给客户端的提示信息
// 3. Details是可选的诊断信息（如外部接口失败原因），会出现在响应体中
// 4. Err是内部错误，仅记录到日志，不返回给客户端
type AppError struct {
	Code    int    `json:"code"`
	Message string `json:"error"`
	Details string `json:"details,omitempty"`
	Status  int    `json:"-"` // 非0时覆盖由Code推导出的HTTP状态码
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%d] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%d] %s", e.Code, e.Message)
}

// Unwrap 支持errors.Is和errors.As
func (e *AppError) Unwrap() error {
	return e.Err
}

// Is 按业务错误码比较，使预定义错误经过WithDetails等复制后仍可用errors.Is判断
func (e *AppError) Is(target error) bool {
	var t *AppError
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == e.Code && t.Message == e.Message
}

// HTTPStatus 返回应答使用的HTTP状态码
func (e *AppError) HTTPStatus() int {
	if e.Status != 0 {
		return e.Status
	}
	status := e.Code / 100
	if status < 400 || status > 599 {
		return http.StatusInternalServerError
	}
	return status
}

// WithDetails 复制错误并附加诊断信息
func (e *AppError) WithDetails(details string) *AppError {
	cp := *e
	cp.Details = details
	return &cp
}

// WithStatus 复制错误并覆盖HTTP状态码（外部接口状态码透传）
func (e *AppError) WithStatus(status int) *AppError {
	cp := *e
	cp.Status = status
	return &cp
}

// WithCause 复制错误并记录内部原因
func (e *AppError) WithCause(err error) *AppError {
	cp := *e
	cp.Err = err
	return &cp
}

// New 创建新的AppError
func New(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap 包装系统错误（如数据库错误、网络错误）
func Wrap(err error, message string) *AppError {
	return &AppError{
		Code:    ErrCodeInternal,
		Message: message,
		Err:     err,
	}
}

// Wrapf 格式化包装错误
func Wrapf(err error, format string, args ...interface{}) *AppError {
	return &AppError{
		Code:    ErrCodeInternal,
		Message: fmt.Sprintf(format, args...),
		Err:     err,
	}
}

// =========================================
// 错误码定义
// =========================================
// 规范：5位数字，前三位为HTTP状态码
// - 400xx: 请求参数错误
// - 404xx: 资源不存在
// - 500xx: 服务端错误（数据库、外部服务）
// - 502xx: 外部服务返回非成功状态（实际状态码透传）

const (
	// 系统级错误码
	ErrCodeInternal            = 50000 // 内部错误
	ErrCodeDatabaseError       = 50001 // 数据库错误
	ErrCodeUpstreamPayload     = 50002 // 外部服务响应无法解析
	ErrCodeUpstreamUnavailable = 50003 // 外部服务不可达

	// 外部服务错误
	ErrCodeUpstreamError = 50200 // 外部服务返回非200

	// 参数错误
	ErrCodeMalformedRequest = 40001 // 请求体不是JSON对象
	ErrCodeMissingField     = 40002 // 缺少必填字段
	ErrCodeInvalidDate      = 40003 // 日期格式错误

	// 资源错误
	ErrCodeNotFound       = 40400 // 资源不存在(通用)
	ErrCodeBookNotFound   = 40402 // 图书不存在
	ErrCodeLookupNotFound = 40405 // 外部服务中无此ISBN
)

// =========================================
// 预定义错误
// =========================================

var (
	ErrInternal         = New(ErrCodeInternal, "Internal server error")
	ErrDatabaseError    = New(ErrCodeDatabaseError, "Database error")
	ErrMalformedRequest = New(ErrCodeMalformedRequest, "Request body must be JSON")
	ErrNotFound         = New(ErrCodeNotFound, "Resource not found")
)

// =========================================
// 辅助函数
// =========================================

// IsAppError 判断是否为AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetAppError 提取AppError（如果不是AppError则包装成Internal错误）
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return Wrap(err, ErrInternal.Message)
}

// MissingField 缺少必填字段
func MissingField(field string) *AppError {
	return New(ErrCodeMissingField, "Missing required field: "+field)
}

// InvalidField 字段类型错误
func InvalidField(field, reason string) *AppError {
	return New(ErrCodeMalformedRequest, fmt.Sprintf("Field %s %s", field, reason))
}
