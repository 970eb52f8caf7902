// Package bookinfo 定义外部书目信息查询的契约
// 具体实现位于infrastructure层(如Open Library客户端)
package bookinfo

import (
	"context"
	"net/http"
	"strings"

	apperrors "github.com/xiebiao/bookshelf/pkg/errors"
)

// Metadata 外部服务返回的书目信息(已整形)
// PublishDate原样透传外部格式,可能不是YYYY-MM-DD
type Metadata struct {
	Title       string
	Author      string
	PublishDate string
}

// Provider 按ISBN查询书目信息
type Provider interface {
	// LookupISBN 返回:
	// - ErrNotFound: 外部服务成功响应但没有该ISBN
	// - UpstreamError(status): 外部服务返回非200
	// - ErrUpstreamUnavailable: 网络层失败
	LookupISBN(ctx context.Context, isbn string) (*Metadata, error)
}

var (
	// ErrNotFound 外部服务中没有该ISBN
	ErrNotFound = apperrors.New(apperrors.ErrCodeLookupNotFound, "Book not found")

	// ErrUpstreamUnavailable 外部服务不可达(网络错误、超时、熔断)
	ErrUpstreamUnavailable = apperrors.New(apperrors.ErrCodeUpstreamUnavailable, "External API request failed")

	// ErrUpstreamStatus 外部服务返回非成功状态
	ErrUpstreamStatus = apperrors.New(apperrors.ErrCodeUpstreamError, "Error fetching book information")

	// ErrUpstreamPayload 外部服务响应无法解析
	ErrUpstreamPayload = apperrors.New(apperrors.ErrCodeUpstreamPayload, "Invalid response from external API")
)

// UpstreamError 外部服务返回的状态码原样透传给客户端
func UpstreamError(status int) *apperrors.AppError {
	if status < 100 || status > 599 {
		status = http.StatusBadGateway
	}
	return ErrUpstreamStatus.WithStatus(status)
}

// Unavailable 包装网络层错误,错误描述作为诊断信息返回
func Unavailable(err error) *apperrors.AppError {
	return ErrUpstreamUnavailable.WithCause(err).WithDetails(err.Error())
}

// JoinAuthors 作者名以", "连接,没有作者时返回空串
func JoinAuthors(names []string) string {
	return strings.Join(names, ", ")
}
