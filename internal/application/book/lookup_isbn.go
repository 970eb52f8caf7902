package book

import (
	"context"

	"github.com/xiebiao/bookshelf/internal/domain/bookinfo"
)

// LookupISBNUseCase 外部ISBN查询用例
// 设计说明:
// 1. 结果不写入本地存储，也不缓存
// 2. 外部服务的错误(找不到、非200、网络失败)原样返回，由HTTP层映射状态码
type LookupISBNUseCase struct {
	provider bookinfo.Provider
}

// NewLookupISBNUseCase 创建ISBN查询用例
func NewLookupISBNUseCase(provider bookinfo.Provider) *LookupISBNUseCase {
	return &LookupISBNUseCase{provider: provider}
}

// LookupResponse ISBN查询响应DTO
// publication_date原样透传外部格式，不一定是YYYY-MM-DD
type LookupResponse struct {
	Title           string `json:"title"`
	Author          string `json:"author"`
	PublicationDate string `json:"publication_date"`
}

// Execute 执行ISBN查询用例
func (uc *LookupISBNUseCase) Execute(ctx context.Context, isbn string) (*LookupResponse, error) {
	md, err := uc.provider.LookupISBN(ctx, isbn)
	if err != nil {
		return nil, err
	}
	return &LookupResponse{
		Title:           md.Title,
		Author:          md.Author,
		PublicationDate: md.PublishDate,
	}, nil
}
