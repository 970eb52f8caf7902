package book

import (
	"context"

	"github.com/xiebiao/bookshelf/internal/domain/book"
)

// CreateBookUseCase 新增图书用例
// 设计说明:
// 1. 输入是已经通过ParsePayload校验的BookInput
// 2. 应用层不直接操作Repository，通过领域服务间接操作
type CreateBookUseCase struct {
	bookService book.Service
}

// NewCreateBookUseCase 创建新增图书用例
func NewCreateBookUseCase(bookService book.Service) *CreateBookUseCase {
	return &CreateBookUseCase{bookService: bookService}
}

// CreateBookResponse 新增图书响应DTO
type CreateBookResponse struct {
	ID uint `json:"id"`
}

// Execute 执行新增图书用例
func (uc *CreateBookUseCase) Execute(ctx context.Context, in BookInput) (*CreateBookResponse, error) {
	b, err := uc.bookService.CreateBook(ctx, in.Title, in.Author, in.PublicationDate, in.ISBN)
	if err != nil {
		return nil, err
	}
	return &CreateBookResponse{ID: b.ID}, nil
}
