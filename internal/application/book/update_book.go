package book

import (
	"context"

	"github.com/xiebiao/bookshelf/internal/domain/book"
)

// UpdateBookUseCase 更新图书用例
// 四个可变字段整体替换，请求中没有isbn时清空原有ISBN
type UpdateBookUseCase struct {
	bookService book.Service
}

// NewUpdateBookUseCase 创建更新图书用例
func NewUpdateBookUseCase(bookService book.Service) *UpdateBookUseCase {
	return &UpdateBookUseCase{bookService: bookService}
}

// Execute 执行更新图书用例
func (uc *UpdateBookUseCase) Execute(ctx context.Context, id uint, in BookInput) (*BookDTO, error) {
	b, err := uc.bookService.UpdateBook(ctx, id, in.Title, in.Author, in.PublicationDate, in.ISBN)
	if err != nil {
		return nil, err
	}
	dto := toBookDTO(b)
	return &dto, nil
}
