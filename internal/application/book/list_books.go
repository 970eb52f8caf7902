package book

import (
	"context"

	"github.com/xiebiao/bookshelf/internal/domain/book"
)

// ListBooksUseCase 图书列表查询用例
// 不分页，按ID升序返回全部图书
type ListBooksUseCase struct {
	bookService book.Service
}

// NewListBooksUseCase 创建列表查询用例
func NewListBooksUseCase(bookService book.Service) *ListBooksUseCase {
	return &ListBooksUseCase{bookService: bookService}
}

// Execute 执行列表查询用例
// 没有图书时返回空切片(序列化为[]而不是null)
func (uc *ListBooksUseCase) Execute(ctx context.Context) ([]BookDTO, error) {
	books, err := uc.bookService.ListBooks(ctx)
	if err != nil {
		return nil, err
	}

	list := make([]BookDTO, len(books))
	for i, b := range books {
		list[i] = toBookDTO(b)
	}
	return list, nil
}
