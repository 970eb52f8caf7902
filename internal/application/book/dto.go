package book

import (
	"github.com/xiebiao/bookshelf/internal/domain/book"
)

// BookDTO 图书输出DTO
// 出版日期格式化为YYYY-MM-DD，ISBN未设置时为null
type BookDTO struct {
	ID              uint    `json:"id"`
	Title           string  `json:"title"`
	Author          string  `json:"author"`
	PublicationDate string  `json:"publication_date"`
	ISBN            *string `json:"isbn"`
}

func toBookDTO(b *book.Book) BookDTO {
	return BookDTO{
		ID:              b.ID,
		Title:           b.Title,
		Author:          b.Author,
		PublicationDate: b.PublicationDateString(),
		ISBN:            b.ISBN,
	}
}
