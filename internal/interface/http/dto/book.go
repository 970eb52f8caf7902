package dto

import (
	appbook "github.com/xiebiao/bookshelf/internal/application/book"
)

// BookRequest 新增/更新图书请求
// 只用于生成API文档，请求体由application/book.ParsePayload直接校验
type BookRequest struct {
	Title           string  `json:"title" example:"Dune"`
	Author          string  `json:"author" example:"Frank Herbert"`
	PublicationDate string  `json:"publication_date" example:"1965-08-01"` // YYYY-MM-DD
	ISBN            *string `json:"isbn,omitempty" example:"9780441013593"`
}

// BookResponse HTTP图书响应
type BookResponse struct {
	ID              uint    `json:"id" example:"1"`
	Title           string  `json:"title" example:"Dune"`
	Author          string  `json:"author" example:"Frank Herbert"`
	PublicationDate string  `json:"publication_date" example:"1965-08-01"`
	ISBN            *string `json:"isbn" example:"9780441013593"` // 未设置时为null
}

// LookupResponse 外部ISBN查询响应
// publication_date是外部服务的原始格式
type LookupResponse struct {
	Title           string `json:"title" example:"Dune"`
	Author          string `json:"author" example:"Frank Herbert"`
	PublicationDate string `json:"publication_date" example:"2005"`
}

// NewBookResponse 应用层DTO → HTTP响应
func NewBookResponse(b *appbook.BookDTO) BookResponse {
	return BookResponse{
		ID:              b.ID,
		Title:           b.Title,
		Author:          b.Author,
		PublicationDate: b.PublicationDate,
		ISBN:            b.ISBN,
	}
}

// NewBookListResponse 列表转换，空列表返回[]而不是null
func NewBookListResponse(list []appbook.BookDTO) []BookResponse {
	out := make([]BookResponse, len(list))
	for i := range list {
		out[i] = NewBookResponse(&list[i])
	}
	return out
}

// NewLookupResponse 应用层DTO → HTTP响应
func NewLookupResponse(r *appbook.LookupResponse) LookupResponse {
	return LookupResponse{
		Title:           r.Title,
		Author:          r.Author,
		PublicationDate: r.PublicationDate,
	}
}
