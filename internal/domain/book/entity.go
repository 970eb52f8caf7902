package book

import (
	"time"
)

// DateLayout 出版日期的唯一合法格式（YYYY-MM-DD）
const DateLayout = "2006-01-02"

// Book 图书实体
// 设计说明:
// 1. ID由存储层在创建时分配，此后不可变
// 2. PublicationDate只保留日期部分，统一为UTC零点
// 3. ISBN可为空(nil)，不要求唯一
type Book struct {
	ID              uint
	Title           string
	Author          string
	PublicationDate time.Time
	ISBN            *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// NewBook 创建新图书(工厂方法)
// title/author必须非空，由调用方(校验层)保证
func NewBook(title, author string, publicationDate time.Time, isbn *string) *Book {
	now := time.Now()
	return &Book{
		Title:           title,
		Author:          author,
		PublicationDate: TruncateDate(publicationDate),
		ISBN:            isbn,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

// Replace 整体替换可变字段(不是部分合并)
// isbn为nil时清空原有ISBN
func (b *Book) Replace(title, author string, publicationDate time.Time, isbn *string) {
	b.Title = title
	b.Author = author
	b.PublicationDate = TruncateDate(publicationDate)
	b.ISBN = isbn
	b.UpdatedAt = time.Now()
}

// PublicationDateString 按YYYY-MM-DD格式输出出版日期
func (b *Book) PublicationDateString() string {
	return b.PublicationDate.Format(DateLayout)
}

// TruncateDate 去掉时间和时区，只保留年月日(UTC零点)
// 数据库驱动可能以本地时区返回DATE列，统一后比较和格式化才稳定
func TruncateDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate 严格按YYYY-MM-DD解析日期
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, err
	}
	return TruncateDate(t), nil
}
