package book

import (
	"encoding/json"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/xiebiao/bookshelf/internal/domain/book"
	apperrors "github.com/xiebiao/bookshelf/pkg/errors"
)

// 必填字段，按此顺序检查，报告第一个缺失的字段
var requiredFields = []string{"title", "author", "publication_date"}

var validate = validator.New()

// BookInput 校验通过的创建/更新输入
type BookInput struct {
	Title           string
	Author          string
	PublicationDate time.Time // UTC零点
	ISBN            *string   // nil表示未提供
}

// ParsePayload 校验创建/更新请求体
// 设计说明:
// 1. 直接处理原始字节，区分"字段缺失"和"字段类型错误"
// 2. 校验在访问存储之前完成，失败时不会产生部分写入
// 3. 返回的*AppError可直接交给response.Error
func ParsePayload(body []byte) (*BookInput, *apperrors.AppError) {
	var payload map[string]interface{}
	if err := json.Unmarshal(body, &payload); err != nil || len(payload) == 0 {
		return nil, apperrors.ErrMalformedRequest
	}

	// 1. 必填字段
	for _, field := range requiredFields {
		if isBlank(payload[field]) {
			return nil, apperrors.MissingField(field)
		}
	}

	// 2. 字段类型
	title, ok := payload["title"].(string)
	if !ok {
		return nil, apperrors.InvalidField("title", "must be a string")
	}
	author, ok := payload["author"].(string)
	if !ok {
		return nil, apperrors.InvalidField("author", "must be a string")
	}

	// 3. 出版日期: 严格YYYY-MM-DD
	rawDate, ok := payload["publication_date"].(string)
	if !ok || validate.Var(rawDate, "datetime="+book.DateLayout) != nil {
		return nil, book.ErrInvalidDate
	}
	publicationDate, err := book.ParseDate(rawDate)
	if err != nil {
		return nil, book.ErrInvalidDate
	}

	// 4. ISBN可选
	var isbn *string
	switch v := payload["isbn"].(type) {
	case nil:
	case string:
		isbn = &v
	default:
		return nil, apperrors.InvalidField("isbn", "must be a string")
	}

	return &BookInput{
		Title:           title,
		Author:          author,
		PublicationDate: publicationDate,
		ISBN:            isbn,
	}, nil
}

// isBlank 缺失、null、空串、0、false、空数组、空对象都视为未提供
func isBlank(v interface{}) bool {
	if v == nil {
		return true
	}
	if err := validate.Var(v, "required"); err != nil {
		return true
	}
	switch x := v.(type) {
	case []interface{}:
		return len(x) == 0
	case map[string]interface{}:
		return len(x) == 0
	}
	return false
}
