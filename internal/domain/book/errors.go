package book

import (
	apperrors "github.com/xiebiao/bookshelf/pkg/errors"
)

// 图书领域错误定义
var (
	// ErrBookNotFound 图书不存在
	ErrBookNotFound = apperrors.New(apperrors.ErrCodeBookNotFound, "Book not found")

	// ErrPersistence 存储层故障(约束冲突、连接断开等)
	ErrPersistence = apperrors.New(apperrors.ErrCodeDatabaseError, "Database error")

	// ErrInvalidDate 出版日期格式错误
	ErrInvalidDate = apperrors.New(apperrors.ErrCodeInvalidDate, "Invalid publication_date format, expected YYYY-MM-DD")
)
