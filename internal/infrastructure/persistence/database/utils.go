package database

import (
	"fmt"

	"github.com/xiebiao/bookshelf/internal/domain/book"
	apperrors "github.com/xiebiao/bookshelf/pkg/errors"
)

// persistenceError 把底层数据库错误包装成存储层故障
// 原始错误保留在Err中，只记录到日志，不返回给客户端
func persistenceError(op string, err error) *apperrors.AppError {
	return book.ErrPersistence.WithCause(fmt.Errorf("%s: %w", op, err))
}
