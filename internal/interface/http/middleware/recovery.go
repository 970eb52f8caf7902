package middleware

import (
	"fmt"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apperrors "github.com/xiebiao/bookshelf/pkg/errors"
	"github.com/xiebiao/bookshelf/pkg/response"
)

// Recovery panic恢复中间件
// 记录堆栈，尚未写出响应时返回JSON格式的500
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				GetLogger(c).Error("panic recovered",
					zap.Any("panic", rec),
					zap.ByteString("stack", debug.Stack()),
				)

				if !c.Writer.Written() {
					response.Error(c, apperrors.ErrInternal.WithCause(fmt.Errorf("panic: %v", rec)))
				}
				c.Abort()
			}
		}()
		c.Next()
	}
}
