package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/xiebiao/bookshelf/pkg/response"
	"github.com/xiebiao/bookshelf/pkg/tracing"
)

const (
	// HeaderRequestID 请求ID响应头，客户端传入时沿用
	HeaderRequestID = "X-Request-ID"

	requestIDKey = "request_id"
)

// RequestID 请求ID中间件
// 1. 沿用客户端的X-Request-ID，没有则生成UUID
// 2. 写回响应头
// 3. 把带request_id(和trace_id)字段的zap.Logger放入Context，供handler和response使用
func RequestID(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(HeaderRequestID)
		if requestID == "" || len(requestID) > 128 {
			requestID = uuid.New().String()
		}
		c.Set(requestIDKey, requestID)
		c.Header(HeaderRequestID, requestID)

		fields := []zap.Field{zap.String("request_id", requestID)}
		if traceID := tracing.ExtractTraceID(c.Request.Context()); traceID != "" {
			fields = append(fields, zap.String("trace_id", traceID))
		}
		c.Set(response.LoggerKey, log.With(fields...))

		c.Next()
	}
}

// GetRequestID 获取当前请求ID
func GetRequestID(c *gin.Context) string {
	return c.GetString(requestIDKey)
}

// GetLogger 获取请求级Logger，未经过RequestID中间件时返回全局Logger
func GetLogger(c *gin.Context) *zap.Logger {
	if v, ok := c.Get(response.LoggerKey); ok {
		if l, ok := v.(*zap.Logger); ok {
			return l
		}
	}
	return zap.L()
}
