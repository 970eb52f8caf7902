package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apperrors "github.com/xiebiao/bookshelf/pkg/errors"
)

// MessageBody 操作确认响应
type MessageBody struct {
	Message string `json:"message" example:"Book added successfully"`
	ID      uint   `json:"id,omitempty" example:"1"`
}

// ErrorBody 错误响应
// 设计说明：
// 1. Code是业务错误码，方便客户端区分错误类型
// 2. Error是用户友好的提示信息
// 3. Details仅在外部服务失败等场景返回诊断信息
type ErrorBody struct {
	Code    int    `json:"code" example:"40402"`
	Error   string `json:"error" example:"Book not found"`
	Details string `json:"details,omitempty"`
}

// JSON 以指定状态码返回业务数据
func JSON(c *gin.Context, status int, data interface{}) {
	c.JSON(status, data)
}

// OK 200返回业务数据
func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// Message 返回操作确认信息
func Message(c *gin.Context, status int, message string) {
	c.JSON(status, MessageBody{Message: message})
}

// Created 201返回创建确认
func Created(c *gin.Context, id uint, message string) {
	c.JSON(http.StatusCreated, MessageBody{Message: message, ID: id})
}

// Error 错误响应（自动处理AppError）
// 用法：
//
//	book, err := uc.Execute(ctx, id)
//	if err != nil {
//	    response.Error(c, err)
//	    return
//	}
func Error(c *gin.Context, err error) {
	appErr := apperrors.GetAppError(err)
	status := appErr.HTTPStatus()

	// 内部错误只记录日志，不返回给客户端
	if appErr.Err != nil || status >= http.StatusInternalServerError {
		logger(c).Error("request failed",
			zap.Int("code", appErr.Code),
			zap.Int("status", status),
			zap.String("message", appErr.Message),
			zap.Error(appErr.Err),
		)
	}

	_ = c.Error(appErr)
	c.JSON(status, ErrorBody{
		Code:    appErr.Code,
		Error:   appErr.Message,
		Details: appErr.Details,
	})
}

// LoggerKey gin.Context中保存请求级zap.Logger的键
const LoggerKey = "logger"

func logger(c *gin.Context) *zap.Logger {
	if v, ok := c.Get(LoggerKey); ok {
		if l, ok := v.(*zap.Logger); ok {
			return l
		}
	}
	return zap.L()
}
