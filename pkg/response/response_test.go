package response

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	apperrors "github.com/xiebiao/bookshelf/pkg/errors"
)

func newContext() (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	return c, w
}

func TestCreated(t *testing.T) {
	c, w := newContext()
	Created(c, 7, "Book added successfully")

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `{"message":"Book added successfully","id":7}`, w.Body.String())
}

func TestMessage(t *testing.T) {
	c, w := newContext()
	Message(c, http.StatusOK, "Book deleted successfully")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"Book deleted successfully"}`, w.Body.String())
}

func TestError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		body   string
	}{
		{
			name:   "业务错误",
			err:    apperrors.MissingField("title"),
			status: http.StatusBadRequest,
			body:   `{"code":40002,"error":"Missing required field: title"}`,
		},
		{
			name:   "透传状态码并带诊断信息",
			err:    apperrors.New(apperrors.ErrCodeUpstreamError, "Error fetching book information").WithStatus(http.StatusTooManyRequests).WithDetails("slow down"),
			status: http.StatusTooManyRequests,
			body:   `{"code":50200,"error":"Error fetching book information","details":"slow down"}`,
		},
		{
			name:   "普通error按内部错误处理",
			err:    errors.New("boom"),
			status: http.StatusInternalServerError,
			body:   `{"code":50000,"error":"Internal server error"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := newContext()
			Error(c, tt.err)

			assert.Equal(t, tt.status, w.Code)
			assert.JSONEq(t, tt.body, w.Body.String())
			assert.Len(t, c.Errors, 1)
		})
	}
}
