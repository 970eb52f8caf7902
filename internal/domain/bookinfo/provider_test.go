package bookinfo

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestJoinAuthors(t *testing.T) {
	assert.Equal(t, "", JoinAuthors(nil))
	assert.Equal(t, "Jane Doe", JoinAuthors([]string{"Jane Doe"}))
	assert.Equal(t, "Jane Doe, John Roe", JoinAuthors([]string{"Jane Doe", "John Roe"}))
}

func TestUpstreamError(t *testing.T) {
	err := UpstreamError(http.StatusServiceUnavailable)
	assert.Equal(t, http.StatusServiceUnavailable, err.HTTPStatus())
	assert.ErrorIs(t, err, ErrUpstreamStatus)

	// 原预定义错误不应被修改
	assert.Equal(t, http.StatusBadGateway, ErrUpstreamStatus.HTTPStatus())

	assert.Equal(t, http.StatusBadGateway, UpstreamError(0).HTTPStatus())
}

func TestUnavailable(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")
	err := Unavailable(cause)

	assert.ErrorIs(t, err, ErrUpstreamUnavailable)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "dial tcp: connection refused", err.Details)
	assert.Equal(t, http.StatusInternalServerError, err.HTTPStatus())
}
