package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/xiebiao/bookshelf/internal/infrastructure/config"
	"github.com/xiebiao/bookshelf/internal/interface/http/handler"
	"github.com/xiebiao/bookshelf/internal/interface/http/middleware"
)

func newTestRouter(mode string) http.Handler {
	cfg := &config.Config{
		Server:  config.ServerConfig{Mode: mode},
		Metrics: config.MetricsConfig{Enabled: true, Path: "/metrics"},
	}
	// 只测试运维路由，不会调用到图书处理器
	return New(cfg, zap.NewNop(), &handler.BookHandler{})
}

func TestRouter_Ping(t *testing.T) {
	r := newTestRouter("test")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"pong","status":"healthy"}`, w.Body.String())
	assert.NotEmpty(t, w.Header().Get(middleware.HeaderRequestID))
}

func TestRouter_RequestIDPropagated(t *testing.T) {
	r := newTestRouter("test")

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(middleware.HeaderRequestID, "req-123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, "req-123", w.Header().Get(middleware.HeaderRequestID))
}

func TestRouter_Metrics(t *testing.T) {
	r := newTestRouter("test")

	// 先产生一次请求
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/ping", nil))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "bookshelf_http_requests_total")
	assert.Contains(t, w.Body.String(), `path="/ping"`)
}

func TestRouter_NoRoute(t *testing.T) {
	r := newTestRouter("test")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/nope", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"code":40400,"error":"Resource not found"}`, w.Body.String())
}

func TestRouter_SwaggerDisabledInRelease(t *testing.T) {
	r := newTestRouter("release")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/swagger/doc.json", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)

	r = newTestRouter("test")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/swagger/doc.json", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "/api/books")
}
