package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	appbook "github.com/xiebiao/bookshelf/internal/application/book"
	"github.com/xiebiao/bookshelf/internal/domain/book"
	"github.com/xiebiao/bookshelf/internal/infrastructure/config"
	"github.com/xiebiao/bookshelf/internal/infrastructure/openlibrary"
	"github.com/xiebiao/bookshelf/internal/infrastructure/persistence/database"
	"github.com/xiebiao/bookshelf/internal/interface/http/handler"
	"github.com/xiebiao/bookshelf/internal/interface/http/router"
)

// setupServer 组装完整的依赖链：SQLite内存库 + 假的Open Library
func setupServer(t *testing.T, upstream http.HandlerFunc) *gin.Engine {
	t.Helper()

	fake := httptest.NewServer(upstream)
	t.Cleanup(fake.Close)

	cfg := &config.Config{
		Server: config.ServerConfig{Mode: "test", MaxBodyBytes: 1 << 20},
		Database: config.DatabaseConfig{
			Driver: config.DriverSQLite,
			Path:   ":memory:",
		},
		Lookup: config.LookupConfig{
			Endpoint:         fake.URL + "/api/books",
			Timeout:          2 * time.Second,
			BreakerFailures:  5,
			BreakerOpenAfter: time.Minute,
		},
		Metrics: config.MetricsConfig{Enabled: true, Path: "/metrics"},
	}

	log := zap.NewNop()
	db, cleanup, err := database.NewDB(cfg, log)
	require.NoError(t, err)
	t.Cleanup(cleanup)

	client, err := openlibrary.NewClient(cfg.Lookup, log)
	require.NoError(t, err)

	svc := book.NewService(database.NewBookRepository(db))
	h := handler.NewBookHandler(
		appbook.NewCreateBookUseCase(svc),
		appbook.NewListBooksUseCase(svc),
		appbook.NewGetBookUseCase(svc),
		appbook.NewUpdateBookUseCase(svc),
		appbook.NewDeleteBookUseCase(svc),
		appbook.NewLookupISBNUseCase(client),
	)
	return router.New(cfg, log, h)
}

func noUpstream(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("unexpected upstream call: %s", r.URL)
	}
}

func do(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var m map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &m), w.Body.String())
	return m
}

func TestBookHandler_CreateAndGet(t *testing.T) {
	r := setupServer(t, noUpstream(t))

	w := do(r, http.MethodPost, "/api/books", `{"title":"Dune","author":"Frank Herbert","publication_date":"1965-08-01","isbn":"9780441013593"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `{"message":"Book added successfully","id":1}`, w.Body.String())

	w = do(r, http.MethodGet, "/api/books/1", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":1,"title":"Dune","author":"Frank Herbert","publication_date":"1965-08-01","isbn":"9780441013593"}`, w.Body.String())
}

func TestBookHandler_CreateWithoutISBN(t *testing.T) {
	r := setupServer(t, noUpstream(t))

	w := do(r, http.MethodPost, "/api/books", `{"title":"Emma","author":"Jane Austen","publication_date":"1815-12-23"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	w = do(r, http.MethodGet, "/api/books/1", "")
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Contains(t, body, "isbn")
	assert.Nil(t, body["isbn"])
}

func TestBookHandler_CreateValidation(t *testing.T) {
	r := setupServer(t, noUpstream(t))

	tests := []struct {
		name  string
		body  string
		error string
	}{
		{"缺少author", `{"title":"X","publication_date":"2020-01-01"}`, "Missing required field: author"},
		{"日期格式错误", `{"title":"X","author":"Y","publication_date":"01/01/2020"}`, "Invalid publication_date format, expected YYYY-MM-DD"},
		{"非JSON", `title=X`, "Request body must be JSON"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(r, http.MethodPost, "/api/books", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, tt.error, decode(t, w)["error"])
		})
	}

	// 校验失败不产生任何写入
	w := do(r, http.MethodGet, "/api/books", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestBookHandler_ListInInsertionOrder(t *testing.T) {
	r := setupServer(t, noUpstream(t))

	for _, title := range []string{"A", "B", "C"} {
		w := do(r, http.MethodPost, "/api/books", `{"title":"`+title+`","author":"X","publication_date":"2000-01-01"}`)
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w := do(r, http.MethodGet, "/api/books", "")
	require.Equal(t, http.StatusOK, w.Code)

	var list []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list, 3)
	for i, title := range []string{"A", "B", "C"} {
		assert.Equal(t, title, list[i]["title"])
		assert.Equal(t, float64(i+1), list[i]["id"])
	}
}

func TestBookHandler_UpdateReplacesAllFields(t *testing.T) {
	r := setupServer(t, noUpstream(t))

	w := do(r, http.MethodPost, "/api/books", `{"title":"Dune","author":"Frank Herbert","publication_date":"1965-08-01","isbn":"9780441013593"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	w = do(r, http.MethodPut, "/api/books/1", `{"title":"Dune Messiah","author":"Frank Herbert","publication_date":"1969-10-15"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"Book updated successfully"}`, w.Body.String())

	w = do(r, http.MethodGet, "/api/books/1", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":1,"title":"Dune Messiah","author":"Frank Herbert","publication_date":"1969-10-15","isbn":null}`, w.Body.String())
}

func TestBookHandler_UpdateErrors(t *testing.T) {
	r := setupServer(t, noUpstream(t))

	w := do(r, http.MethodPut, "/api/books/99", `{"title":"X","author":"Y","publication_date":"2020-01-01"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Book not found", decode(t, w)["error"])

	// 校验先于存在性检查
	w = do(r, http.MethodPut, "/api/books/99", `{"title":"X"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Missing required field: author", decode(t, w)["error"])
}

func TestBookHandler_Delete(t *testing.T) {
	r := setupServer(t, noUpstream(t))

	w := do(r, http.MethodPost, "/api/books", `{"title":"Dune","author":"Frank Herbert","publication_date":"1965-08-01"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	w = do(r, http.MethodDelete, "/api/books/1", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"Book deleted successfully"}`, w.Body.String())

	w = do(r, http.MethodGet, "/api/books/1", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(r, http.MethodDelete, "/api/books/1", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestBookHandler_InvalidID(t *testing.T) {
	r := setupServer(t, noUpstream(t))

	for _, path := range []string{"/api/books/abc", "/api/books/0", "/api/books/-1"} {
		w := do(r, http.MethodGet, path, "")
		assert.Equal(t, http.StatusNotFound, w.Code, path)
		assert.Equal(t, "Book not found", decode(t, w)["error"])
	}
}

func TestBookHandler_LookupISBN(t *testing.T) {
	r := setupServer(t, func(w http.ResponseWriter, req *http.Request) {
		switch req.URL.Query().Get("bibkeys") {
		case "ISBN:9780441013593":
			_, _ = w.Write([]byte(`{"ISBN:9780441013593":{"title":"Dune","authors":[{"name":"Frank Herbert"}],"publish_date":"2005"}}`))
		case "ISBN:500":
			w.WriteHeader(http.StatusServiceUnavailable)
		default:
			_, _ = w.Write([]byte(`{}`))
		}
	})

	w := do(r, http.MethodGet, "/api/books/isbn/9780441013593", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"title":"Dune","author":"Frank Herbert","publication_date":"2005"}`, w.Body.String())

	w = do(r, http.MethodGet, "/api/books/isbn/0000000000", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Book not found", decode(t, w)["error"])

	w = do(r, http.MethodGet, "/api/books/isbn/500", "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, "Error fetching book information", decode(t, w)["error"])

	// 查询结果不写入本地存储
	w = do(r, http.MethodGet, "/api/books", "")
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestBookHandler_LookupUpstreamUnreachable(t *testing.T) {
	r := setupServer(t, func(w http.ResponseWriter, req *http.Request) {
		// 关闭连接模拟网络失败
		hj, ok := w.(http.Hijacker)
		if !ok {
			t.Error("hijack not supported")
			return
		}
		conn, _, err := hj.Hijack()
		if err == nil {
			_ = conn.Close()
		}
	})

	w := do(r, http.MethodGet, "/api/books/isbn/123", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	body := decode(t, w)
	assert.Equal(t, "External API request failed", body["error"])
	assert.NotEmpty(t, body["details"])
}
