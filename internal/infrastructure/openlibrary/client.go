// Package openlibrary Open Library图书接口客户端
// 实现domain/bookinfo.Provider，按ISBN查询书名、作者和出版日期
package openlibrary

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/xiebiao/bookshelf/internal/domain/bookinfo"
	"github.com/xiebiao/bookshelf/internal/infrastructure/config"
	"github.com/xiebiao/bookshelf/pkg/circuitbreaker"
	"github.com/xiebiao/bookshelf/pkg/metrics"
	"github.com/xiebiao/bookshelf/pkg/tracing"
)

const (
	tracerName  = "bookshelf/openlibrary"
	breakerName = "openlibrary"

	// 响应体上限，单个ISBN的jscmd=data响应远小于此值
	maxResponseBytes = 4 << 20
)

// Client Open Library客户端
type Client struct {
	httpClient *http.Client
	endpoint   *url.URL
	userAgent  string
	limiter    *rate.Limiter
	breaker    *circuitbreaker.CircuitBreaker
	log        *zap.Logger
}

var _ bookinfo.Provider = (*Client)(nil)

// NewClient 创建客户端
// rate_limit为0时不限流；breaker_failures为0时不熔断
func NewClient(cfg config.LookupConfig, log *zap.Logger) (*Client, error) {
	endpoint, err := url.Parse(cfg.Endpoint)
	if err != nil {
		return nil, fmt.Errorf("解析lookup.endpoint失败: %w", err)
	}

	c := &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		endpoint:   endpoint,
		userAgent:  cfg.UserAgent,
		log:        log.Named("openlibrary"),
	}

	if cfg.RateLimit > 0 {
		c.limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), 1)
	}

	c.breaker = circuitbreaker.New(breakerName, circuitbreaker.Config{
		MaxFailures: cfg.BreakerFailures,
		Timeout:     cfg.BreakerOpenAfter,
		// 只有网络层失败计入熔断，非200和找不到ISBN都是外部服务的正常应答
		IsFailure: func(err error) bool {
			return errors.Is(err, bookinfo.ErrUpstreamUnavailable)
		},
		OnStateChange: func(name string, from, to circuitbreaker.State) {
			metrics.SetCircuitBreakerState(name, int(to))
			c.log.Warn("熔断器状态变化",
				zap.String("name", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
	})

	return c, nil
}

// bookRecord api/books?jscmd=data 中单个ISBN对应的记录(只取用到的字段)
type bookRecord struct {
	Title       string `json:"title"`
	PublishDate string `json:"publish_date"`
	Authors     []struct {
		Name string `json:"name"`
	} `json:"authors"`
}

// LookupISBN 查询ISBN对应的书目信息
// 只请求一次，不重试
func (c *Client) LookupISBN(ctx context.Context, isbn string) (md *bookinfo.Metadata, err error) {
	start := time.Now()
	ctx, span := tracing.StartSpan(ctx, tracerName, "openlibrary.lookup", attribute.String("book.isbn", isbn))
	defer func() {
		result := lookupResult(err)
		if result != "success" && result != "not_found" {
			tracing.RecordError(span, err)
		}
		metrics.ObserveLookup(result, time.Since(start).Seconds())
		span.End()
	}()

	if c.limiter != nil {
		if werr := c.limiter.Wait(ctx); werr != nil {
			return nil, bookinfo.Unavailable(werr)
		}
	}

	var body []byte
	err = c.breaker.Execute(func() error {
		var ferr error
		body, ferr = c.fetch(ctx, isbn)
		return ferr
	})
	if err != nil {
		if errors.Is(err, circuitbreaker.ErrOpenState) {
			return nil, bookinfo.Unavailable(err)
		}
		return nil, err
	}

	return parseRecord(body, isbn)
}

// fetch 发送请求，返回200响应的原始响应体
func (c *Client) fetch(ctx context.Context, isbn string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.requestURL(isbn), nil)
	if err != nil {
		return nil, bookinfo.Unavailable(err)
	}
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Warn("请求Open Library失败", zap.String("isbn", isbn), zap.Error(err))
		return nil, bookinfo.Unavailable(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseBytes))
		c.log.Info("Open Library返回非200",
			zap.String("isbn", isbn),
			zap.Int("status", resp.StatusCode),
		)
		return nil, bookinfo.UpstreamError(resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, bookinfo.Unavailable(err)
	}
	return body, nil
}

// requestURL 构造 {endpoint}?bibkeys=ISBN:{isbn}&format=json&jscmd=data
func (c *Client) requestURL(isbn string) string {
	u := *c.endpoint
	q := u.Query()
	q.Set("bibkeys", bibKey(isbn))
	q.Set("format", "json")
	q.Set("jscmd", "data")
	u.RawQuery = q.Encode()
	return u.String()
}

func bibKey(isbn string) string {
	return "ISBN:" + isbn
}

// parseRecord 从响应中取出"ISBN:{isbn}"键对应的记录
// 键不存在或记录为空值时返回ErrNotFound
func parseRecord(body []byte, isbn string) (*bookinfo.Metadata, error) {
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, bookinfo.ErrUpstreamPayload.WithCause(err)
	}

	raw, ok := envelope[bibKey(isbn)]
	if !ok || isEmptyValue(raw) {
		return nil, bookinfo.ErrNotFound
	}

	var rec bookRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, bookinfo.ErrUpstreamPayload.WithCause(err)
	}

	names := make([]string, 0, len(rec.Authors))
	for _, a := range rec.Authors {
		names = append(names, a.Name)
	}

	return &bookinfo.Metadata{
		Title:       rec.Title,
		Author:      bookinfo.JoinAuthors(names),
		PublishDate: rec.PublishDate,
	}, nil
}

// isEmptyValue null、{}、[]、""、0、false都视为没有记录
func isEmptyValue(raw json.RawMessage) bool {
	var v interface{}
	if err := json.Unmarshal(raw, &v); err != nil {
		return false
	}
	switch x := v.(type) {
	case nil:
		return true
	case bool:
		return !x
	case float64:
		return x == 0
	case string:
		return x == ""
	case []interface{}:
		return len(x) == 0
	case map[string]interface{}:
		return len(x) == 0
	}
	return false
}

func lookupResult(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, bookinfo.ErrNotFound):
		return "not_found"
	case errors.Is(err, bookinfo.ErrUpstreamStatus):
		return "upstream_status"
	case errors.Is(err, bookinfo.ErrUpstreamUnavailable):
		return "unavailable"
	default:
		return "error"
	}
}
