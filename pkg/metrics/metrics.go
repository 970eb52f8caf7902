// Package metrics 提供基于Prometheus的指标收集
//
// 指标分三组：
//   - HTTP: 请求总数、耗时、正在处理的请求数（由中间件记录）
//   - 图书存储: 每个存储操作的结果计数
//   - 外部ISBN查询: 调用结果、耗时、熔断器状态
//
// 所有指标注册到同一个Registry，由 /metrics 端点暴露。
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const namespace = "bookshelf"

var (
	once sync.Once

	// Registry 服务自有的指标注册表（不使用全局DefaultRegisterer，便于测试）
	Registry *prometheus.Registry

	// HTTPRequestsTotal HTTP请求总数
	// 标签：method、path（路由模板，如/api/books/:id）、status
	HTTPRequestsTotal *prometheus.CounterVec

	// HTTPRequestDuration HTTP请求耗时（秒）
	HTTPRequestDuration *prometheus.HistogramVec

	// HTTPRequestsInProgress 正在处理的HTTP请求数
	HTTPRequestsInProgress prometheus.Gauge

	// BookOperationsTotal 图书存储操作总数
	// 标签：operation（create/list/get/update/delete）、result（success/not_found/error）
	BookOperationsTotal *prometheus.CounterVec

	// LookupRequestsTotal 外部ISBN查询总数
	// 标签：result（found/not_found/upstream_error/unavailable/rejected）
	LookupRequestsTotal *prometheus.CounterVec

	// LookupDuration 外部ISBN查询耗时（秒）
	LookupDuration prometheus.Histogram

	// CircuitBreakerState 熔断器状态（0=CLOSED, 1=OPEN, 2=HALF_OPEN）
	CircuitBreakerState *prometheus.GaugeVec
)

// InitMetrics 初始化所有指标（重复调用安全）
func InitMetrics() {
	once.Do(func() {
		Registry = prometheus.NewRegistry()
		Registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)

		HTTPRequestsTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "HTTP请求总数",
			},
			[]string{"method", "path", "status"},
		)

		HTTPRequestDuration = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP请求耗时（秒）",
				Buckets:   []float64{0.001, 0.01, 0.1, 0.5, 1, 5, 10},
			},
			[]string{"method", "path"},
		)

		HTTPRequestsInProgress = prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "http_requests_in_progress",
				Help:      "正在处理的HTTP请求数",
			},
		)

		BookOperationsTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "book_operations_total",
				Help:      "图书存储操作总数",
			},
			[]string{"operation", "result"},
		)

		LookupRequestsTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "isbn_lookup_requests_total",
				Help:      "外部ISBN查询总数",
			},
			[]string{"result"},
		)

		// 外部接口较慢，桶从50ms开始
		LookupDuration = prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "isbn_lookup_duration_seconds",
				Help:      "外部ISBN查询耗时（秒）",
				Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
			},
		)

		CircuitBreakerState = prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "circuit_breaker_state",
				Help:      "熔断器状态（0=CLOSED, 1=OPEN, 2=HALF_OPEN）",
			},
			[]string{"name"},
		)

		Registry.MustRegister(
			HTTPRequestsTotal,
			HTTPRequestDuration,
			HTTPRequestsInProgress,
			BookOperationsTotal,
			LookupRequestsTotal,
			LookupDuration,
			CircuitBreakerState,
		)
	})
}

// ObserveBookOperation 记录一次图书存储操作
func ObserveBookOperation(operation, result string) {
	InitMetrics()
	BookOperationsTotal.WithLabelValues(operation, result).Inc()
}

// ObserveLookup 记录一次外部ISBN查询
func ObserveLookup(result string, seconds float64) {
	InitMetrics()
	LookupRequestsTotal.WithLabelValues(result).Inc()
	LookupDuration.Observe(seconds)
}

// SetCircuitBreakerState 更新熔断器状态
func SetCircuitBreakerState(name string, state int) {
	InitMetrics()
	CircuitBreakerState.WithLabelValues(name).Set(float64(state))
}
