// Package metrics Prometheus指标
//
// 命名规范：
//   - Counter 以_total结尾
//   - Histogram 以单位结尾(_seconds)
//
// 使用方式：启动时调用InitMetrics()，路由上挂载promhttp.Handler()暴露/metrics
package metrics

import (
	"strconv"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	initOnce sync.Once

	// HTTPRequestsTotal HTTP请求总数
	// 标签：method、path(路由模板，如/book/:book_id)、status
	HTTPRequestsTotal *prometheus.CounterVec

	// HTTPRequestDuration HTTP请求耗时
	HTTPRequestDuration *prometheus.HistogramVec

	// HTTPRequestsInProgress 正在处理的HTTP请求数
	HTTPRequestsInProgress prometheus.Gauge

	// AuthorsCreatedTotal 新增作者总数
	AuthorsCreatedTotal prometheus.Counter

	// BooksCreatedTotal 新增图书总数
	BooksCreatedTotal prometheus.Counter

	// RatingsSubmittedTotal 提交评分总数
	// 标签：score(1-5)
	RatingsSubmittedTotal *prometheus.CounterVec

	// RecordsDeletedTotal 删除记录总数(含级联删除)
	// 标签：kind(author/book/rating)
	RecordsDeletedTotal *prometheus.CounterVec

	// MetadataLookupDuration 外部目录查询耗时
	// 标签：result(found/not_found/error/rejected)
	MetadataLookupDuration *prometheus.HistogramVec

	// CircuitBreakerState 熔断器状态（0=CLOSED, 1=OPEN, 2=HALF_OPEN）
	CircuitBreakerState *prometheus.GaugeVec
)

// InitMetrics 注册全部指标，重复调用只注册一次
func InitMetrics() {
	initOnce.Do(register)
}

func register() {
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP请求总数",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP请求耗时（秒）",
			Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1, 5, 10},
		},
		[]string{"method", "path"},
	)

	HTTPRequestsInProgress = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_in_progress",
			Help: "正在处理的HTTP请求数",
		},
	)

	AuthorsCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "bookshelf_authors_created_total",
			Help: "新增作者总数",
		},
	)

	BooksCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "bookshelf_books_created_total",
			Help: "新增图书总数",
		},
	)

	RatingsSubmittedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bookshelf_ratings_submitted_total",
			Help: "提交评分总数",
		},
		[]string{"score"},
	)

	RecordsDeletedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bookshelf_records_deleted_total",
			Help: "删除记录总数",
		},
		[]string{"kind"},
	)

	MetadataLookupDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "bookshelf_metadata_lookup_duration_seconds",
			Help: "外部图书目录查询耗时（秒）",
			// 外部HTTP调用，超时默认5秒
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"result"},
	)

	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "熔断器状态（0=CLOSED, 1=OPEN, 2=HALF_OPEN）",
		},
		[]string{"name"},
	)
}

// 元数据查询结果标签
const (
	LookupFound    = "found"
	LookupNotFound = "not_found"
	LookupError    = "error"
	LookupRejected = "rejected" // 熔断器打开，未发起请求
)

// ObserveMetadataLookup 记录一次外部目录查询
func ObserveMetadataLookup(result string, seconds float64) {
	InitMetrics()
	MetadataLookupDuration.WithLabelValues(result).Observe(seconds)
}

// SetCircuitBreakerState 记录熔断器状态
func SetCircuitBreakerState(name string, state int) {
	InitMetrics()
	CircuitBreakerState.WithLabelValues(name).Set(float64(state))
}

// AddDeleted 记录删除条数
func AddDeleted(kind string, n int64) {
	if n <= 0 {
		return
	}
	InitMetrics()
	RecordsDeletedTotal.WithLabelValues(kind).Add(float64(n))
}

// IncAuthorsCreated 新增作者计数
func IncAuthorsCreated() {
	InitMetrics()
	AuthorsCreatedTotal.Inc()
}

// IncBooksCreated 新增图书计数
func IncBooksCreated() {
	InitMetrics()
	BooksCreatedTotal.Inc()
}

// IncRatingSubmitted 评分计数
func IncRatingSubmitted(score int) {
	InitMetrics()
	RatingsSubmittedTotal.WithLabelValues(strconv.Itoa(score)).Inc()
}
