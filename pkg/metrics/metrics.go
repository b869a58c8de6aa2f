// Package metrics 提供基于Prometheus的指标收集
//
// 核心概念：
// - **Counter（计数器）**：只增不减的累计值（请求总数、借阅总数）
// - **Gauge（仪表盘）**：可增可减的瞬时值（正在处理的请求数）
// - **Histogram（直方图）**：观测值的分布，自动计算分位数（P50、P90、P99）
//
// 使用方式：
//
//	// 1. 启动时初始化一次
//	metrics.InitMetrics()
//
//	// 2. 通过gin路由暴露/metrics端点（Prometheus定期抓取）
//	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
//
//	// 3. 业务代码中记录指标
//	metrics.CheckInsTotal.Inc()
//	metrics.LendingDuration.Observe(time.Since(start).Seconds())
//
// 命名规范：Counter以`_total`结尾，Histogram以单位结尾（`_seconds`），
// Gauge用现在时态。标签只用低基数维度（method、path、status），
// 不要用user_id、book_id这类高基数值做标签。
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// initialized 标记是否已初始化（防止重复注册panic）
	initialized bool

	// HTTP请求相关指标

	// HTTPRequestsTotal HTTP请求总数（Counter）
	// 标签：method（GET/POST）、path（路由模板）、status（200/404/500）
	HTTPRequestsTotal *prometheus.CounterVec

	// HTTPRequestDuration HTTP请求耗时（Histogram）
	HTTPRequestDuration *prometheus.HistogramVec

	// HTTPRequestsInProgress 正在处理的HTTP请求数（Gauge）
	HTTPRequestsInProgress prometheus.Gauge

	// 借阅业务指标

	// CheckInsTotal 借书成功总数（Counter）
	CheckInsTotal prometheus.Counter

	// CheckOutsTotal 还书成功总数（Counter）
	CheckOutsTotal prometheus.Counter

	// LendingConflictsTotal 借书冲突总数（Counter）
	// 标签：reason（taken/limit）
	LendingConflictsTotal *prometheus.CounterVec

	// LendingDuration 借还操作耗时（Histogram）
	LendingDuration prometheus.Histogram

	// BooksOnLoan 当前借出图书数（Gauge）
	BooksOnLoan prometheus.Gauge

	// 熔断器指标

	// CircuitBreakerState 熔断器状态（0=CLOSED, 1=OPEN, 2=HALF_OPEN）
	CircuitBreakerState *prometheus.GaugeVec

	// CircuitBreakerRequests 熔断器请求总数
	// 标签：name（熔断器名称）、result（success/failure/rejected）
	CircuitBreakerRequests *prometheus.CounterVec

	// 消息队列指标

	// MessagesPublishedTotal 消息发布总数
	// 标签：exchange（交换机）、routing_key（路由键）
	MessagesPublishedTotal *prometheus.CounterVec

	// MessagesDroppedTotal 发布失败被丢弃的消息总数（事件为尽力投递）
	MessagesDroppedTotal *prometheus.CounterVec
)

// InitMetrics 初始化所有Prometheus指标
//
// 必须在程序启动时调用一次，使用promauto注册到默认Registry。
// Histogram的Buckets按业务场景定制：HTTP覆盖1ms-10s，
// 借还操作涉及多条SQL和事务提交，桶从10ms起。
func InitMetrics() {
	if initialized {
		return
	}
	initialized = true

	// HTTP请求指标
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

	// 借阅业务指标
	CheckInsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "lending_checkins_total",
			Help: "借书成功总数",
		},
	)

	CheckOutsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "lending_checkouts_total",
			Help: "还书成功总数",
		},
	)

	LendingConflictsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lending_conflicts_total",
			Help: "借书冲突总数",
		},
		[]string{"reason"}, // taken（图书已借出）/ limit（超出上限）
	)

	LendingDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "lending_operation_duration_seconds",
			Help:    "借还操作耗时（秒）",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5},
		},
	)

	BooksOnLoan = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "books_on_loan",
			Help: "当前借出图书数",
		},
	)

	// 熔断器指标
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "熔断器状态（0=CLOSED, 1=OPEN, 2=HALF_OPEN）",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "熔断器请求总数",
		},
		[]string{"name", "result"},
	)

	// 消息队列指标
	MessagesPublishedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "messages_published_total",
			Help: "消息发布总数",
		},
		[]string{"exchange", "routing_key"},
	)

	MessagesDroppedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "messages_dropped_total",
			Help: "发布失败被丢弃的消息总数",
		},
		[]string{"routing_key"},
	)
}

// IncCounterVec 递增CounterVec（带标签）
func IncCounterVec(counter *prometheus.CounterVec, labels map[string]string) {
	counter.With(labels).Inc()
}

// SetGaugeVec 设置GaugeVec值（带标签）
func SetGaugeVec(gauge *prometheus.GaugeVec, labels map[string]string, value float64) {
	gauge.With(labels).Set(value)
}

// ObserveHistogramVec 记录HistogramVec观测值（带标签）
func ObserveHistogramVec(histogram *prometheus.HistogramVec, labels map[string]string, value float64) {
	histogram.With(labels).Observe(value)
}
