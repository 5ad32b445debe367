// Package metrics 定义 Prometheus 指标
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestTotal HTTP 请求计数，按方法、路由与状态码区分
	RequestTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "markdown_format_http_requests_total",
			Help: "Number of HTTP requests processed, by method, route and status code.",
		},
		[]string{"method", "route", "status"},
	)

	// RequestDuration HTTP 请求耗时直方图，按方法与路由区分
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "markdown_format_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds, by method and route.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// RenderTotal Markdown 渲染次数
	RenderTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "markdown_format_render_total",
			Help: "Number of markdown render operations.",
		},
	)

	// ExportTotal 文档导出次数，按格式区分
	ExportTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "markdown_format_export_total",
			Help: "Number of document exports, by format.",
		},
		[]string{"format"},
	)
)
