package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// NoticeOperations counts notice CRUD operations by kind and outcome (success|error).
	NoticeOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "noticeboard_notice_operations_total",
			Help: "Total number of notice operations",
		},
		[]string{"operation", "result"},
	)

	// APILatency measures HTTP request latencies.
	APILatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "noticeboard_api_latency_seconds",
			Help:    "API endpoint latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)
)
