package data

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// queryResolutionTotal counts compound query resolutions by the path that answered.
	queryResolutionTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "report_data_query_resolution_total",
		Help: "Compound data factory query resolutions by path (static, free_form, not_found)",
	}, []string{"path"})

	// queryDuration tracks query execution latency per factory kind.
	queryDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "report_data_query_duration_seconds",
		Help:    "Query execution duration in seconds",
		Buckets: prometheus.ExponentialBuckets(0.0005, 2, 14),
	}, []string{"factory"})
)
