package report

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// elementCopyTotal counts copied nodes by operation (clone, derive).
	elementCopyTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "report_element_copy_total",
		Help: "Report elements copied, by copy operation",
	}, []string{"operation"})

	// changeNotificationTotal counts fired change events by type.
	changeNotificationTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "report_change_notification_total",
		Help: "Change notifications fired on report elements, by change type",
	}, []string{"type"})

	// definitionCacheTotal counts definition cache lookups by result.
	definitionCacheTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "report_definition_cache_total",
		Help: "Definition cache operations by result (hit, miss, evict, expire)",
	}, []string{"result"})
)
