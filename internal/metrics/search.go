package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Search Prometheus metrics.
var (
	SearchesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "designkb",
			Name:      "searches_total",
			Help:      "Total number of domain searches",
		},
		[]string{"domain", "status"},
	)

	SearchDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "designkb",
			Name:      "search_duration_seconds",
			Help:      "Domain search duration in seconds",
			Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
		},
		[]string{"domain"},
	)

	SearchResults = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "designkb",
			Name:      "search_results",
			Help:      "Number of results returned per search",
			Buckets:   []float64{0, 1, 2, 3, 5, 10, 25},
		},
		[]string{"domain"},
	)

	CompositeDegradedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "designkb",
			Name:      "composite_degraded_total",
			Help:      "Composite recommendations built without a domain's data source",
		},
		[]string{"domain"},
	)

	RowCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "designkb",
			Name:      "row_cache_total",
			Help:      "Row cache hits and misses",
		},
		[]string{"result"}, // "hit" / "miss"
	)
)

// Search status label values.
const (
	StatusOK    = "ok"
	StatusError = "error"
)

var registerOnce sync.Once

// RegisterSearchMetrics registers search, composite and row-cache metrics with the
// default registry. Safe to call more than once.
func RegisterSearchMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(SearchesTotal)
		prometheus.MustRegister(SearchDuration)
		prometheus.MustRegister(SearchResults)
		prometheus.MustRegister(CompositeDegradedTotal)
		prometheus.MustRegister(RowCacheTotal)
	})
}
