// Package metrics provides Prometheus metrics for the despesas dashboard.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "despesas"

var (
	// UpstreamRequests counts requests to the Câmara API by operation
	// ("deputados", "despesas") and outcome ("ok", "error").
	UpstreamRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "camara",
		Name:      "upstream_requests_total",
		Help:      "Requests issued to the Câmara open-data API.",
	}, []string{"operation", "outcome"})

	// PagesFetched counts expense pages successfully retrieved.
	PagesFetched = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "camara",
		Name:      "expense_pages_fetched_total",
		Help:      "Expense listing pages successfully retrieved.",
	})

	// CacheLookups counts memoization lookups by cache name and outcome
	// ("hit", "miss").
	CacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "report",
		Name:      "cache_lookups_total",
		Help:      "Memoization cache lookups.",
	}, []string{"cache", "outcome"})

	// ReportDuration observes end-to-end report build latency in seconds.
	ReportDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "report",
		Name:      "build_duration_seconds",
		Help:      "Latency of lookup, fetch-all and aggregation combined.",
		Buckets:   []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 30, 60},
	})

	// HTTPRequests counts served requests by path and status code.
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "HTTP requests served by the dashboard.",
	}, []string{"path", "status"})
)

// Handler exposes the default registry for the /metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
