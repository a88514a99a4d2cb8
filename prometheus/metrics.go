package prometheus

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP request metrics
	HttpRequestsTotal   prometheus.CounterVec
	HttpRequestDuration prometheus.HistogramVec

	// Page fetch metrics
	GraphFetchesTotal    prometheus.CounterVec
	GraphFetchDuration   prometheus.HistogramVec
	StaleFetchesDiscards prometheus.Counter

	// View mutation metrics
	NodesInsertedTotal prometheus.CounterVec
	EdgesInsertedTotal prometheus.CounterVec
	ChangesTotal       prometheus.CounterVec

	// Backend call metrics
	BackendErrorsTotal prometheus.CounterVec
)

// InitMetrics registers all Prometheus metrics under the given prefix.
func InitMetrics(prefix string) {
	HttpRequestsTotal = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HttpRequestDuration = *promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    prefix + "_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	GraphFetchesTotal = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_graph_fetches_total",
			Help: "Total number of graph page fetches",
		},
		[]string{"entity", "outcome"},
	)

	GraphFetchDuration = *promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    prefix + "_graph_fetch_duration_seconds",
			Help:    "Duration of graph page fetches in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"entity"},
	)

	StaleFetchesDiscards = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "_stale_fetches_discarded_total",
			Help: "Total number of fetch completions discarded as stale",
		},
	)

	NodesInsertedTotal = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_nodes_inserted_total",
			Help: "Total number of nodes inserted into views",
		},
		[]string{"entity"},
	)

	EdgesInsertedTotal = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_edges_inserted_total",
			Help: "Total number of edges inserted into views",
		},
		[]string{"relationship"},
	)

	ChangesTotal = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_changes_total",
			Help: "Total number of view changes applied",
		},
		[]string{"op"},
	)

	BackendErrorsTotal = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_backend_errors_total",
			Help: "Total number of failed backend calls",
		},
		[]string{"operation"},
	)
}

// TrackGraphFetch returns a function that records the duration of a
// page fetch for an entity.
func TrackGraphFetch(entity string) func(startTime time.Time) {
	return func(startTime time.Time) {
		duration := time.Since(startTime).Seconds()
		GraphFetchDuration.WithLabelValues(entity).Observe(duration)
	}
}

// RecordGraphFetch increments the fetch counter for an entity with the
// given outcome.
func RecordGraphFetch(entity, outcome string) {
	GraphFetchesTotal.WithLabelValues(entity, outcome).Inc()
}

// RecordNodeInserted increments the node insert counter.
func RecordNodeInserted(entity string) {
	NodesInsertedTotal.WithLabelValues(entity).Inc()
}

// RecordEdgeInserted increments the edge insert counter.
func RecordEdgeInserted(relationship string) {
	EdgesInsertedTotal.WithLabelValues(relationship).Inc()
}

// RecordChange increments the change counter for one operation kind.
func RecordChange(op string) {
	ChangesTotal.WithLabelValues(op).Inc()
}

// RecordBackendError increments the backend error counter.
func RecordBackendError(operation string) {
	BackendErrorsTotal.WithLabelValues(operation).Inc()
}
