package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics contains all Prometheus metrics for the paper metadata service.
// Metrics are organized by subsystem: searches, normalization, upstream
// requests, and the HTTP surface. All counters and histograms are registered
// via promauto for automatic registration with the default Prometheus registry.
type Metrics struct {
	// SearchesStarted counts work searches initiated.
	SearchesStarted prometheus.Counter

	// SearchesCompleted counts searches that finished successfully.
	SearchesCompleted prometheus.Counter

	// SearchesFailed counts failed searches, labeled by error kind
	// (invalid_filter, upstream, other).
	SearchesFailed *prometheus.CounterVec

	// SearchDuration observes end-to-end search duration in seconds.
	SearchDuration prometheus.Histogram

	// RecordsPerSearch observes the distribution of records returned per search.
	RecordsPerSearch prometheus.Histogram

	// RecordsNormalized counts raw records normalized into the stable schema.
	RecordsNormalized prometheus.Counter

	// RecordsMalformed counts normalizer inputs that were not structured records.
	RecordsMalformed prometheus.Counter

	// EmptyAbstracts counts normalized records whose abstract reconstruction
	// produced empty text.
	EmptyAbstracts prometheus.Counter

	// UpstreamRequestsTotal counts HTTP requests to the upstream source API,
	// labeled by source and endpoint.
	UpstreamRequestsTotal *prometheus.CounterVec

	// UpstreamRequestsFailed counts failed upstream requests, labeled by
	// source and endpoint.
	UpstreamRequestsFailed *prometheus.CounterVec

	// UpstreamRequestDuration observes upstream request duration in seconds,
	// labeled by source and endpoint.
	UpstreamRequestDuration *prometheus.HistogramVec

	// HTTPRequestDuration observes HTTP handler duration in seconds,
	// labeled by route and status code.
	HTTPRequestDuration *prometheus.HistogramVec

	// HTTPRequestsInFlight tracks the number of requests currently being served.
	HTTPRequestsInFlight prometheus.Gauge
}

// NewMetrics creates a new Metrics instance with all metrics initialized.
// The namespace is used as a prefix for all metric names.
func NewMetrics(namespace string) *Metrics {
	return &Metrics{
		SearchesStarted: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "searches_started_total",
			Help:      "Total number of work searches started",
		}),
		SearchesCompleted: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "searches_completed_total",
			Help:      "Total number of work searches completed successfully",
		}),
		SearchesFailed: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "searches_failed_total",
			Help:      "Total number of work searches that failed",
		}, []string{"kind"}),
		SearchDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "search_duration_seconds",
			Help:      "Duration of work searches in seconds",
			Buckets:   prometheus.DefBuckets,
		}),
		RecordsPerSearch: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "records_per_search",
			Help:      "Number of records returned per search",
			Buckets:   []float64{0, 1, 5, 10, 25, 50, 100, 200},
		}),
		RecordsNormalized: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "records_normalized_total",
			Help:      "Total number of raw records normalized",
		}),
		RecordsMalformed: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "records_malformed_total",
			Help:      "Total number of normalizer inputs that were not structured records",
		}),
		EmptyAbstracts: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "empty_abstracts_total",
			Help:      "Total number of normalized records with an empty abstract",
		}),
		UpstreamRequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "upstream_requests_total",
			Help:      "Total number of requests to the upstream source API",
		}, []string{"source", "endpoint"}),
		UpstreamRequestsFailed: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "upstream_requests_failed_total",
			Help:      "Total number of failed requests to the upstream source API",
		}, []string{"source", "endpoint"}),
		UpstreamRequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "upstream_request_duration_seconds",
			Help:      "Duration of upstream source API requests in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"source", "endpoint"}),
		HTTPRequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "status"}),
		HTTPRequestsInFlight: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "http_requests_in_flight",
			Help:      "Number of HTTP requests currently being served",
		}),
	}
}
