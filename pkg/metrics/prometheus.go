package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all prometheus metrics
type Metrics struct {
	Searches           *prometheus.CounterVec
	UpstreamRequests   *prometheus.CounterVec
	AirportCacheHits   prometheus.Counter
	AirportCacheMisses prometheus.Counter
	EnrichmentFailures prometheus.Counter
	SearchDuration     *prometheus.HistogramVec
	BatchCacheRequests *prometheus.CounterVec
}

// NewMetrics creates new prometheus metrics registered on the default registry
func NewMetrics(namespace string) *Metrics {
	return NewMetricsWithRegistry(namespace, prometheus.DefaultRegisterer)
}

// NewMetricsWithRegistry creates new prometheus metrics registered on reg
func NewMetricsWithRegistry(namespace string, reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		Searches: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "searches_total",
			Help:      "The total number of searches by kind and outcome",
		}, []string{"kind", "outcome"}),
		UpstreamRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "upstream_requests_total",
			Help:      "The total number of aviation data provider requests",
		}, []string{"operation", "outcome"}),
		AirportCacheHits: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "airport_cache_hits_total",
			Help:      "Airport coordinate lookups served from the in-process cache",
		}),
		AirportCacheMisses: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "airport_cache_misses_total",
			Help:      "Airport coordinate lookups that went to the lookup service",
		}),
		EnrichmentFailures: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "enrichment_failures_total",
			Help:      "Destination coordinate resolutions that failed during enrichment",
		}),
		SearchDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "search_duration_seconds",
			Help:      "Time taken to complete a search",
			Buckets:   prometheus.DefBuckets,
		}, []string{"kind"}),
		BatchCacheRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "batch_cache_requests_total",
			Help:      "Upstream batch cache lookups by result",
		}, []string{"result"}),
	}
}

// Outcome labels
const (
	OutcomeSuccess     = "success"
	OutcomeEmpty       = "empty"
	OutcomeError       = "error"
	OutcomeRateLimited = "rate_limited"
)
