package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	UpstreamRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "storefront",
			Name:      "upstream_requests_total",
			Help:      "Property API calls by operation and outcome",
		},
		[]string{"operation", "outcome"},
	)

	UpstreamLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "storefront",
			Name:      "upstream_request_duration_seconds",
			Help:      "Latency of property API calls",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	CacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "storefront",
			Name:      "cache_lookups_total",
			Help:      "Response cache lookups by kind and result",
		},
		[]string{"kind", "result"},
	)

	PropertyViews = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "storefront",
			Name:      "property_views_total",
			Help:      "Property detail pages served",
		},
	)

	Searches = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "storefront",
			Name:      "searches_total",
			Help:      "Searches by sort key",
		},
		[]string{"sort"},
	)

	HeroStreams = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "storefront",
			Name:      "hero_streams_active",
			Help:      "Open hero carousel streams",
		},
	)
)

const (
	OutcomeOK    = "ok"
	OutcomeError = "error"

	CacheHit  = "hit"
	CacheMiss = "miss"
)

// Outcome labels err for UpstreamRequests.
func Outcome(err error) string {
	if err != nil {
		return OutcomeError
	}
	return OutcomeOK
}
