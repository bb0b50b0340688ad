// Package metrics exposes Prometheus counters for the resolving pipeline.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector registers and serves the service's metrics on its own registry.
type Collector struct {
	reg *prometheus.Registry

	CatalogBatches  prometheus.Counter
	CatalogStops    prometheus.Counter
	FallbackServed  prometheus.Counter
	ProximityQuery  *prometheus.CounterVec // strategy label
	ProximityHits   prometheus.Histogram
	ArrivalFetches  *prometheus.CounterVec // cache label: hit|miss
	RequestDuration *prometheus.HistogramVec
}

// NewCollector creates and registers all collectors.
func NewCollector() *Collector {
	reg := prometheus.NewRegistry()

	c := &Collector{
		reg: reg,
		CatalogBatches: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "busarrival_catalog_batches_total",
			Help: "Total paginated catalog batches fetched from the provider.",
		}),
		CatalogStops: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "busarrival_catalog_stops_total",
			Help: "Total stop records fetched from the provider.",
		}),
		FallbackServed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "busarrival_catalog_fallback_total",
			Help: "Times the static fallback stop list was served.",
		}),
		ProximityQuery: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "busarrival_proximity_queries_total",
			Help: "Proximity queries resolved, by strategy.",
		}, []string{"strategy"}),
		ProximityHits: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "busarrival_proximity_results",
			Help:    "Number of in-radius stops per resolved query.",
			Buckets: prometheus.ExponentialBuckets(1, 2, 8),
		}),
		ArrivalFetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "busarrival_arrival_fetches_total",
			Help: "Arrival lookups, by cache outcome.",
		}, []string{"cache"}),
		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "busarrival_request_duration_seconds",
			Help:    "HTTP request duration by route.",
			Buckets: prometheus.ExponentialBuckets(0.005, 2, 12),
		}, []string{"route"}),
	}

	reg.MustRegister(
		c.CatalogBatches, c.CatalogStops, c.FallbackServed,
		c.ProximityQuery, c.ProximityHits,
		c.ArrivalFetches, c.RequestDuration,
	)
	return c
}

// Handler serves the registry in Prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.reg, promhttp.HandlerOpts{})
}

// CatalogBatchFetched implements catalog.Metrics.
func (c *Collector) CatalogBatchFetched(count int) {
	c.CatalogBatches.Inc()
	c.CatalogStops.Add(float64(count))
}

// CatalogFallbackServed implements catalog.Metrics.
func (c *Collector) CatalogFallbackServed() {
	c.FallbackServed.Inc()
}

// ProximityQueryResolved implements proximity.Metrics.
func (c *Collector) ProximityQueryResolved(strategy string, results int) {
	c.ProximityQuery.WithLabelValues(strategy).Inc()
	c.ProximityHits.Observe(float64(results))
}

// ArrivalFetch implements arrivals.Metrics.
func (c *Collector) ArrivalFetch(cacheHit bool) {
	outcome := "miss"
	if cacheHit {
		outcome = "hit"
	}
	c.ArrivalFetches.WithLabelValues(outcome).Inc()
}

// ObserveRequest records one HTTP request's duration for a route.
func (c *Collector) ObserveRequest(route string, d time.Duration) {
	c.RequestDuration.WithLabelValues(route).Observe(d.Seconds())
}
