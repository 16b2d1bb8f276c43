package providers

import (
	"cookingapp/internal/structures"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	FetchOutcomeSuccess = "success"
	FetchOutcomeFailure = "failure"
)

type MetricsProviderInterface interface {
	IncRequestsTotal(endpoint string, status int)
	ObserveRequestDuration(endpoint string, duration time.Duration)
	IncCacheHits()
	IncCacheMisses()
	ObservePersistenceDuration(duration time.Duration)
	IncFetchTotal(outcome string)
	ObserveFetchDuration(duration time.Duration)
	SetCatalogSize(count int)
	IncReschedules()
	IncStoreCorruption()
}

type MetricsProvider struct {
	requestsTotal       *prometheus.CounterVec
	requestDuration     *prometheus.HistogramVec
	cacheHits           prometheus.Counter
	cacheMisses         prometheus.Counter
	persistenceDuration prometheus.Histogram
	fetchTotal          *prometheus.CounterVec
	fetchDuration       prometheus.Histogram
	catalogSize         prometheus.Gauge
	reschedules         prometheus.Counter
	storeCorruption     prometheus.Counter
}

func (m *MetricsProvider) IncRequestsTotal(endpoint string, status int) {
	m.requestsTotal.WithLabelValues(endpoint, httpStatusBucket(status)).Inc()
}

func (m *MetricsProvider) ObserveRequestDuration(endpoint string, duration time.Duration) {
	m.requestDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}

func (m *MetricsProvider) IncCacheHits() {
	m.cacheHits.Inc()
}

func (m *MetricsProvider) IncCacheMisses() {
	m.cacheMisses.Inc()
}

func (m *MetricsProvider) ObservePersistenceDuration(duration time.Duration) {
	m.persistenceDuration.Observe(duration.Seconds())
}

func (m *MetricsProvider) IncFetchTotal(outcome string) {
	m.fetchTotal.WithLabelValues(outcome).Inc()
}

func (m *MetricsProvider) ObserveFetchDuration(duration time.Duration) {
	m.fetchDuration.Observe(duration.Seconds())
}

func (m *MetricsProvider) SetCatalogSize(count int) {
	m.catalogSize.Set(float64(count))
}

func (m *MetricsProvider) IncReschedules() {
	m.reschedules.Inc()
}

func (m *MetricsProvider) IncStoreCorruption() {
	m.storeCorruption.Inc()
}

func httpStatusBucket(code int) string {
	switch {
	case code < 200:
		return "1xx"
	case code < 300:
		return "2xx"
	case code < 400:
		return "3xx"
	case code < 500:
		return "4xx"
	default:
		return "5xx"
	}
}

func NewMetricsProvider(conf *structures.Config) MetricsProviderInterface {
	if !conf.Metrics.Enabled {
		return &noopMetrics{}
	}

	return &MetricsProvider{
		requestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "cookingapp_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"endpoint", "status"}),

		requestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "cookingapp_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),

		cacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "cookingapp_cache_hits_total",
			Help: "Total number of snapshot cache hits",
		}),

		cacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "cookingapp_cache_misses_total",
			Help: "Total number of snapshot cache misses",
		}),

		persistenceDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "cookingapp_persistence_duration_seconds",
			Help:    "Duration of schedule slot writes in seconds",
			Buckets: prometheus.DefBuckets,
		}),

		fetchTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "cookingapp_catalog_fetch_total",
			Help: "Total number of catalog fetches by outcome",
		}, []string{"outcome"}),

		fetchDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "cookingapp_catalog_fetch_duration_seconds",
			Help:    "Catalog fetch duration in seconds",
			Buckets: prometheus.DefBuckets,
		}),

		catalogSize: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "cookingapp_catalog_dishes",
			Help: "Number of dishes in the current catalog",
		}),

		reschedules: promauto.NewCounter(prometheus.CounterOpts{
			Name: "cookingapp_reschedules_total",
			Help: "Total number of confirmed reschedules",
		}),

		storeCorruption: promauto.NewCounter(prometheus.CounterOpts{
			Name: "cookingapp_store_corruption_total",
			Help: "Total number of unreadable schedule slot records",
		}),
	}
}

// noopMetrics is used when metrics are disabled.
type noopMetrics struct{}

func (n *noopMetrics) IncRequestsTotal(_ string, _ int)                 {}
func (n *noopMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}
func (n *noopMetrics) IncCacheHits()                                    {}
func (n *noopMetrics) IncCacheMisses()                                  {}
func (n *noopMetrics) ObservePersistenceDuration(_ time.Duration)       {}
func (n *noopMetrics) IncFetchTotal(_ string)                           {}
func (n *noopMetrics) ObserveFetchDuration(_ time.Duration)             {}
func (n *noopMetrics) SetCatalogSize(_ int)                             {}
func (n *noopMetrics) IncReschedules()                                  {}
func (n *noopMetrics) IncStoreCorruption()                              {}
