package providers

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"bgmix/internal/services"
	"bgmix/internal/structures"
)

type MetricsProviderInterface interface {
	IncRequestsTotal(endpoint string, status int)
	ObserveRequestDuration(endpoint string, duration time.Duration)
	IncCacheHits()
	IncCacheMisses()
	IncFetchRetries(source string)
	IncUpstreamFailures(source string)
	ObserveFetchDuration(source string, duration time.Duration)
	ObservePersistenceDuration(duration time.Duration)
}

type MetricsProvider struct {
	requestsTotal       *prometheus.CounterVec
	requestDuration     *prometheus.HistogramVec
	cacheHits           prometheus.Counter
	cacheMisses         prometheus.Counter
	fetchRetries        *prometheus.CounterVec
	upstreamFailures    *prometheus.CounterVec
	fetchDuration       *prometheus.HistogramVec
	persistenceDuration prometheus.Histogram
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

func (m *MetricsProvider) IncFetchRetries(source string) {
	m.fetchRetries.WithLabelValues(source).Inc()
}

func (m *MetricsProvider) IncUpstreamFailures(source string) {
	m.upstreamFailures.WithLabelValues(source).Inc()
}

func (m *MetricsProvider) ObserveFetchDuration(source string, duration time.Duration) {
	m.fetchDuration.WithLabelValues(source).Observe(duration.Seconds())
}

func (m *MetricsProvider) ObservePersistenceDuration(duration time.Duration) {
	m.persistenceDuration.Observe(duration.Seconds())
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

func NewMetricsProvider(conf *structures.Config, sessions services.SessionServiceInterface) MetricsProviderInterface {
	if !conf.Metrics.Enabled {
		return &noopMetrics{}
	}

	m := &MetricsProvider{
		requestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "bgmix_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"endpoint", "status"}),

		requestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "bgmix_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),

		cacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "bgmix_cache_hits_total",
			Help: "Total number of response cache hits",
		}),

		cacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "bgmix_cache_misses_total",
			Help: "Total number of response cache misses",
		}),

		fetchRetries: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "bgmix_fetch_retries_total",
			Help: "Collection fetch retries after a still-processing response",
		}, []string{"source"}),

		upstreamFailures: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "bgmix_upstream_failures_total",
			Help: "Collection fetches that failed after retries",
		}, []string{"source"}),

		fetchDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "bgmix_fetch_duration_seconds",
			Help:    "Upstream collection fetch duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"source"}),

		persistenceDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "bgmix_persistence_duration_seconds",
			Help:    "Duration of session snapshot persistence in seconds",
			Buckets: prometheus.DefBuckets,
		}),
	}

	promauto.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "bgmix_sessions_total",
		Help: "Current number of stored game night sessions",
	}, func() float64 {
		return float64(sessions.Count())
	})

	return m
}

// noopMetrics is a no-op implementation for when metrics are disabled.
type noopMetrics struct{}

func (n *noopMetrics) IncRequestsTotal(_ string, _ int)                  {}
func (n *noopMetrics) ObserveRequestDuration(_ string, _ time.Duration)  {}
func (n *noopMetrics) IncCacheHits()                                     {}
func (n *noopMetrics) IncCacheMisses()                                   {}
func (n *noopMetrics) IncFetchRetries(_ string)                          {}
func (n *noopMetrics) IncUpstreamFailures(_ string)                      {}
func (n *noopMetrics) ObserveFetchDuration(_ string, _ time.Duration)    {}
func (n *noopMetrics) ObservePersistenceDuration(_ time.Duration)        {}
