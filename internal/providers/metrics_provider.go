package providers

import (
	"paywall/internal/structures"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type MetricsProviderInterface interface {
	IncRequestsTotal(endpoint string, status int)
	ObserveRequestDuration(endpoint string, duration time.Duration)
	IncCacheHits()
	IncCacheMisses()
	IncActionsTracked(action string)
	IncOffersGenerated(trigger string)
	IncOffersSuppressed(reason string)
	IncPurchasesRecorded()
	IncGuardRejections(key string)
	ObserveStoreWriteDuration(duration time.Duration)
}

type MetricsProvider struct {
	requestsTotal      *prometheus.CounterVec
	requestDuration    *prometheus.HistogramVec
	cacheHits          prometheus.Counter
	cacheMisses        prometheus.Counter
	actionsTracked     *prometheus.CounterVec
	offersGenerated    *prometheus.CounterVec
	offersSuppressed   *prometheus.CounterVec
	purchasesRecorded  prometheus.Counter
	guardRejections    *prometheus.CounterVec
	storeWriteDuration prometheus.Histogram
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

func (m *MetricsProvider) IncActionsTracked(action string) {
	m.actionsTracked.WithLabelValues(action).Inc()
}

func (m *MetricsProvider) IncOffersGenerated(trigger string) {
	m.offersGenerated.WithLabelValues(trigger).Inc()
}

func (m *MetricsProvider) IncOffersSuppressed(reason string) {
	m.offersSuppressed.WithLabelValues(reason).Inc()
}

func (m *MetricsProvider) IncPurchasesRecorded() {
	m.purchasesRecorded.Inc()
}

func (m *MetricsProvider) IncGuardRejections(key string) {
	m.guardRejections.WithLabelValues(key).Inc()
}

func (m *MetricsProvider) ObserveStoreWriteDuration(duration time.Duration) {
	m.storeWriteDuration.Observe(duration.Seconds())
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
			Name: "paywall_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"endpoint", "status"}),

		requestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "paywall_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),

		cacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "paywall_cache_hits_total",
			Help: "Total number of store cache hits",
		}),

		cacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "paywall_cache_misses_total",
			Help: "Total number of store cache misses",
		}),

		actionsTracked: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "paywall_actions_tracked_total",
			Help: "Total number of engagement actions tracked",
		}, []string{"action"}),

		offersGenerated: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "paywall_offers_generated_total",
			Help: "Total number of offers generated, by trigger",
		}, []string{"trigger"}),

		offersSuppressed: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "paywall_offers_suppressed_total",
			Help: "Total number of offer evaluations that produced no offer, by reason",
		}, []string{"reason"}),

		purchasesRecorded: promauto.NewCounter(prometheus.CounterOpts{
			Name: "paywall_purchases_recorded_total",
			Help: "Total number of purchases recorded",
		}),

		guardRejections: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "paywall_guard_rejections_total",
			Help: "Total number of action guard rejections, by key",
		}, []string{"key"}),

		storeWriteDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "paywall_store_write_duration_seconds",
			Help:    "Duration of durable store writes in seconds",
			Buckets: prometheus.DefBuckets,
		}),
	}
}

// noopMetrics is a no-op implementation for when metrics are disabled.
type noopMetrics struct{}

func (n *noopMetrics) IncRequestsTotal(_ string, _ int)                 {}
func (n *noopMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}
func (n *noopMetrics) IncCacheHits()                                    {}
func (n *noopMetrics) IncCacheMisses()                                  {}
func (n *noopMetrics) IncActionsTracked(_ string)                       {}
func (n *noopMetrics) IncOffersGenerated(_ string)                      {}
func (n *noopMetrics) IncOffersSuppressed(_ string)                     {}
func (n *noopMetrics) IncPurchasesRecorded()                            {}
func (n *noopMetrics) IncGuardRejections(_ string)                      {}
func (n *noopMetrics) ObserveStoreWriteDuration(_ time.Duration)        {}
