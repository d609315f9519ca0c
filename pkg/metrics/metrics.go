package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "mucevher"

// ServerMetrics owns its registry so several instances (one per test) can
// coexist in a process. All recording helpers are safe on a nil receiver.
type ServerMetrics struct {
	Registry *prometheus.Registry

	Requests  *prometheus.CounterVec
	LatencyMS *prometheus.HistogramVec

	CartMutations     *prometheus.CounterVec
	CouponValidations *prometheus.CounterVec
	CatalogProducts   prometheus.Gauge
	AnalyticsEvents   *prometheus.CounterVec
	StateFallbacks    *prometheus.CounterVec
}

func NewServerMetrics(service string) *ServerMetrics {
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: service,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests.",
	}, []string{"handler", "status"})
	latency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: service,
		Name:      "http_request_duration_ms",
		Help:      "HTTP request latency in milliseconds.",
		Buckets:   []float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000},
	}, []string{"handler"})
	cart := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: service,
		Name:      "cart_mutations_total",
		Help:      "Cart ledger mutations by operation.",
	}, []string{"operation"})
	coupons := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: service,
		Name:      "coupon_validations_total",
		Help:      "Coupon validations by outcome code.",
	}, []string{"result"})
	products := prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: service,
		Name:      "catalog_products",
		Help:      "Products in the loaded catalog snapshot.",
	})
	analytics := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: service,
		Name:      "analytics_events_total",
		Help:      "Analytics deliveries by sink and outcome.",
	}, []string{"sink", "outcome"})
	fallbacks := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: service,
		Name:      "state_store_fallbacks_total",
		Help:      "Persistence operations served by the in-memory fallback.",
	}, []string{"operation"})

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		requests, latency, cart, coupons, products, analytics, fallbacks,
	)

	return &ServerMetrics{
		Registry:          reg,
		Requests:          requests,
		LatencyMS:         latency,
		CartMutations:     cart,
		CouponValidations: coupons,
		CatalogProducts:   products,
		AnalyticsEvents:   analytics,
		StateFallbacks:    fallbacks,
	}
}

// Handler exposes the registry in the Prometheus text format.
func (m *ServerMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{Registry: m.Registry})
}

func (m *ServerMetrics) ObserveRequest(handler, status string, ms float64) {
	if m == nil {
		return
	}
	m.Requests.WithLabelValues(handler, status).Inc()
	m.LatencyMS.WithLabelValues(handler).Observe(ms)
}

func (m *ServerMetrics) CartMutation(operation string) {
	if m == nil {
		return
	}
	m.CartMutations.WithLabelValues(operation).Inc()
}

func (m *ServerMetrics) CouponValidation(result string) {
	if m == nil {
		return
	}
	m.CouponValidations.WithLabelValues(result).Inc()
}

func (m *ServerMetrics) SetCatalogSize(n int) {
	if m == nil {
		return
	}
	m.CatalogProducts.Set(float64(n))
}

func (m *ServerMetrics) AnalyticsEvent(sink, outcome string) {
	if m == nil {
		return
	}
	m.AnalyticsEvents.WithLabelValues(sink, outcome).Inc()
}

func (m *ServerMetrics) StateFallback(operation string) {
	if m == nil {
		return
	}
	m.StateFallbacks.WithLabelValues(operation).Inc()
}
