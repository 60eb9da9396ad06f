package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// HTTPMetrics records request-level metrics plus the domain counters the
// portal exposes.
type HTTPMetrics struct {
	registry *prometheus.Registry

	requestDuration     *prometheus.HistogramVec
	requestsTotal       *prometheus.CounterVec
	inquiriesSubmitted  prometheus.Counter
	inquiryEmailsFailed prometheus.Counter
	registrations       prometheus.Counter
}

// NewHTTPMetrics registers the HTTP and domain metrics on a fresh registry.
func NewHTTPMetrics() *HTTPMetrics {
	registry := prometheus.NewRegistry()

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route", "status"})
	requestsTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total HTTP requests served.",
	}, []string{"method", "route", "status"})
	inquiriesSubmitted := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "inquiries_submitted_total",
		Help: "Inquiries successfully submitted by buyers.",
	})
	inquiryEmailsFailed := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "inquiry_emails_failed_total",
		Help: "Inquiry notification emails that could not be delivered.",
	})
	registrations := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "buyer_registrations_total",
		Help: "Buyer accounts registered.",
	})

	registry.MustRegister(requestDuration, requestsTotal, inquiriesSubmitted, inquiryEmailsFailed, registrations)

	return &HTTPMetrics{
		registry:            registry,
		requestDuration:     requestDuration,
		requestsTotal:       requestsTotal,
		inquiriesSubmitted:  inquiriesSubmitted,
		inquiryEmailsFailed: inquiryEmailsFailed,
		registrations:       registrations,
	}
}

// ObserveRequest records a completed HTTP request.
func (m *HTTPMetrics) ObserveRequest(method, route string, status int, duration time.Duration) {
	if m == nil || m.requestDuration == nil {
		return
	}
	labels := []string{method, normalizeRoute(route), strconv.Itoa(status)}
	m.requestDuration.WithLabelValues(labels...).Observe(duration.Seconds())
	m.requestsTotal.WithLabelValues(labels...).Inc()
}

// IncInquirySubmitted increments the submitted inquiries counter.
func (m *HTTPMetrics) IncInquirySubmitted() {
	if m == nil || m.inquiriesSubmitted == nil {
		return
	}
	m.inquiriesSubmitted.Inc()
}

// IncInquiryEmailFailed increments the failed notification email counter.
func (m *HTTPMetrics) IncInquiryEmailFailed() {
	if m == nil || m.inquiryEmailsFailed == nil {
		return
	}
	m.inquiryEmailsFailed.Inc()
}

// IncRegistration increments the buyer registrations counter.
func (m *HTTPMetrics) IncRegistration() {
	if m == nil || m.registrations == nil {
		return
	}
	m.registrations.Inc()
}

// Handler exposes the registry in Prometheus text format.
func (m *HTTPMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry exposes the underlying registry for tests.
func (m *HTTPMetrics) Registry() *prometheus.Registry {
	return m.registry
}

func normalizeRoute(route string) string {
	if route == "" {
		return "unmatched"
	}
	return route
}
