package observability

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const metricsNamespace = "waitlist"

// Metrics holds the service's prometheus collectors. A nil *Metrics is valid
// and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	signups                *prometheus.CounterVec
	referralCreditFailures prometheus.Counter
	degradedQueries        prometheus.Counter
	otpSent                prometheus.Counter
	httpRequests           *prometheus.CounterVec
}

// NewMetrics registers all collectors on registry. A fresh registry is
// created when registry is nil.
func NewMetrics(registry *prometheus.Registry) *Metrics {
	if registry == nil {
		registry = prometheus.NewRegistry()
		registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}
	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,
		signups: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "signups_total",
			Help:      "Waitlist signups accepted, by role",
		}, []string{"role"}),
		referralCreditFailures: factory.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "referral_credit_failures_total",
			Help:      "Referral credits that failed and were skipped",
		}),
		degradedQueries: factory.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "admin_degraded_queries_total",
			Help:      "Queries that fell back to ordering without the vendor queue override",
		}),
		otpSent: factory.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "otp_sent_total",
			Help:      "One-time verification codes issued",
		}),
		httpRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests handled, by method, route and status",
		}, []string{"method", "route", "status"}),
	}
}

// Handler exposes the registry in the prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) SignupCreated(role string) {
	if m == nil {
		return
	}
	m.signups.WithLabelValues(role).Inc()
}

func (m *Metrics) ReferralCreditFailed() {
	if m == nil {
		return
	}
	m.referralCreditFailures.Inc()
}

func (m *Metrics) DegradedQuery() {
	if m == nil {
		return
	}
	m.degradedQueries.Inc()
}

func (m *Metrics) OTPSent() {
	if m == nil {
		return
	}
	m.otpSent.Inc()
}

func (m *Metrics) HTTPRequest(method, route string, status int) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
}
