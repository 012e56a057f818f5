// Package metrics holds the Prometheus collectors of the userkeeper server.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Auth failure reasons used as label values.
const (
	ReasonNoToken            = "no_token"
	ReasonInvalidToken       = "invalid_token"
	ReasonForbidden          = "forbidden"
	ReasonInvalidCredentials = "invalid_credentials"
)

type Metrics struct {
	registry *prometheus.Registry

	RequestsTotal     *prometheus.CounterVec
	RequestDuration   *prometheus.HistogramVec
	AuthFailuresTotal *prometheus.CounterVec
	RateLimitedTotal  prometheus.Counter
}

// New creates a private registry with Go and process collectors plus the
// service's own metrics.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	m := &Metrics{
		registry: reg,
		RequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "userkeeper_http_requests_total",
				Help: "Total number of HTTP requests by route, method and status code",
			},
			[]string{"route", "method", "code"},
		),
		RequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "userkeeper_http_request_duration_seconds",
				Help:    "HTTP request latency by route and method",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"route", "method"},
		),
		AuthFailuresTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "userkeeper_auth_failures_total",
				Help: "Rejected authentication and authorization attempts by reason",
			},
			[]string{"reason"},
		),
		RateLimitedTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "userkeeper_rate_limited_total",
				Help: "Requests rejected by the per-client rate limiter",
			},
		),
	}

	reg.MustRegister(m.RequestsTotal, m.RequestDuration, m.AuthFailuresTotal, m.RateLimitedTotal)
	return m
}

// RegisterUserCount exposes the directory size as a gauge.
func (m *Metrics) RegisterUserCount(count func() int) {
	m.registry.MustRegister(prometheus.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: "userkeeper_users",
			Help: "Number of users currently registered",
		},
		func() float64 { return float64(count()) },
	))
}

// Instrument wraps h with request counting and latency observation under
// the given route label.
func (m *Metrics) Instrument(route string, h http.Handler) http.Handler {
	labels := prometheus.Labels{"route": route}
	h = promhttp.InstrumentHandlerDuration(m.RequestDuration.MustCurryWith(labels), h)
	return promhttp.InstrumentHandlerCounter(m.RequestsTotal.MustCurryWith(labels), h)
}

func (m *Metrics) AuthFailure(reason string) {
	m.AuthFailuresTotal.WithLabelValues(reason).Inc()
}

func (m *Metrics) RateLimited() {
	m.RateLimitedTotal.Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
