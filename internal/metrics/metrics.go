package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the gateway collectors on a registry owned by the caller.
// All methods are safe on a nil receiver.
type Metrics struct {
	registry *prometheus.Registry

	// Questions answered by intent
	Questions *prometheus.CounterVec

	// Rejected bearer tokens by reason
	AuthFailures *prometheus.CounterVec

	// Fields withheld by the authorization engine
	FieldDenials *prometheus.CounterVec

	// Completion or retrieval failures by collaborator
	UpstreamFailures *prometheus.CounterVec

	// HTTP request latency by route and status
	RequestLatency *prometheus.HistogramVec
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		Questions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "hr_gateway_questions_total",
			Help: "Questions answered by routed intent",
		}, []string{"intent"}),
		AuthFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "hr_gateway_auth_failures_total",
			Help: "Requests rejected before routing because the bearer token failed verification",
		}, []string{"reason"}), // reason: "missing", "invalid", "expired", "malformed"
		FieldDenials: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "hr_gateway_field_denials_total",
			Help: "Profile fields withheld from a caller",
		}, []string{"field"}),
		UpstreamFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "hr_gateway_upstream_failures_total",
			Help: "Failed calls to external collaborators",
		}, []string{"collaborator"}), // collaborator: "completion", "policy_index"
		RequestLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "hr_gateway_request_duration_seconds",
			Help:    "HTTP request latency including generation",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}, []string{"route", "status"}),
	}
}

func (m *Metrics) IncQuestion(intent string) {
	if m != nil {
		m.Questions.WithLabelValues(intent).Inc()
	}
}

func (m *Metrics) IncAuthFailure(reason string) {
	if m != nil {
		m.AuthFailures.WithLabelValues(reason).Inc()
	}
}

func (m *Metrics) IncFieldDenial(field string) {
	if m != nil {
		m.FieldDenials.WithLabelValues(field).Inc()
	}
}

func (m *Metrics) IncUpstreamFailure(collaborator string) {
	if m != nil {
		m.UpstreamFailures.WithLabelValues(collaborator).Inc()
	}
}

func (m *Metrics) ObserveRequest(route, status string, d time.Duration) {
	if m != nil {
		m.RequestLatency.WithLabelValues(route, status).Observe(d.Seconds())
	}
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry is exposed for tests.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }
