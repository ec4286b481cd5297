// Package metrics defines the Prometheus instrumentation for the dashboard
// runtime: build outcomes, action invocations and figure recompute latency.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics bundles the runtime's collectors. Collectors are registered on the
// supplied Registerer so tests can use an isolated registry.
type Metrics struct {
	BuildsTotal       *prometheus.CounterVec
	InvocationsTotal  *prometheus.CounterVec
	InvocationErrors  *prometheus.CounterVec
	RecomputeDuration *prometheus.HistogramVec
	ActiveSessions    prometheus.Gauge
}

// New registers the collectors on reg and returns them.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		BuildsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "vizro",
			Name:      "builds_total",
			Help:      "Dashboard snapshot builds, by outcome.",
		}, []string{"outcome"}),
		InvocationsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "vizro",
			Name:      "action_invocations_total",
			Help:      "Action invocations, by action kind.",
		}, []string{"kind"}),
		InvocationErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "vizro",
			Name:      "action_invocation_errors_total",
			Help:      "Failed action invocations, by action kind.",
		}, []string{"kind"}),
		RecomputeDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "vizro",
			Name:      "action_recompute_duration_seconds",
			Help:      "Wall time spent recomputing figures per invocation.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"kind"}),
		ActiveSessions: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "vizro",
			Name:      "active_sessions",
			Help:      "Currently connected dashboard sessions.",
		}),
	}
}

// Build outcome label values.
const (
	OutcomeOK    = "ok"
	OutcomeError = "error"
)

// ObserveBuild records one build attempt.
func (m *Metrics) ObserveBuild(err error) {
	outcome := OutcomeOK
	if err != nil {
		outcome = OutcomeError
	}
	m.BuildsTotal.WithLabelValues(outcome).Inc()
}
