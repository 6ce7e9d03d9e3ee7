package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics provides observability for identifier validation.
type Metrics struct {
	registry *prometheus.Registry

	// Validation outcomes by kind and reason
	ValidationOutcome *prometheus.CounterVec

	// Registration payload checks by record type and result
	RegistrationOutcome *prometheus.CounterVec

	// Journal writes that failed
	JournalFailures prometheus.Counter

	// Duration of a service-level validation including the journal write
	ValidateLatency prometheus.Histogram
}

// New creates a Metrics instance backed by its own registry, so tests and
// multiple servers in one process never collide on registration.
func New() *Metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,

		ValidationOutcome: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "idcheck_validation_outcomes_total",
			Help: "Identifier validations by kind and reason",
		}, []string{"kind", "reason"}),

		RegistrationOutcome: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "idcheck_registration_checks_total",
			Help: "Registration payload checks by record type and result",
		}, []string{"record_type", "result"}), // result: "valid", "invalid", "error"

		JournalFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "idcheck_journal_failures_total",
			Help: "Validation journal writes that failed",
		}),

		ValidateLatency: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "idcheck_validate_duration_seconds",
			Help:    "Duration of a validation request including the journal write",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25},
		}),
	}
}

// IncrementOutcome records a validation outcome.
func (m *Metrics) IncrementOutcome(kind, reason string) {
	if m != nil {
		m.ValidationOutcome.WithLabelValues(kind, reason).Inc()
	}
}

// IncrementRegistration records a registration payload check.
func (m *Metrics) IncrementRegistration(recordType, result string) {
	if m != nil {
		m.RegistrationOutcome.WithLabelValues(recordType, result).Inc()
	}
}

// IncrementJournalFailure records a failed journal write.
func (m *Metrics) IncrementJournalFailure() {
	if m != nil {
		m.JournalFailures.Inc()
	}
}

// ObserveValidateLatency records the duration of one validation.
func (m *Metrics) ObserveValidateLatency(d time.Duration) {
	if m != nil {
		m.ValidateLatency.Observe(d.Seconds())
	}
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
