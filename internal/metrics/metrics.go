package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Booking outcomes.
const (
	OutcomeBooked      = "booked"
	OutcomeConflict    = "conflict"
	OutcomeRejected    = "rejected"
	OutcomeUnavailable = "unavailable"
	OutcomeError       = "error"
)

type Metrics struct {
	reg prometheus.Gatherer

	Bookings        *prometheus.CounterVec
	Transitions     *prometheus.CounterVec
	HTTPRequests    *prometheus.CounterVec
	HTTPDuration    *prometheus.HistogramVec
	MaintenanceRuns *prometheus.CounterVec
}

// New registers the collectors on reg. Pass prometheus.NewRegistry() in
// tests to keep them isolated.
func New(reg *prometheus.Registry) *Metrics {
	m := &Metrics{
		reg: reg,
		Bookings: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "clinic_bookings_total",
				Help: "Booking attempts by outcome",
			},
			[]string{"outcome"},
		),
		Transitions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "clinic_appointment_transitions_total",
				Help: "Appointment lifecycle operations by action and result",
			},
			[]string{"action", "result"},
		),
		HTTPRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "endpoint", "status_code"},
		),
		HTTPDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "Duration of HTTP requests in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "endpoint"},
		),
		MaintenanceRuns: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "clinic_maintenance_runs_total",
				Help: "Schema maintenance operations by kind and result",
			},
			[]string{"operation", "result"},
		),
	}

	reg.MustRegister(m.Bookings, m.Transitions, m.HTTPRequests, m.HTTPDuration, m.MaintenanceRuns)
	return m
}

// Nop returns collectors bound to a private registry.
func Nop() *Metrics {
	return New(prometheus.NewRegistry())
}

func (m *Metrics) Booking(outcome string) {
	m.Bookings.WithLabelValues(outcome).Inc()
}

func (m *Metrics) Transition(action string, err error) {
	m.Transitions.WithLabelValues(action, result(err)).Inc()
}

func (m *Metrics) Maintenance(op string, err error) {
	m.MaintenanceRuns.WithLabelValues(op, result(err)).Inc()
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{})
}

func result(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
