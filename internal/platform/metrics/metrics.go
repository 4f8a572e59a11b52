package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	InstructorsRegistered prometheus.Counter
	LoginAttempts         *prometheus.CounterVec
	CoursesCreated        prometheus.Counter
	Enrollments           *prometheus.CounterVec
	RequestLatency        *prometheus.HistogramVec
}

// New creates and registers all Prometheus metrics on the default registry.
func New() *Metrics {
	return NewWithRegistry(prometheus.DefaultRegisterer)
}

// NewWithRegistry registers the metrics on a caller-provided registerer.
// Tests use this with a fresh registry to avoid duplicate registration.
func NewWithRegistry(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		InstructorsRegistered: factory.NewCounter(prometheus.CounterOpts{
			Name: "coursehub_instructors_registered_total",
			Help: "Total number of instructors registered",
		}),
		LoginAttempts: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "coursehub_login_attempts_total",
			Help: "Login attempts by outcome",
		}, []string{"outcome"}),
		CoursesCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "coursehub_courses_created_total",
			Help: "Total number of courses created",
		}),
		Enrollments: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "coursehub_enrollments_total",
			Help: "Enrollment operations by kind and outcome",
		}, []string{"kind", "outcome"}),
		RequestLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "coursehub_http_request_duration_seconds",
			Help:    "HTTP request latency by route and status",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "status"}),
	}
}

// ObserveRequest records a single HTTP request observation.
func (m *Metrics) ObserveRequest(route, status string, d time.Duration) {
	m.RequestLatency.WithLabelValues(route, status).Observe(d.Seconds())
}

// IncEnrollment counts one enrollment operation.
func (m *Metrics) IncEnrollment(kind, outcome string) {
	m.Enrollments.WithLabelValues(kind, outcome).Inc()
}

// IncLogin counts one login attempt.
func (m *Metrics) IncLogin(outcome string) {
	m.LoginAttempts.WithLabelValues(outcome).Inc()
}
