package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	RegistrationsCreated prometheus.Counter
	RegistrationsDeleted prometheus.Counter
	StatusTransitions    *prometheus.CounterVec
	ValidationFailures   prometheus.Counter

	NotificationsSent    prometheus.Counter
	NotificationsFailed  prometheus.Counter
	NotificationsDropped prometheus.Counter

	AdminLogins        prometheus.Counter
	AdminLoginFailures prometheus.Counter

	EndpointLatency *prometheus.HistogramVec
}

// New creates and registers all Prometheus metrics.
func New() *Metrics {
	return &Metrics{
		RegistrationsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "registrar_registrations_created_total",
			Help: "Total number of registrations created",
		}),
		RegistrationsDeleted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "registrar_registrations_deleted_total",
			Help: "Total number of registrations permanently deleted",
		}),
		StatusTransitions: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "registrar_status_transitions_total",
			Help: "Total number of moderation status updates, labeled by new status",
		}, []string{"status"}),
		ValidationFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "registrar_validation_failures_total",
			Help: "Total number of rejected intake submissions",
		}),
		NotificationsSent: promauto.NewCounter(prometheus.CounterOpts{
			Name: "registrar_notifications_sent_total",
			Help: "Total number of confirmation emails sent",
		}),
		NotificationsFailed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "registrar_notifications_failed_total",
			Help: "Total number of confirmation emails that could not be sent",
		}),
		NotificationsDropped: promauto.NewCounter(prometheus.CounterOpts{
			Name: "registrar_notifications_dropped_total",
			Help: "Total number of confirmation emails dropped because the queue was full",
		}),
		AdminLogins: promauto.NewCounter(prometheus.CounterOpts{
			Name: "registrar_admin_logins_total",
			Help: "Total number of successful admin logins",
		}),
		AdminLoginFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "registrar_admin_login_failures_total",
			Help: "Total number of failed admin login attempts",
		}),
		EndpointLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "registrar_endpoint_latency_seconds",
			Help:    "Latency of endpoints in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),
	}
}

// IncrementRegistrationsCreated increments the registrations created counter by 1.
func (m *Metrics) IncrementRegistrationsCreated() {
	m.RegistrationsCreated.Inc()
}

// IncrementRegistrationsDeleted increments the registrations deleted counter by 1.
func (m *Metrics) IncrementRegistrationsDeleted() {
	m.RegistrationsDeleted.Inc()
}

// IncrementStatusTransitions records a moderation decision with the new status label.
func (m *Metrics) IncrementStatusTransitions(status string) {
	m.StatusTransitions.WithLabelValues(status).Inc()
}

func (m *Metrics) IncrementValidationFailures() {
	m.ValidationFailures.Inc()
}

func (m *Metrics) IncrementNotificationsSent() {
	m.NotificationsSent.Inc()
}

func (m *Metrics) IncrementNotificationsFailed() {
	m.NotificationsFailed.Inc()
}

func (m *Metrics) IncrementNotificationsDropped() {
	m.NotificationsDropped.Inc()
}

func (m *Metrics) IncrementAdminLogins() {
	m.AdminLogins.Inc()
}

func (m *Metrics) IncrementAdminLoginFailures() {
	m.AdminLoginFailures.Inc()
}

// ObserveEndpointLatency records the latency for a given endpoint.
func (m *Metrics) ObserveEndpointLatency(endpoint string, durationSeconds float64) {
	m.EndpointLatency.WithLabelValues(endpoint).Observe(durationSeconds)
}
