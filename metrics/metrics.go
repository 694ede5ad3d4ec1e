package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all prometheus collectors of the reservation service
type Metrics struct {
	ReservationsCreated prometheus.Counter
	StatusTransitions   *prometheus.CounterVec
	ValidationFailures  prometheus.Counter
	StoreErrors         *prometheus.CounterVec
	EventPublishErrors  prometheus.Counter
	RequestDuration     *prometheus.HistogramVec
}

// NewMetrics registers the collectors on reg.
// Pass prometheus.DefaultRegisterer in main and a fresh registry in tests.
func NewMetrics(namespace string, reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		ReservationsCreated: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reservations_created_total",
			Help:      "The total number of reservations created",
		}),
		StatusTransitions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reservation_status_transitions_total",
			Help:      "The total number of reservation status writes by target status",
		}, []string{"status"}),
		ValidationFailures: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reservation_validation_failures_total",
			Help:      "The total number of rejected reservation requests",
		}),
		StoreErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "store_errors_total",
			Help:      "The total number of reservation store failures",
		}, []string{"operation"}),
		EventPublishErrors: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "event_publish_errors_total",
			Help:      "The total number of reservation events that failed to publish",
		}),
		RequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Time taken to serve HTTP requests",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}
}
