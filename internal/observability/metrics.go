package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters for the hazard service.
type Metrics struct {
	ReportsSubmitted   prometheus.Counter
	DuplicatesRejected prometheus.Counter
	ValidationFailures prometheus.Counter
	StatusUpdates      prometheus.Counter

	RouteRequests         *prometheus.CounterVec // labels: outcome={success,no_route,error}
	ExternalServiceErrors *prometheus.CounterVec // labels: provider={directions,places,plan,narration,vision}
	PlansGenerated        prometheus.Counter
}

// NewMetrics creates and registers all metrics with the default registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		ReportsSubmitted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "sidewalksafe",
			Name:      "reports_submitted_total",
			Help:      "Total hazard reports accepted into the store.",
		}),
		DuplicatesRejected: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "sidewalksafe",
			Name:      "reports_duplicates_total",
			Help:      "Total submissions rejected as (description, address) duplicates.",
		}),
		ValidationFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "sidewalksafe",
			Name:      "reports_validation_failures_total",
			Help:      "Total submissions rejected for missing or invalid fields.",
		}),
		StatusUpdates: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "sidewalksafe",
			Name:      "report_status_updates_total",
			Help:      "Total successful report status changes.",
		}),
		RouteRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "sidewalksafe",
			Name:      "route_requests_total",
			Help:      "Route lookups by outcome.",
		}, []string{"outcome"}),
		ExternalServiceErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "sidewalksafe",
			Name:      "external_service_errors_total",
			Help:      "Failures from external collaborators by provider.",
		}, []string{"provider"}),
		PlansGenerated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "sidewalksafe",
			Name:      "plans_generated_total",
			Help:      "Total remediation plans generated.",
		}),
	}

	prometheus.MustRegister(
		m.ReportsSubmitted,
		m.DuplicatesRejected,
		m.ValidationFailures,
		m.StatusUpdates,
		m.RouteRequests,
		m.ExternalServiceErrors,
		m.PlansGenerated,
	)
	return m
}

// NewTestMetrics builds the metric set without registering it, so parallel
// tests do not collide on the default registry.
func NewTestMetrics() *Metrics {
	return &Metrics{
		ReportsSubmitted:      prometheus.NewCounter(prometheus.CounterOpts{Name: "reports_submitted_total"}),
		DuplicatesRejected:    prometheus.NewCounter(prometheus.CounterOpts{Name: "reports_duplicates_total"}),
		ValidationFailures:    prometheus.NewCounter(prometheus.CounterOpts{Name: "reports_validation_failures_total"}),
		StatusUpdates:         prometheus.NewCounter(prometheus.CounterOpts{Name: "report_status_updates_total"}),
		RouteRequests:         prometheus.NewCounterVec(prometheus.CounterOpts{Name: "route_requests_total"}, []string{"outcome"}),
		ExternalServiceErrors: prometheus.NewCounterVec(prometheus.CounterOpts{Name: "external_service_errors_total"}, []string{"provider"}),
		PlansGenerated:        prometheus.NewCounter(prometheus.CounterOpts{Name: "plans_generated_total"}),
	}
}
