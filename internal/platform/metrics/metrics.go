package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Registry holds the application-specific Prometheus collectors.
	Registry = prometheus.NewRegistry()

	httpInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "placement",
			Subsystem: "http",
			Name:      "inflight_requests",
			Help:      "Current number of in-flight HTTP requests.",
		},
	)

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "placement",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		},
		[]string{"method", "route", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "placement",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10), // 5ms to ~5s
		},
		[]string{"method", "route"},
	)

	placementTransitions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "placement",
			Subsystem: "lifecycle",
			Name:      "transitions_total",
			Help:      "Placement status changes by resulting status.",
		},
		[]string{"status"},
	)

	ruleViolations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "placement",
			Subsystem: "rules",
			Name:      "violations_total",
			Help:      "Business rule violations returned to callers, by code.",
		},
		[]string{"code"},
	)

	journalReviews = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "placement",
			Subsystem: "journal",
			Name:      "reviews_total",
			Help:      "Journal review decisions.",
		},
		[]string{"decision"},
	)
)

func init() {
	Registry.MustRegister(
		httpInFlight,
		httpRequests,
		httpDuration,
		placementTransitions,
		ruleViolations,
		journalReviews,
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
		prometheus.NewGoCollector(),
	)
}

// Handler returns an HTTP handler exposing the registered Prometheus metrics.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

// RequestStarted marks one more in-flight request and returns the func that ends it.
func RequestStarted() func() {
	httpInFlight.Inc()
	return httpInFlight.Dec
}

// ObserveRequest records a finished HTTP request.
func ObserveRequest(method, route, status string, duration time.Duration) {
	httpRequests.WithLabelValues(method, route, status).Inc()
	httpDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// RecordPlacementStatus counts a placement reaching status.
func RecordPlacementStatus(status string) {
	placementTransitions.WithLabelValues(status).Inc()
}

// RecordRuleViolation counts a rule violation by its code.
func RecordRuleViolation(code string) {
	if code == "" {
		return
	}
	ruleViolations.WithLabelValues(code).Inc()
}

// RecordJournalReview counts a review decision.
func RecordJournalReview(decision string) {
	journalReviews.WithLabelValues(decision).Inc()
}
