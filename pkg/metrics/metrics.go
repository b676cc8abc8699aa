// Package metrics holds the Prometheus collectors of the alert engine.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "sentiq"

const (
	OutcomeSuccess  = "success"
	OutcomeDegraded = "degraded"
	OutcomeSkipped  = "skipped"
	OutcomeError    = "error"
)

var (
	passesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "monitor_passes_total",
			Help:      "Monitoring passes partitioned by outcome.",
		},
		[]string{"outcome"},
	)

	passDurationSeconds = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "monitor_pass_seconds",
			Help:      "Monitoring pass latency in seconds.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
		},
	)

	alertsGeneratedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "alerts_generated_total",
			Help:      "Alerts created by monitoring passes, by severity.",
		},
		[]string{"severity"},
	)

	alertsSuppressedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "alerts_suppressed_total",
			Help:      "Threshold crossings skipped because an equivalent active alert exists.",
		},
	)

	alertPersistFailuresTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "alert_persist_failures_total",
			Help:      "Generated alerts that could not be stored.",
		},
	)

	transitionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "alert_transitions_total",
			Help:      "Lifecycle actions partitioned by action, origin and outcome.",
		},
		[]string{"action", "origin", "outcome"},
	)

	upstreamErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "upstream_errors_total",
			Help:      "Failed calls to the backend, by operation.",
		},
		[]string{"operation"},
	)

	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests partitioned by method, route and status.",
		},
		[]string{"method", "route", "status"},
	)

	httpRequestDurationSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_seconds",
			Help:      "HTTP request latency in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)
)

// Register attaches the collectors to reg. Collectors registered before are
// left in place.
func Register(reg prometheus.Registerer) error {
	collectors := []prometheus.Collector{
		passesTotal,
		passDurationSeconds,
		alertsGeneratedTotal,
		alertsSuppressedTotal,
		alertPersistFailuresTotal,
		transitionsTotal,
		upstreamErrorsTotal,
		httpRequestsTotal,
		httpRequestDurationSeconds,
	}

	for _, collector := range collectors {
		if err := reg.Register(collector); err != nil {
			if _, ok := err.(prometheus.AlreadyRegisteredError); ok {
				continue
			}
			return err
		}
	}
	return nil
}

// ObservePass records one monitoring pass.
func ObservePass(duration time.Duration, outcome string) {
	passesTotal.WithLabelValues(outcome).Inc()
	if outcome == OutcomeSkipped {
		return
	}
	if duration < 0 {
		duration = 0
	}
	passDurationSeconds.Observe(duration.Seconds())
}

// ObserveGeneration records the result of one generation run.
func ObserveGeneration(createdBySeverity map[string]int, suppressed, failed int) {
	for severity, n := range createdBySeverity {
		alertsGeneratedTotal.WithLabelValues(severity).Add(float64(n))
	}
	alertsSuppressedTotal.Add(float64(suppressed))
	alertPersistFailuresTotal.Add(float64(failed))
}

func ObserveTransition(action, origin string, err error) {
	outcome := OutcomeSuccess
	if err != nil {
		outcome = OutcomeError
	}
	transitionsTotal.WithLabelValues(action, origin, outcome).Inc()
}

func ObserveUpstreamError(operation string) {
	upstreamErrorsTotal.WithLabelValues(operation).Inc()
}

func ObserveHTTPRequest(method, route string, status int, duration time.Duration) {
	httpRequestsTotal.WithLabelValues(method, route, statusLabel(status)).Inc()
	httpRequestDurationSeconds.WithLabelValues(method, route).Observe(duration.Seconds())
}

func statusLabel(status int) string {
	switch {
	case status >= 500:
		return "5xx"
	case status >= 400:
		return "4xx"
	case status >= 300:
		return "3xx"
	default:
		return "2xx"
	}
}
