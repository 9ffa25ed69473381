// Package metrics exports intercept run and HTTP request counters to Prometheus.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/cxd309/intercept-engine/internal/engine"
)

// Run outcomes used as the "outcome" label.
const (
	OutcomeIntercepted = "intercepted"
	OutcomeMissed      = "missed"
	OutcomeFailed      = "failed"
)

var (
	runsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "intercept_runs_total",
			Help: "Scenario runs by outcome",
		},
		[]string{"outcome"},
	)
	searchDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "intercept_search_duration_seconds",
		Help:    "Wall time of a complete scenario run",
		Buckets: prometheus.ExponentialBuckets(0.001, 2, 14),
	})
	candidatesEvaluated = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "intercept_candidates_evaluated_total",
		Help: "(sample, delay, angle) triples evaluated by the search",
	})
	candidatesAccepted = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "intercept_candidates_accepted_total",
		Help: "Triples within the intercept tolerance",
	})
	lastError = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "intercept_last_solution_error_meters",
		Help: "Miss distance of the most recent intercept solution",
	})
	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "intercept_http_requests_total",
			Help: "HTTP requests by method, route and status code",
		},
		[]string{"method", "route", "status"},
	)
	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "intercept_http_request_duration_seconds",
			Help:    "HTTP request latency by route",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route"},
	)
)

func init() {
	prometheus.MustRegister(
		runsTotal, searchDuration,
		candidatesEvaluated, candidatesAccepted, lastError,
		httpRequests, httpDuration,
	)
	for _, outcome := range []string{OutcomeIntercepted, OutcomeMissed, OutcomeFailed} {
		runsTotal.WithLabelValues(outcome)
	}
}

// ObserveRun records a finished run.
func ObserveRun(r engine.Report, elapsed time.Duration) {
	searchDuration.Observe(elapsed.Seconds())
	candidatesEvaluated.Add(float64(r.Stats.Evaluated))
	candidatesAccepted.Add(float64(r.Stats.Accepted))

	if r.Intercepted && r.Solution != nil {
		runsTotal.WithLabelValues(OutcomeIntercepted).Inc()
		lastError.Set(r.Solution.Error)
		return
	}
	runsTotal.WithLabelValues(OutcomeMissed).Inc()
}

// ObserveFailure records a run rejected before producing a report.
func ObserveFailure() {
	runsTotal.WithLabelValues(OutcomeFailed).Inc()
}

// ObserveRequest records one served HTTP request. route is the matched route
// pattern, not the raw path.
func ObserveRequest(method, route string, status int, elapsed time.Duration) {
	httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	httpDuration.WithLabelValues(route).Observe(elapsed.Seconds())
}

// Handler serves the default registry in the Prometheus text format.
func Handler() http.Handler {
	return promhttp.Handler()
}
