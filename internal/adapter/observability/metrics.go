package observability

import (
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/fairyhunter13/shortlist-engine/internal/domain"
)

var (
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"route", "method", "status"},
	)
	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5},
		},
		[]string{"route", "method"},
	)

	ShortlistGenerationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "shortlist_generations_total",
			Help: "Shortlist generations by outcome (ok, partial, error)",
		},
		[]string{"outcome"},
	)
	ShortlistGenerationDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "shortlist_generation_duration_seconds",
			Help:    "Time to load, score and rank one job's applications",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
		},
	)
	ShortlistApplicationsScored = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "shortlist_applications_scored",
			Help:    "Applications ranked per generation",
			Buckets: prometheus.ExponentialBuckets(1, 2, 12),
		},
	)
	ScoringFailuresTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "shortlist_scoring_failures_total",
			Help: "Applications excluded from a ranking",
		},
		[]string{"reason"},
	)
	NormalizedScoreHistogram = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "shortlist_normalized_score",
			Help:    "Distribution of normalized scores [0,100]",
			Buckets: prometheus.LinearBuckets(0, 10, 11),
		},
	)

	CompletionPercentageHistogram = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "profile_completion_percentage",
			Help:    "Distribution of profile completion percentage [0,100]",
			Buckets: prometheus.LinearBuckets(0, 10, 11),
		},
	)
	ApplicationsSubmittedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "applications_submitted_total",
			Help: "Application submissions by outcome",
		},
		[]string{"outcome"},
	)
	CriteriaValidationIssuesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "criteria_validation_issues_total",
			Help: "Criteria validation issues by code",
		},
		[]string{"code"},
	)

	AuditEventsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "audit_events_total",
			Help: "Audit events by type and publish status",
		},
		[]string{"type", "status"},
	)
	CacheRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "shortlist_cache_requests_total",
			Help: "Ranking cache lookups by result (hit, miss, error, bypass)",
		},
		[]string{"result"},
	)
	CircuitBreakerStateGauge = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0 closed, 1 open, 2 half-open)",
		},
		[]string{"name"},
	)
)

var initOnce sync.Once

// InitMetrics registers every collector with the default registry once.
func InitMetrics() {
	initOnce.Do(func() {
		prometheus.MustRegister(
			HTTPRequestsTotal,
			HTTPRequestDuration,
			ShortlistGenerationsTotal,
			ShortlistGenerationDuration,
			ShortlistApplicationsScored,
			ScoringFailuresTotal,
			NormalizedScoreHistogram,
			CompletionPercentageHistogram,
			ApplicationsSubmittedTotal,
			CriteriaValidationIssuesTotal,
			AuditEventsTotal,
			CacheRequestsTotal,
			CircuitBreakerStateGauge,
		)
	})
}

// HTTPMetricsMiddleware records Prometheus metrics for each request.
func HTTPMetricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		dur := time.Since(start).Seconds()
		var route string
		if rc := chi.RouteContext(r.Context()); rc != nil {
			route = rc.RoutePattern()
		}
		if route == "" {
			route = r.URL.Path
		}
		HTTPRequestsTotal.WithLabelValues(route, r.Method, http.StatusText(ww.Status())).Inc()
		HTTPRequestDuration.WithLabelValues(route, r.Method).Observe(dur)
	})
}

// RecordShortlist observes one generation. err is the generation error, if any.
func RecordShortlist(r domain.Ranking, dur time.Duration, err error) {
	ShortlistGenerationDuration.Observe(dur.Seconds())
	switch {
	case err != nil:
		ShortlistGenerationsTotal.WithLabelValues("error").Inc()
		return
	case len(r.Failures) > 0:
		ShortlistGenerationsTotal.WithLabelValues("partial").Inc()
	default:
		ShortlistGenerationsTotal.WithLabelValues("ok").Inc()
	}
	ShortlistApplicationsScored.Observe(float64(len(r.Entries)))
	for _, e := range r.Entries {
		NormalizedScoreHistogram.Observe(float64(e.ScoreBreakdown.NormalizedScore))
	}
	for _, f := range r.Failures {
		ScoringFailuresTotal.WithLabelValues(FailureReasonLabel(f.Reason)).Inc()
	}
}

// FailureReasonLabel keeps the failure label set bounded.
func FailureReasonLabel(reason string) string {
	switch {
	case len(reason) >= 5 && reason[:5] == "rule ":
		return "configuration"
	case reason == "profile snapshot unavailable":
		return "missing_profile"
	default:
		return "other"
	}
}

// ObserveCompletion records one completion evaluation.
func ObserveCompletion(res domain.EligibilityResult) {
	if res.CompletionPercentage >= 0 && res.CompletionPercentage <= 100 {
		CompletionPercentageHistogram.Observe(float64(res.CompletionPercentage))
	}
}

// RecordSubmission counts an application submission outcome (accepted, incomplete, duplicate, error).
func RecordSubmission(outcome string) {
	ApplicationsSubmittedTotal.WithLabelValues(outcome).Inc()
}

// RecordValidationIssues counts rejected criteria issues by code.
func RecordValidationIssues(issues []domain.ValidationIssue) {
	for _, i := range issues {
		CriteriaValidationIssuesTotal.WithLabelValues(i.Code).Inc()
	}
}

// RecordAuditEvent counts an audit publish attempt.
func RecordAuditEvent(eventType, status string) {
	AuditEventsTotal.WithLabelValues(eventType, status).Inc()
}

// RecordCacheLookup counts a ranking cache lookup result.
func RecordCacheLookup(result string) {
	CacheRequestsTotal.WithLabelValues(result).Inc()
}

// RecordCircuitBreakerStatus exports the state of a named breaker.
func RecordCircuitBreakerStatus(name string, state int) {
	CircuitBreakerStateGauge.WithLabelValues(name).Set(float64(state))
}
