package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gymiq_http_requests_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "gymiq_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	GenerationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gymiq_generations_total",
			Help: "Completed workout generations by producing path (llm or fallback).",
		},
		[]string{"path"},
	)

	GenerationDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "gymiq_generation_duration_seconds",
			Help:    "End-to-end generation pipeline duration in seconds.",
			Buckets: []float64{0.1, 0.5, 1, 2.5, 5, 10, 20, 40, 60},
		},
	)

	LLMRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gymiq_llm_requests_total",
			Help: "LM calls by pipeline stage and outcome.",
		},
		[]string{"stage", "result"},
	)

	QuotaDeniedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "gymiq_quota_denied_total",
			Help: "Generation requests rejected by the daily quota gate.",
		},
	)
)

func init() {
	prometheus.MustRegister(
		HTTPRequestsTotal,
		HTTPRequestDuration,
		GenerationsTotal,
		GenerationDuration,
		LLMRequestsTotal,
		QuotaDeniedTotal,
	)
}
