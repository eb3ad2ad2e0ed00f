package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// Latency of the recommendations HTTP handler
	RecommendLatency = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "recommend_latency_seconds",
		Help:    "Latency of the recommendations handler",
		Buckets: prometheus.DefBuckets,
	})

	// Total number of recommendation requests served
	RecommendRequests = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "recommend_requests_total",
		Help: "Total number of recommendation requests",
	})

	// How many requests ended up on the heuristic fallback path
	RecommendFallbacks = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "recommend_fallback_total",
		Help: "Recommendation requests answered by the heuristic fallback",
	})

	// Provider call outcomes, labelled ok / transient / permanent
	ProviderCalls = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "llm_provider_calls_total",
		Help: "Completion provider calls by outcome",
	}, []string{"outcome"})
)

func Init() {
	prometheus.MustRegister(
		RecommendLatency,
		RecommendRequests,
		RecommendFallbacks,
		ProviderCalls,
	)
}
