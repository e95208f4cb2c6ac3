package llm

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Request status label values
const (
	statusSuccess       = "success"
	statusError         = "error"
	statusNotConfigured = "not_configured"
)

var (
	requestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "neighborly_llm_requests_total",
			Help: "Total number of requests to the language model provider.",
		},
		[]string{"provider", "model", "status"},
	)
	requestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "neighborly_llm_request_duration_seconds",
			Help:    "Histogram of language model request durations.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"provider", "model"},
	)
	promptTokens = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "neighborly_llm_prompt_tokens",
			Help:    "Histogram of prompt token counts.",
			Buckets: prometheus.LinearBuckets(100, 100, 10), // 100, 200, ..., 1000
		},
		[]string{"provider", "model"},
	)
	completionTokens = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "neighborly_llm_completion_tokens",
			Help:    "Histogram of completion token counts.",
			Buckets: prometheus.LinearBuckets(100, 100, 10),
		},
		[]string{"provider", "model"},
	)
)

func observeTokens(provider, model string, prompt, completion int) {
	if prompt > 0 {
		promptTokens.WithLabelValues(provider, model).Observe(float64(prompt))
	}
	if completion > 0 {
		completionTokens.WithLabelValues(provider, model).Observe(float64(completion))
	}
}
