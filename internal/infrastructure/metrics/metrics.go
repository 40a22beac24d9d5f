package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Chat-API Metrics
var (
	// Request counters
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "chatai",
			Subsystem: "chat_api",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	// Request duration histogram
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "chatai",
			Subsystem: "chat_api",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60},
		},
		[]string{"method", "endpoint", "status"},
	)

	// Pipeline runs
	PipelineRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "chatai",
			Subsystem: "chat_api",
			Name:      "pipeline_runs_total",
			Help:      "Total chat pipeline executions",
		},
		[]string{"status"},
	)

	PipelineDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "chatai",
			Subsystem: "chat_api",
			Name:      "pipeline_duration_seconds",
			Help:      "Chat pipeline duration in seconds",
			Buckets:   []float64{0.5, 1, 2, 5, 10, 30, 60, 120},
		},
		[]string{"status"},
	)

	// Tool calls
	ToolCallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "chatai",
			Subsystem: "chat_api",
			Name:      "tool_calls_total",
			Help:      "Total tool calls requested by the model",
		},
		[]string{"tool", "status"},
	)

	ToolCallDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "chatai",
			Subsystem: "chat_api",
			Name:      "tool_call_duration_seconds",
			Help:      "Tool call duration in seconds",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
		},
		[]string{"tool"},
	)

	// Token counters
	TokensInputTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "chatai",
			Subsystem: "chat_api",
			Name:      "tokens_input_total",
			Help:      "Total input tokens consumed",
		},
		[]string{"model"},
	)

	TokensOutputTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "chatai",
			Subsystem: "chat_api",
			Name:      "tokens_output_total",
			Help:      "Total output tokens generated",
		},
		[]string{"model"},
	)

	TokensCachedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "chatai",
			Subsystem: "chat_api",
			Name:      "tokens_cached_total",
			Help:      "Total cached input tokens consumed",
		},
		[]string{"model"},
	)

	// Conversations
	ConversationsCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "chatai",
			Subsystem: "chat_api",
			Name:      "conversations_created_total",
			Help:      "Total conversations created",
		},
	)

	// Context cache
	ContextCacheEntries = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "chatai",
			Subsystem: "chat_api",
			Name:      "context_cache_entries",
			Help:      "Current number of cached conversation contexts",
		},
	)

	ContextCachePurgedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "chatai",
			Subsystem: "chat_api",
			Name:      "context_cache_purged_total",
			Help:      "Total expired context cache entries purged",
		},
	)

	// Book store client
	BookStoreRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "chatai",
			Subsystem: "chat_api",
			Name:      "bookstore_requests_total",
			Help:      "Total book store API requests",
		},
		[]string{"operation", "status"},
	)
)

// RecordRequest records an HTTP request with its duration
func RecordRequest(method, endpoint, status string, duration time.Duration) {
	RequestsTotal.WithLabelValues(method, endpoint, status).Inc()
	RequestDuration.WithLabelValues(method, endpoint, status).Observe(duration.Seconds())
}

// ObservePipelineRun records one chat pipeline execution
func ObservePipelineRun(status string, duration time.Duration) {
	PipelineRunsTotal.WithLabelValues(status).Inc()
	PipelineDuration.WithLabelValues(status).Observe(duration.Seconds())
}

// RecordToolCall records a tool call outcome and its duration
func RecordToolCall(tool, status string, duration time.Duration) {
	ToolCallsTotal.WithLabelValues(tool, status).Inc()
	ToolCallDuration.WithLabelValues(tool).Observe(duration.Seconds())
}

// AddTokenUsage records the token usage of one answered turn
func AddTokenUsage(model string, inputTokens, outputTokens, cachedTokens int) {
	if model == "" {
		model = "unknown"
	}
	TokensInputTotal.WithLabelValues(model).Add(float64(inputTokens))
	TokensOutputTotal.WithLabelValues(model).Add(float64(outputTokens))
	TokensCachedTotal.WithLabelValues(model).Add(float64(cachedTokens))
}

// IncConversationsCreated increments the created-conversations counter
func IncConversationsCreated() {
	ConversationsCreatedTotal.Inc()
}

// RecordCacheSweep records the outcome of one cache purge sweep
func RecordCacheSweep(purged, remaining int) {
	ContextCachePurgedTotal.Add(float64(purged))
	ContextCacheEntries.Set(float64(remaining))
}

// RecordBookStoreRequest records one book store API call
func RecordBookStoreRequest(operation, status string) {
	BookStoreRequestsTotal.WithLabelValues(operation, status).Inc()
}
