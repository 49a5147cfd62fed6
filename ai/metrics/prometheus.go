// Package metrics provides Prometheus metrics export for the AI modules.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// PrometheusExporter exports service metrics in Prometheus format.
type PrometheusExporter struct {
	registry *prometheus.Registry

	// HTTP metrics
	httpRequests *prometheus.CounterVec
	httpLatency  *prometheus.HistogramVec

	// LLM gateway metrics
	llmLatency    *prometheus.HistogramVec
	llmTokensUsed *prometheus.CounterVec
	llmRetries    *prometheus.CounterVec

	// Memory extraction metrics
	extractions       *prometheus.CounterVec
	extractionDropped *prometheus.CounterVec

	// Personality metrics
	generations *prometheus.CounterVec
	comparisons prometheus.Counter
}

// Config configures the Prometheus exporter.
type Config struct {
	// Registry to use (if nil, creates a new one)
	Registry *prometheus.Registry

	// Buckets for latency histograms (in seconds)
	LatencyBuckets []float64
}

// DefaultConfig returns default Prometheus configuration.
func DefaultConfig() Config {
	return Config{
		LatencyBuckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 2, 5, 10, 30, 60},
	}
}

// NewPrometheusExporter creates a new Prometheus metrics exporter.
func NewPrometheusExporter(cfg Config) *PrometheusExporter {
	if len(cfg.LatencyBuckets) == 0 {
		cfg.LatencyBuckets = DefaultConfig().LatencyBuckets
	}

	registry := cfg.Registry
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	e := &PrometheusExporter{registry: registry}

	e.httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "guppshupp",
			Subsystem: "ai",
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"path", "method", "status"},
	)

	e.httpLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "guppshupp",
			Subsystem: "ai",
			Name:      "http_latency_seconds",
			Help:      "HTTP request latency in seconds",
			Buckets:   cfg.LatencyBuckets,
		},
		[]string{"path", "method"},
	)

	e.llmLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "guppshupp",
			Subsystem: "ai",
			Name:      "llm_latency_seconds",
			Help:      "LLM request latency in seconds",
			Buckets:   cfg.LatencyBuckets,
		},
		[]string{"model", "provider"},
	)

	e.llmTokensUsed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "guppshupp",
			Subsystem: "ai",
			Name:      "llm_tokens_total",
			Help:      "Total LLM tokens consumed",
		},
		[]string{"model", "token_type"},
	)

	e.llmRetries = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "guppshupp",
			Subsystem: "ai",
			Name:      "llm_retries_total",
			Help:      "Total LLM attempts beyond the first",
		},
		[]string{"model"},
	)

	e.extractions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "guppshupp",
			Subsystem: "ai",
			Name:      "memory_extractions_total",
			Help:      "Total memory extraction runs",
		},
		[]string{"status"},
	)

	e.extractionDropped = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "guppshupp",
			Subsystem: "ai",
			Name:      "memory_elements_dropped_total",
			Help:      "Extraction elements dropped by validation",
		},
		[]string{"kind"},
	)

	e.generations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "guppshupp",
			Subsystem: "ai",
			Name:      "personality_generations_total",
			Help:      "Total personality response generations",
		},
		[]string{"personality", "status"},
	)

	e.comparisons = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "guppshupp",
			Subsystem: "ai",
			Name:      "personality_comparisons_total",
			Help:      "Total personality comparison runs",
		},
	)

	registry.MustRegister(
		e.httpRequests,
		e.httpLatency,
		e.llmLatency,
		e.llmTokensUsed,
		e.llmRetries,
		e.extractions,
		e.extractionDropped,
		e.generations,
		e.comparisons,
	)

	return e
}

// RecordHTTPRequest records a completed HTTP request.
func (e *PrometheusExporter) RecordHTTPRequest(path, method string, status int, latency time.Duration) {
	e.httpRequests.WithLabelValues(path, method, strconv.Itoa(status)).Inc()
	e.httpLatency.WithLabelValues(path, method).Observe(latency.Seconds())
}

// RecordLLMCall records the latency, token usage and retry count of one
// gateway round trip.
func (e *PrometheusExporter) RecordLLMCall(model, provider string, latency time.Duration, promptTokens, completionTokens, attempts int) {
	e.llmLatency.WithLabelValues(model, provider).Observe(latency.Seconds())
	e.llmTokensUsed.WithLabelValues(model, "prompt").Add(float64(promptTokens))
	e.llmTokensUsed.WithLabelValues(model, "completion").Add(float64(completionTokens))
	if attempts > 1 {
		e.llmRetries.WithLabelValues(model).Add(float64(attempts - 1))
	}
}

// RecordExtraction records an extraction run outcome.
func (e *PrometheusExporter) RecordExtraction(success bool) {
	status := "success"
	if !success {
		status = "error"
	}
	e.extractions.WithLabelValues(status).Inc()
}

// RecordExtractionDropped records elements discarded by validation.
// kind is one of preference, emotional_pattern, fact.
func (e *PrometheusExporter) RecordExtractionDropped(kind string, count int) {
	if count > 0 {
		e.extractionDropped.WithLabelValues(kind).Add(float64(count))
	}
}

// RecordGeneration records a personality generation outcome.
func (e *PrometheusExporter) RecordGeneration(personality string, success bool) {
	status := "success"
	if !success {
		status = "error"
	}
	e.generations.WithLabelValues(personality, status).Inc()
}

// RecordComparison records a comparison run.
func (e *PrometheusExporter) RecordComparison() {
	e.comparisons.Inc()
}

// GetHandler returns the HTTP handler for Prometheus metrics.
func (e *PrometheusExporter) GetHandler() http.Handler {
	return promhttp.HandlerFor(e.registry, promhttp.HandlerOpts{})
}

// ServeHTTP implements http.Handler for the metrics endpoint.
func (e *PrometheusExporter) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	e.GetHandler().ServeHTTP(w, r)
}

// GetRegistry returns the Prometheus registry.
func (e *PrometheusExporter) GetRegistry() *prometheus.Registry {
	return e.registry
}
