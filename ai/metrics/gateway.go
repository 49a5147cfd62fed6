package metrics

import (
	"context"
	"time"

	"github.com/hrygo/guppshupp/ai/core/llm"
)

type instrumentedGateway struct {
	next     llm.Service
	exporter *PrometheusExporter
	model    string
	provider string
}

// InstrumentGateway wraps a gateway so every completion round trip records
// latency, token usage, and retry counters. model and provider label the
// series; per-request model overrides take precedence.
func InstrumentGateway(next llm.Service, exporter *PrometheusExporter, model, provider string) llm.Service {
	return &instrumentedGateway{
		next:     next,
		exporter: exporter,
		model:    model,
		provider: provider,
	}
}

func (g *instrumentedGateway) Complete(ctx context.Context, req llm.CompletionRequest) (string, *llm.CallStats, error) {
	start := time.Now()
	content, stats, err := g.next.Complete(ctx, req)

	model := req.Model
	if model == "" {
		model = g.model
	}

	if stats != nil {
		g.exporter.RecordLLMCall(model, g.provider,
			time.Duration(stats.TotalDurationMs)*time.Millisecond,
			stats.PromptTokens, stats.CompletionTokens, stats.Attempts)
	} else {
		// Failed calls carry no usage but their latency still counts.
		g.exporter.RecordLLMCall(model, g.provider, time.Since(start), 0, 0, 0)
	}
	return content, stats, err
}

func (g *instrumentedGateway) HealthCheck(ctx context.Context) bool {
	return g.next.HealthCheck(ctx)
}
