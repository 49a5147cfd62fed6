package metrics

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/hrygo/guppshupp/ai/core/llm"
)

type stubGateway struct {
	reply string
	stats *llm.CallStats
	err   error
}

func (s *stubGateway) Complete(_ context.Context, _ llm.CompletionRequest) (string, *llm.CallStats, error) {
	return s.reply, s.stats, s.err
}

func (s *stubGateway) HealthCheck(_ context.Context) bool { return true }

func scrapeBody(t *testing.T, e *PrometheusExporter) string {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	body, err := io.ReadAll(rec.Body)
	if err != nil {
		t.Fatalf("failed to read metrics body: %v", err)
	}
	return string(body)
}

func TestInstrumentGatewayRecordsUsage(t *testing.T) {
	exporter := NewPrometheusExporter(DefaultConfig())
	stub := &stubGateway{
		reply: "hello",
		stats: &llm.CallStats{PromptTokens: 12, CompletionTokens: 7, TotalTokens: 19, TotalDurationMs: 40, Attempts: 2},
	}
	gw := InstrumentGateway(stub, exporter, "llama-3.1-8b-instant", "groq")

	reply, stats, err := gw.Complete(context.Background(), llm.CompletionRequest{User: "hi"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reply != "hello" || stats.TotalTokens != 19 {
		t.Fatalf("wrapper altered the response: %q %+v", reply, stats)
	}

	body := scrapeBody(t, exporter)
	for _, want := range []string{
		`guppshupp_ai_llm_tokens_total{model="llama-3.1-8b-instant",token_type="prompt"} 12`,
		`guppshupp_ai_llm_tokens_total{model="llama-3.1-8b-instant",token_type="completion"} 7`,
		`guppshupp_ai_llm_retries_total{model="llama-3.1-8b-instant"} 1`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("metrics output missing %q", want)
		}
	}
}

func TestInstrumentGatewayRecordsFailures(t *testing.T) {
	exporter := NewPrometheusExporter(DefaultConfig())
	stub := &stubGateway{err: errors.New("boom")}
	gw := InstrumentGateway(stub, exporter, "m", "p")

	if _, _, err := gw.Complete(context.Background(), llm.CompletionRequest{User: "hi"}); err == nil {
		t.Fatal("expected error to propagate")
	}

	body := scrapeBody(t, exporter)
	if !strings.Contains(body, `guppshupp_ai_llm_latency_seconds_count{model="m",provider="p"} 1`) {
		t.Error("failed call did not record latency")
	}
}

func TestInstrumentGatewayPerRequestModelOverride(t *testing.T) {
	exporter := NewPrometheusExporter(DefaultConfig())
	stub := &stubGateway{reply: "ok", stats: &llm.CallStats{PromptTokens: 1, Attempts: 1}}
	gw := InstrumentGateway(stub, exporter, "default-model", "groq")

	if _, _, err := gw.Complete(context.Background(), llm.CompletionRequest{User: "hi", Model: "other-model"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	body := scrapeBody(t, exporter)
	if !strings.Contains(body, `model="other-model"`) {
		t.Error("per-request model override not used as label")
	}
	if strings.Contains(body, `model="default-model"`) {
		t.Error("default model recorded despite override")
	}
}
