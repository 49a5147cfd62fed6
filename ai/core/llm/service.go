package llm

import (
	"context"
	"log/slog"
	"math"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
	"golang.org/x/time/rate"
)

// CompletionRequest carries a single system/user prompt pair with sampling
// parameters. Model overrides the configured default when set.
type CompletionRequest struct {
	System      string
	User        string
	Model       string
	Temperature float32
	MaxTokens   int
}

// CallStats represents statistics for a single LLM call.
type CallStats struct {
	// PromptTokens is the number of tokens in the input prompt.
	PromptTokens int `json:"prompt_tokens"`

	// CompletionTokens is the number of tokens in the generated response.
	CompletionTokens int `json:"completion_tokens"`

	// TotalTokens is the sum of prompt and completion tokens.
	TotalTokens int `json:"total_tokens"`

	// TotalDurationMs is the total wall-clock time for the request,
	// including any automatic retries.
	TotalDurationMs int64 `json:"total_duration_ms"`

	// Attempts is the number of HTTP attempts made (1 when no retry fired).
	Attempts int `json:"attempts"`
}

// Service is the model gateway interface.
type Service interface {
	// Complete performs a single synchronous completion round trip.
	// Rate limiting (429) and 5xx failures are retried with exponential
	// backoff; all other failures surface immediately as *Error.
	Complete(ctx context.Context, req CompletionRequest) (string, *CallStats, error)

	// HealthCheck probes the models-listing endpoint with a short timeout.
	// It reports reachability only; it does not validate the completion path.
	HealthCheck(ctx context.Context) bool
}

// Config represents gateway configuration.
type Config struct {
	Provider          string // groq, openai, deepseek, siliconflow, openrouter, ollama
	Model             string
	APIKey            string
	BaseURL           string
	Timeout           int // Request timeout in seconds (default: 30)
	MaxRetries        int // Attempts for retryable failures (default: 3)
	RequestsPerMinute int // Outbound rate limit (0 disables limiting)
}

type service struct {
	client     *openai.Client
	limiter    *rate.Limiter
	model      string
	provider   string
	timeout    int
	maxRetries int
	backoff    time.Duration
}

// NewService creates a new gateway Service.
func NewService(cfg *Config) (Service, error) {
	httpClient := newHTTPClient()

	baseURL := cfg.BaseURL
	if baseURL == "" {
		switch cfg.Provider {
		case "groq":
			baseURL = "https://api.groq.com/openai/v1"
		case "deepseek":
			baseURL = "https://api.deepseek.com"
		case "siliconflow":
			baseURL = "https://api.siliconflow.cn/v1"
		case "openrouter":
			baseURL = "https://openrouter.ai/api/v1"
		case "ollama":
			baseURL = "http://localhost:11434"
		}
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if baseURL != "" {
		clientConfig.BaseURL = baseURL
	}
	clientConfig.HTTPClient = httpClient

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30
	}
	maxRetries := cfg.MaxRetries
	if maxRetries <= 0 {
		maxRetries = 3
	}

	var limiter *rate.Limiter
	if cfg.RequestsPerMinute > 0 {
		limiter = rate.NewLimiter(rate.Limit(float64(cfg.RequestsPerMinute)/60.0), cfg.RequestsPerMinute)
	}

	return &service{
		client:     openai.NewClientWithConfig(clientConfig),
		limiter:    limiter,
		model:      cfg.Model,
		provider:   cfg.Provider,
		timeout:    timeout,
		maxRetries: maxRetries,
		backoff:    time.Second,
	}, nil
}

func (s *service) Complete(ctx context.Context, req CompletionRequest) (string, *CallStats, error) {
	if s.limiter != nil {
		if err := s.limiter.Wait(ctx); err != nil {
			return "", nil, classify(err)
		}
	}

	model := req.Model
	if model == "" {
		model = s.model
	}

	slog.Debug("llm: completion request",
		"model", model,
		"max_tokens", req.MaxTokens,
		"temperature", req.Temperature,
	)

	chatReq := openai.ChatCompletionRequest{
		Model:       model,
		MaxTokens:   req.MaxTokens,
		Temperature: req.Temperature,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: req.System},
			{Role: openai.ChatMessageRoleUser, Content: req.User},
		},
	}

	startTime := time.Now()
	stats := &CallStats{}

	var content string
	var lastErr *Error
	for attempt := 0; attempt < s.maxRetries; attempt++ {
		stats.Attempts = attempt + 1

		callCtx, cancel := context.WithTimeout(ctx, time.Duration(s.timeout)*time.Second)
		resp, err := s.client.CreateChatCompletion(callCtx, chatReq)
		cancel()

		if err == nil {
			if len(resp.Choices) == 0 {
				slog.Warn("llm: response carried no choices", "model", model)
				return "", nil, &Error{Kind: ErrorKindMalformedResponse}
			}
			content = strings.TrimSpace(resp.Choices[0].Message.Content)
			stats.PromptTokens = resp.Usage.PromptTokens
			stats.CompletionTokens = resp.Usage.CompletionTokens
			stats.TotalTokens = resp.Usage.TotalTokens
			stats.TotalDurationMs = time.Since(startTime).Milliseconds()

			slog.Debug("llm: completion response received",
				"content_length", len(content),
				"total_tokens", stats.TotalTokens,
				"duration_ms", stats.TotalDurationMs,
			)
			return content, stats, nil
		}

		lastErr = classify(err)
		if !lastErr.Retryable() || attempt == s.maxRetries-1 {
			break
		}

		waitTime := time.Duration(math.Pow(2, float64(attempt))) * s.backoff
		slog.Debug("llm: request failed, retrying",
			"attempt", attempt+1,
			"wait_time", waitTime,
			"status", lastErr.Status,
		)
		select {
		case <-time.After(waitTime):
		case <-ctx.Done():
			return "", nil, classify(ctx.Err())
		}
	}

	slog.Error("llm: completion failed", "model", model, "kind", lastErr.Kind.String(), "error", lastErr)
	return "", nil, lastErr
}

func (s *service) HealthCheck(ctx context.Context) bool {
	probeCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if _, err := s.client.ListModels(probeCtx); err != nil {
		slog.Warn("llm: health check failed", "provider", s.provider, "error", err)
		return false
	}
	return true
}

func newHTTPClient() *http.Client {
	return &http.Client{
		Timeout: 60 * time.Second,
		Transport: &http.Transport{
			DialContext: (&net.Dialer{
				Timeout:   30 * time.Second,
				KeepAlive: 30 * time.Second,
			}).DialContext,
			MaxIdleConns:          100,
			IdleConnTimeout:       90 * time.Second,
			TLSHandshakeTimeout:   10 * time.Second,
			ExpectContinueTimeout: 1 * time.Second,
		},
	}
}
