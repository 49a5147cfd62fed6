package memory

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/hrygo/guppshupp/ai/core/llm"
	"github.com/hrygo/guppshupp/ai/internal/strutil"
)

const (
	extractionTemperature = 0.3
	extractionMaxTokens   = 2000
)

// Extractor turns chat transcripts into validated memory records.
type Extractor struct {
	llm llm.Service
}

// NewExtractor creates an Extractor backed by the given gateway.
func NewExtractor(svc llm.Service) *Extractor {
	return &Extractor{llm: svc}
}

// Extract runs one extraction round trip: format the transcript, call the
// model, interpret the reply. Gateway failures and top-level JSON parse
// failures propagate as typed errors; they are not retried here.
//
// The caller-supplied transcript length always wins over the model-reported
// messages_analyzed value in the final record.
func (e *Extractor) Extract(ctx context.Context, userID string, messages []Message) (*UserMemory, error) {
	slog.Info("memory: starting extraction", "user_id", userID, "messages", len(messages))

	transcript := FormatTranscript(messages)
	reply, stats, err := e.llm.Complete(ctx, llm.CompletionRequest{
		System:      extractionSystemPrompt,
		User:        buildExtractionUserPrompt(transcript),
		Temperature: extractionTemperature,
		MaxTokens:   extractionMaxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("extraction call failed: %w", err)
	}

	mem, err := ParseExtraction(reply, userID)
	if err != nil {
		slog.Error("memory: failed to parse extraction reply",
			"user_id", userID,
			"error", err,
			"reply_snippet", strutil.Truncate(reply, 200),
		)
		return nil, err
	}

	mem.MessageCount = len(messages)
	mem.UpdatedAt = time.Now().UTC()

	slog.Info("memory: extraction complete",
		"user_id", userID,
		"preferences", mem.PreferenceCount(),
		"patterns", len(mem.EmotionalPatterns),
		"facts", len(mem.Facts),
		"tokens", statsTokens(stats),
	)
	return mem, nil
}

func statsTokens(stats *llm.CallStats) int {
	if stats == nil {
		return 0
	}
	return stats.TotalTokens
}
