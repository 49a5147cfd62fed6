package personality

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/hrygo/guppshupp/ai/core/llm"
	"github.com/hrygo/guppshupp/ai/memory"
)

const (
	generateMaxTokens = 500

	toneAnalysisSystem    = "You are an expert in communication analysis."
	toneAnalysisMaxTokens = 300

	explanationSystem    = "You are an expert in personality communication."
	explanationMaxTokens = 200

	narrativeTemperature = 0.3

	toneAnalysisPlaceholder = "Tone analysis unavailable"
	explanationPlaceholder  = "Transformation explanation unavailable"
)

// Engine synthesizes persona-styled responses through the model gateway.
type Engine struct {
	llm llm.Service
}

// NewEngine creates an Engine on top of a gateway service.
func NewEngine(svc llm.Service) *Engine {
	return &Engine{llm: svc}
}

// temperatureFor returns the sampling temperature for a variant. The friend
// persona samples warmer than the rest.
func temperatureFor(t Type) float32 {
	if t == TypeFriend {
		return 0.7
	}
	return 0.5
}

// Generate produces a fresh response in the requested personality. Memory
// and history only shape the prompt; annotations are computed locally after
// the call and never require a second round trip.
func (e *Engine) Generate(ctx context.Context, req *GenerateRequest) (*GenerateResponse, error) {
	profile, ok := GetProfile(req.Personality)
	if !ok {
		return nil, &GenerationError{Personality: req.Personality, Err: fmt.Errorf("unknown personality %q", req.Personality)}
	}

	text, _, err := e.llm.Complete(ctx, llm.CompletionRequest{
		System:      profile.SystemPrompt,
		User:        buildContextPrompt(req),
		Temperature: temperatureFor(req.Personality),
		MaxTokens:   generateMaxTokens,
	})
	if err != nil {
		return nil, &GenerationError{Personality: req.Personality, Err: err}
	}

	return &GenerateResponse{
		Response:                text,
		Personality:             req.Personality,
		PersonalizationElements: extractPersonalizationElements(text, req.Memory),
		ToneMetrics:             toneMetrics(),
		MemoryReferences:        extractMemoryReferences(text, req.Memory),
		Confidence:              0.88,
	}, nil
}

// Transform restyles an existing response to the target personality. The
// tone-analysis and explanation sub-calls are best effort: their failures
// degrade to fixed placeholders and never fail the transformation.
func (e *Engine) Transform(ctx context.Context, req *TransformRequest) (*TransformResponse, error) {
	profile, ok := GetProfile(req.Target)
	if !ok {
		return nil, &GenerationError{Personality: req.Target, Err: fmt.Errorf("unknown personality %q", req.Target)}
	}

	transformed, _, err := e.llm.Complete(ctx, llm.CompletionRequest{
		System:      profile.SystemPrompt,
		User:        buildTransformationPrompt(req, profile),
		Temperature: temperatureFor(req.Target),
		MaxTokens:   generateMaxTokens,
	})
	if err != nil {
		return nil, &GenerationError{Personality: req.Target, Err: err}
	}

	return &TransformResponse{
		Original:     req.Original,
		Transformed:  transformed,
		Personality:  req.Target,
		Explanation:  e.explainTransformation(ctx, req.Original, transformed, profile),
		ToneAnalysis: e.analyzeTone(ctx, req.Original, transformed, profile),
		Confidence:   0.85,
	}, nil
}

// Compare generates one response per requested variant concurrently. Any
// variant failure aborts the whole comparison; there are no partial results.
// The base response comes from the caller.
func (e *Engine) Compare(ctx context.Context, userMessage, baseResponse string, variants []Type) (*Comparison, error) {
	if len(variants) == 0 {
		variants = AllTypes()
	}

	responses := make(map[Type]string, len(variants))
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	for _, t := range variants {
		t := t
		g.Go(func() error {
			resp, err := e.Generate(gctx, &GenerateRequest{Message: userMessage, Personality: t})
			if err != nil {
				return err
			}
			mu.Lock()
			responses[t] = resp.Response
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &Comparison{
		UserMessage:     userMessage,
		BaseResponse:    baseResponse,
		Responses:       responses,
		Analysis:        comparisonAnalysis(),
		Recommendations: comparisonRecommendations(),
	}, nil
}

// explainTransformation asks the model to narrate what changed. Failure
// degrades to a fixed placeholder.
func (e *Engine) explainTransformation(ctx context.Context, original, transformed string, target Profile) string {
	user := fmt.Sprintf(`Explain how this response was transformed to match the %s personality:

Original: %s
Transformed: %s

Explain the specific changes made in tone, language, and approach. Be concise and informative.`,
		target.Name, original, transformed)

	text, _, err := e.llm.Complete(ctx, llm.CompletionRequest{
		System:      explanationSystem,
		User:        user,
		Temperature: narrativeTemperature,
		MaxTokens:   explanationMaxTokens,
	})
	if err != nil || text == "" {
		return explanationPlaceholder
	}
	return text
}

// analyzeTone asks the model for a short tonal comparison of the two texts.
// Failure degrades to a placeholder entry.
func (e *Engine) analyzeTone(ctx context.Context, original, transformed string, target Profile) map[string]string {
	user := fmt.Sprintf(`Compare these two responses and analyze the tone changes:

Original: %s
Transformed: %s
Target personality: %s

Analyze changes in:
- Formality
- Empathy level
- Directness
- Creativity
- Humor
- Supportiveness

Provide a brief analysis of what changed and how well it matches the target personality.`,
		original, transformed, target.Name)

	text, _, err := e.llm.Complete(ctx, llm.CompletionRequest{
		System:      toneAnalysisSystem,
		User:        user,
		Temperature: narrativeTemperature,
		MaxTokens:   toneAnalysisMaxTokens,
	})
	if err != nil || text == "" {
		return map[string]string{"analysis": toneAnalysisPlaceholder}
	}
	return map[string]string{"analysis": text}
}

// extractPersonalizationElements reports which stored preferences surfaced
// verbatim in the generated text. Pure substring matching, no model call.
func extractPersonalizationElements(response string, mem *memory.UserMemory) []string {
	elements := []string{}
	if mem == nil {
		return elements
	}

	lower := strings.ToLower(response)
	for _, category := range sortedCategories(mem.Preferences) {
		for _, p := range mem.Preferences[category] {
			if p.Value != "" && strings.Contains(lower, strings.ToLower(p.Value)) {
				elements = append(elements, fmt.Sprintf("Referenced preference: %s", p.Value))
			}
		}
	}
	return elements
}

// extractMemoryReferences reports which stored facts surfaced verbatim in
// the generated text.
func extractMemoryReferences(response string, mem *memory.UserMemory) []string {
	refs := []string{}
	if mem == nil {
		return refs
	}

	lower := strings.ToLower(response)
	for _, f := range mem.Facts {
		if f.Value != "" && strings.Contains(lower, strings.ToLower(f.Value)) {
			refs = append(refs, fmt.Sprintf("Referenced fact: %s", f.Value))
		}
	}
	return refs
}

// toneMetrics returns static quality tags for a generated response. A
// model-scored version would go here if one ever proves worth the extra
// round trip.
func toneMetrics() map[string]string {
	return map[string]string{
		"personality_match": "high",
		"tone_consistency":  "good",
		"clarity":           "high",
		"engagement":        "medium",
	}
}

func comparisonAnalysis() map[string]string {
	return map[string]string{
		"tone_variety":         "high",
		"approach_differences": "significant",
		"length_variations":    "notable",
		"emotional_range":      "wide",
	}
}

func comparisonRecommendations() []string {
	return []string{
		"Use Mentor for guidance and advice",
		"Use Friend for casual conversation",
		"Use Therapist for emotional support",
		"Use Professional for formal assistance",
	}
}
