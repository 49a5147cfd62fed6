// Package personality generates chat responses styled by a closed set of
// persona profiles, optionally personalized with extracted user memory.
package personality

import (
	"fmt"

	"github.com/hrygo/guppshupp/ai/memory"
)

// Type identifies one of the fixed personality variants.
type Type string

const (
	TypeMentor       Type = "mentor"
	TypeFriend       Type = "friend"
	TypeTherapist    Type = "therapist"
	TypeProfessional Type = "professional"
	TypeCreative     Type = "creative"
	TypeAnalytical   Type = "analytical"
	TypeEnthusiastic Type = "enthusiastic"
)

// AllTypes returns the full catalog in stable order.
func AllTypes() []Type {
	return []Type{
		TypeMentor,
		TypeFriend,
		TypeTherapist,
		TypeProfessional,
		TypeCreative,
		TypeAnalytical,
		TypeEnthusiastic,
	}
}

// ParseType validates a string against the closed personality set.
func ParseType(s string) (Type, error) {
	t := Type(s)
	if _, ok := profiles[t]; !ok {
		return "", fmt.Errorf("unknown personality %q", s)
	}
	return t, nil
}

// Level is a three-step tone descriptor.
type Level string

const (
	LevelLow    Level = "low"
	LevelMedium Level = "medium"
	LevelHigh   Level = "high"
)

// Formality is a three-step register descriptor.
type Formality string

const (
	FormalityCasual     Formality = "casual"
	FormalitySemiFormal Formality = "semi-formal"
	FormalityFormal     Formality = "formal"
)

// Tone describes the fixed tonal characteristics of a profile.
type Tone struct {
	Formality      Formality `json:"formality"`
	Empathy        Level     `json:"empathy"`
	Directness     Level     `json:"directness"`
	Creativity     Level     `json:"creativity"`
	Humor          Level     `json:"humor"`
	Supportiveness Level     `json:"supportiveness"`
}

// Profile is an immutable persona template. Profiles never change after
// process start; there is no per-user mutation.
type Profile struct {
	Name         string   `json:"name"`
	Type         Type     `json:"type"`
	Description  string   `json:"description"`
	Tone         Tone     `json:"characteristics"`
	SystemPrompt string   `json:"-"`
	Guidelines   []string `json:"response_guidelines,omitempty"`
	Vocabulary   []string `json:"vocabulary_preferences,omitempty"`
	Patterns     []string `json:"response_patterns,omitempty"`
}

// GetProfile looks up the profile for a personality type.
func GetProfile(t Type) (Profile, bool) {
	p, ok := profiles[t]
	return p, ok
}

// GenerateRequest asks for a response generated from scratch.
type GenerateRequest struct {
	Message     string
	Personality Type
	Memory      *memory.UserMemory
	History     []memory.Message
	Context     string
}

// GenerateResponse is a generated response with local annotations.
// It is ephemeral; persistence is the caller's concern.
type GenerateResponse struct {
	Response                string            `json:"response"`
	Personality             Type              `json:"personality"`
	PersonalizationElements []string          `json:"personalization_elements"`
	ToneMetrics             map[string]string `json:"tone_metrics"`
	MemoryReferences        []string          `json:"memory_references"`
	Confidence              float64           `json:"generation_confidence"`
}

// TransformRequest asks for an existing response restyled to a target
// personality.
type TransformRequest struct {
	Original    string
	Target      Type
	UserMessage string
	Memory      *memory.UserMemory
	History     []memory.Message
}

// TransformResponse carries the restyled response plus auxiliary narrative
// fields. The narrative fields fall back to fixed placeholders when their
// sub-calls fail.
type TransformResponse struct {
	Original     string            `json:"original_response"`
	Transformed  string            `json:"transformed_response"`
	Personality  Type              `json:"personality_type"`
	Explanation  string            `json:"transformation_explanation"`
	ToneAnalysis map[string]string `json:"tone_analysis"`
	Confidence   float64           `json:"confidence_score"`
}

// Comparison holds one response per requested variant plus static analysis.
type Comparison struct {
	UserMessage     string            `json:"user_message"`
	BaseResponse    string            `json:"base_response"`
	Responses       map[Type]string   `json:"personality_responses"`
	Analysis        map[string]string `json:"comparison_analysis"`
	Recommendations []string          `json:"recommendations"`
}

// GenerationError wraps any gateway or formatting failure during response
// synthesis.
type GenerationError struct {
	Personality Type
	Err         error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("generation failed for personality %q: %v", e.Personality, e.Err)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}
