// Package memory extracts structured user memory from chat transcripts by
// prompting an LLM and validating its JSON reply.
package memory

import "time"

// Intensity is the strength of an emotional pattern.
type Intensity string

const (
	IntensityLow    Intensity = "low"
	IntensityMedium Intensity = "medium"
	IntensityHigh   Intensity = "high"
)

// Valid reports whether the intensity is one of the enumerated levels.
func (i Intensity) Valid() bool {
	return i == IntensityLow || i == IntensityMedium || i == IntensityHigh
}

// Message is a single transcript entry.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Preference is something the user likes, dislikes, or tends to do.
type Preference struct {
	Category   string   `json:"category"`
	Value      string   `json:"value"`
	Confidence float64  `json:"confidence"`
	Context    string   `json:"context,omitempty"`
	Examples   []string `json:"examples,omitempty"`
}

// EmotionalPattern describes how the user expresses emotions.
type EmotionalPattern struct {
	Pattern   string    `json:"pattern"`
	Frequency float64   `json:"frequency"`
	Triggers  []string  `json:"triggers,omitempty"`
	Intensity Intensity `json:"intensity"`
	Context   string    `json:"context,omitempty"`
}

// Fact is a piece of personal or background information.
type Fact struct {
	FactType          string  `json:"fact_type"`
	Value             string  `json:"value"`
	Confidence        float64 `json:"confidence"`
	SourceContext     string  `json:"source_context,omitempty"`
	TemporalRelevance string  `json:"temporal_relevance,omitempty"`
}

// DropCounts tallies model-reply elements discarded during validation,
// keyed by element kind. It travels with the record for observability but
// is never serialized.
type DropCounts struct {
	Preferences int
	Patterns    int
	Facts       int
}

// Total returns the number of discarded elements across kinds.
func (d DropCounts) Total() int {
	return d.Preferences + d.Patterns + d.Facts
}

// UserMemory is the validated extraction result for one user.
// It is persisted as a replace-on-write snapshot; each extraction overwrites
// the prior memory for that user.
type UserMemory struct {
	UserID            string                  `json:"user_id,omitempty"`
	Preferences       map[string][]Preference `json:"preferences"`
	EmotionalPatterns []EmotionalPattern      `json:"emotional_patterns"`
	Facts             []Fact                  `json:"facts"`
	MessageCount      int                     `json:"message_count"`
	UpdatedAt         time.Time               `json:"updated_at"`

	Dropped DropCounts `json:"-"`
}

// NewUserMemory returns an empty but valid memory record.
func NewUserMemory(userID string) *UserMemory {
	return &UserMemory{
		UserID:            userID,
		Preferences:       map[string][]Preference{},
		EmotionalPatterns: []EmotionalPattern{},
		Facts:             []Fact{},
		UpdatedAt:         time.Now().UTC(),
	}
}

// DefaultUserMemory returns the fallback record callers may substitute when
// a whole extraction round trip fails: empty except for a single fixed
// communication-style preference.
func DefaultUserMemory(userID string) *UserMemory {
	m := NewUserMemory(userID)
	m.Preferences["communication_style"] = []Preference{
		{Category: "communication_style", Value: "concise", Confidence: 0.5, Context: "default"},
	}
	return m
}

// OverallConfidence averages every element confidence and pattern frequency.
// Returns 0 for an empty record.
func (m *UserMemory) OverallConfidence() float64 {
	var sum float64
	var n int
	for _, prefs := range m.Preferences {
		for _, p := range prefs {
			sum += p.Confidence
			n++
		}
	}
	for _, p := range m.EmotionalPatterns {
		sum += p.Frequency
		n++
	}
	for _, f := range m.Facts {
		sum += f.Confidence
		n++
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

// PreferenceCount returns the total number of preferences across categories.
func (m *UserMemory) PreferenceCount() int {
	n := 0
	for _, prefs := range m.Preferences {
		n += len(prefs)
	}
	return n
}
