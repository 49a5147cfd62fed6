package memory

import (
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
)

// ErrInvalidJSON is returned when the model reply cannot be parsed as a JSON
// object after fence stripping. Callers decide whether to retry the round
// trip or substitute DefaultUserMemory.
var ErrInvalidJSON = errors.New("extraction reply is not valid JSON")

// rawExtraction defers element decoding so a single bad element never
// invalidates the whole record.
type rawExtraction struct {
	Preferences       []json.RawMessage `json:"preferences"`
	EmotionalPatterns []json.RawMessage `json:"emotional_patterns"`
	Facts             []json.RawMessage `json:"facts"`
	MessagesAnalyzed  json.RawMessage   `json:"messages_analyzed"`
}

// StripFences removes leading/trailing triple-backtick fences (with or
// without a "json" tag) and surrounding whitespace from a model reply.
func StripFences(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") {
		return text
	}
	lines := strings.Split(text, "\n")
	cleaned := make([]string, 0, len(lines))
	for _, l := range lines {
		if strings.HasPrefix(strings.TrimSpace(l), "```") {
			continue
		}
		cleaned = append(cleaned, l)
	}
	return strings.TrimSpace(strings.Join(cleaned, "\n"))
}

// ParseExtraction interprets a raw model reply as a memory record.
// Top-level parse failure returns ErrInvalidJSON. Individual elements that
// violate their field constraints are dropped with a warning; the rest of
// the record is still returned (partial-success policy).
//
// The model-reported messages_analyzed value is normalized (int used as-is,
// list converted to its length, anything else 0) but is informational only:
// callers overwrite MessageCount with the actual transcript length.
func ParseExtraction(reply string, userID string) (*UserMemory, error) {
	cleaned := StripFences(reply)

	// Only a JSON object is an extraction record; null, arrays, and bare
	// scalars parse but carry nothing, so they count as failures.
	var raw rawExtraction
	trimmed := strings.TrimSpace(cleaned)
	if !strings.HasPrefix(trimmed, "{") || json.Unmarshal([]byte(trimmed), &raw) != nil {
		// The reply may bury the object in surrounding prose.
		start := strings.Index(cleaned, "{")
		end := strings.LastIndex(cleaned, "}")
		if start < 0 || end <= start {
			return nil, ErrInvalidJSON
		}
		if err := json.Unmarshal([]byte(cleaned[start:end+1]), &raw); err != nil {
			return nil, ErrInvalidJSON
		}
	}

	mem := NewUserMemory(userID)

	for _, data := range raw.Preferences {
		var pref Preference
		if err := json.Unmarshal(data, &pref); err != nil {
			slog.Warn("memory: dropping unparseable preference", "error", err)
			mem.Dropped.Preferences++
			continue
		}
		if err := validatePreference(&pref); err != nil {
			slog.Warn("memory: dropping invalid preference", "value", pref.Value, "error", err)
			mem.Dropped.Preferences++
			continue
		}
		mem.Preferences[pref.Category] = append(mem.Preferences[pref.Category], pref)
	}

	for _, data := range raw.EmotionalPatterns {
		var pattern EmotionalPattern
		if err := json.Unmarshal(data, &pattern); err != nil {
			slog.Warn("memory: dropping unparseable emotional pattern", "error", err)
			mem.Dropped.Patterns++
			continue
		}
		if err := validatePattern(&pattern); err != nil {
			slog.Warn("memory: dropping invalid emotional pattern", "pattern", pattern.Pattern, "error", err)
			mem.Dropped.Patterns++
			continue
		}
		mem.EmotionalPatterns = append(mem.EmotionalPatterns, pattern)
	}

	for _, data := range raw.Facts {
		var fact Fact
		if err := json.Unmarshal(data, &fact); err != nil {
			slog.Warn("memory: dropping unparseable fact", "error", err)
			mem.Dropped.Facts++
			continue
		}
		if err := validateFact(&fact); err != nil {
			slog.Warn("memory: dropping invalid fact", "value", fact.Value, "error", err)
			mem.Dropped.Facts++
			continue
		}
		mem.Facts = append(mem.Facts, fact)
	}

	mem.MessageCount = normalizeMessageCount(raw.MessagesAnalyzed)

	return mem, nil
}

// normalizeMessageCount accepts an integer or a list from the model;
// anything else counts as 0.
func normalizeMessageCount(raw json.RawMessage) int {
	if len(raw) == 0 {
		return 0
	}
	var n int
	if err := json.Unmarshal(raw, &n); err == nil {
		return n
	}
	var list []json.RawMessage
	if err := json.Unmarshal(raw, &list); err == nil {
		return len(list)
	}
	return 0
}

func validatePreference(p *Preference) error {
	if p.Category == "" || p.Value == "" {
		return errors.New("category and value are required")
	}
	if p.Confidence < 0 || p.Confidence > 1 {
		return errors.New("confidence out of range [0,1]")
	}
	return nil
}

func validatePattern(p *EmotionalPattern) error {
	if p.Pattern == "" {
		return errors.New("pattern is required")
	}
	if p.Frequency < 0 || p.Frequency > 1 {
		return errors.New("frequency out of range [0,1]")
	}
	if !p.Intensity.Valid() {
		return errors.New("intensity must be low, medium, or high")
	}
	return nil
}

func validateFact(f *Fact) error {
	if f.Value == "" {
		return errors.New("value is required")
	}
	if f.Confidence < 0 || f.Confidence > 1 {
		return errors.New("confidence out of range [0,1]")
	}
	return nil
}
