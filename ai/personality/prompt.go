package personality

import (
	"fmt"
	"sort"
	"strings"

	"github.com/hrygo/guppshupp/ai/internal/strutil"
	"github.com/hrygo/guppshupp/ai/memory"
)

const (
	historyWindow   = 3
	historyMaxRunes = 100
)

// buildContextPrompt assembles the user prompt for generation: the message
// plus optional context, flattened memory, and recent history. Pure string
// assembly; deterministic for identical inputs.
func buildContextPrompt(req *GenerateRequest) string {
	parts := []string{fmt.Sprintf("User message: %s", req.Message)}

	if req.Context != "" {
		parts = append(parts, fmt.Sprintf("\nAdditional context: %s", req.Context))
	}
	if mem := formatMemoryContext(req.Memory); mem != "" {
		parts = append(parts, fmt.Sprintf("\nUser information: %s", mem))
	}
	if hist := formatConversationContext(req.History); hist != "" {
		parts = append(parts, fmt.Sprintf("\nRecent conversation: %s", hist))
	}

	parts = append(parts, "\nGenerate a response that matches your personality and uses the context above.")
	return strings.Join(parts, "\n")
}

// buildTransformationPrompt frames the task as restyling an existing
// response to the target personality.
func buildTransformationPrompt(req *TransformRequest, target Profile) string {
	parts := []string{
		fmt.Sprintf("Transform this response to match the %s personality:", target.Name),
		fmt.Sprintf("\nOriginal response: %s", req.Original),
		"\nKeep the core meaning but adapt the tone, style, and language to match the target personality.",
	}

	if req.UserMessage != "" {
		parts = append(parts, fmt.Sprintf("\nOriginal user message: %s", req.UserMessage))
	}
	if mem := formatMemoryContext(req.Memory); mem != "" {
		parts = append(parts, fmt.Sprintf("\nUser context: %s", mem))
	}
	if hist := formatConversationContext(req.History); hist != "" {
		parts = append(parts, fmt.Sprintf("\nRecent conversation: %s", hist))
	}

	parts = append(parts,
		fmt.Sprintf("\nPersonality characteristics: %s", formatTone(target.Tone)),
		fmt.Sprintf("\nResponse guidelines: %s", strings.Join(target.Guidelines, "; ")),
		"\nTransform the response now:",
	)
	return strings.Join(parts, "\n")
}

// formatMemoryContext flattens a memory record into readable key:value lines
// for prompt inclusion. Returns "" for nil or empty memory.
func formatMemoryContext(mem *memory.UserMemory) string {
	if mem == nil {
		return ""
	}

	var parts []string

	if len(mem.Preferences) > 0 {
		var prefs []string
		for _, category := range sortedCategories(mem.Preferences) {
			for _, p := range mem.Preferences[category] {
				prefs = append(prefs, fmt.Sprintf("%s: %s", category, p.Value))
			}
		}
		parts = append(parts, fmt.Sprintf("Preferences: %s", strings.Join(prefs, ", ")))
	}

	if len(mem.EmotionalPatterns) > 0 {
		var patterns []string
		for _, p := range mem.EmotionalPatterns {
			patterns = append(patterns, p.Pattern)
		}
		parts = append(parts, fmt.Sprintf("Emotional patterns: %s", strings.Join(patterns, ", ")))
	}

	if len(mem.Facts) > 0 {
		var facts []string
		for _, f := range mem.Facts {
			facts = append(facts, fmt.Sprintf("%s: %s", f.FactType, f.Value))
		}
		parts = append(parts, fmt.Sprintf("Known facts: %s", strings.Join(facts, ", ")))
	}

	return strings.Join(parts, "; ")
}

// formatConversationContext renders the last historyWindow turns truncated
// to historyMaxRunes each.
func formatConversationContext(history []memory.Message) string {
	if len(history) == 0 {
		return ""
	}

	start := 0
	if len(history) > historyWindow {
		start = len(history) - historyWindow
	}

	var formatted []string
	for _, msg := range history[start:] {
		role := msg.Role
		if role == "" {
			role = "unknown"
		}
		formatted = append(formatted, fmt.Sprintf("%s: %s", role, strutil.TruncateRunes(msg.Content, historyMaxRunes)))
	}
	return strings.Join(formatted, " | ")
}

func formatTone(t Tone) string {
	return fmt.Sprintf("formality=%s, empathy=%s, directness=%s, creativity=%s, humor=%s, supportiveness=%s",
		t.Formality, t.Empathy, t.Directness, t.Creativity, t.Humor, t.Supportiveness)
}

// sortedCategories keeps memory flattening deterministic across calls.
func sortedCategories(prefs map[string][]memory.Preference) []string {
	categories := make([]string, 0, len(prefs))
	for c := range prefs {
		categories = append(categories, c)
	}
	sort.Strings(categories)
	return categories
}
