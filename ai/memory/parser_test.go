package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestParseExtraction_FencedEmptyRecord verifies a fenced empty reply yields
// an empty-but-valid memory record.
func TestParseExtraction_FencedEmptyRecord(t *testing.T) {
	reply := "```json\n{\"preferences\": [], \"emotional_patterns\": [], \"facts\": []}\n```"

	mem, err := ParseExtraction(reply, "u1")

	require.NoError(t, err)
	assert.Empty(t, mem.Preferences)
	assert.Empty(t, mem.EmotionalPatterns)
	assert.Empty(t, mem.Facts)
	assert.Equal(t, "u1", mem.UserID)
}

// TestParseExtraction_NotJSON verifies an unparseable reply fails with
// ErrInvalidJSON.
func TestParseExtraction_NotJSON(t *testing.T) {
	_, err := ParseExtraction("not json", "u1")
	require.ErrorIs(t, err, ErrInvalidJSON)
}

// TestParseExtraction_NonObjectReply verifies well-formed JSON that is not
// an object is rejected instead of yielding an empty record.
func TestParseExtraction_NonObjectReply(t *testing.T) {
	testCases := []struct {
		name  string
		reply string
	}{
		{"null", "null"},
		{"array", `[1, 2, 3]`},
		{"string", `"no memory found"`},
		{"number", "42"},
		{"fenced null", "```json\nnull\n```"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseExtraction(tc.reply, "u1")
			require.ErrorIs(t, err, ErrInvalidJSON)
		})
	}
}

// TestParseExtraction_JSONBuriedInProse verifies the object is recovered
// when the model wraps it in explanation text.
func TestParseExtraction_JSONBuriedInProse(t *testing.T) {
	reply := `Here is my analysis:
{"preferences": [{"category": "content", "value": "sci-fi novels", "confidence": 0.9}], "emotional_patterns": [], "facts": []}
Hope that helps!`

	mem, err := ParseExtraction(reply, "u1")

	require.NoError(t, err)
	require.Len(t, mem.Preferences["content"], 1)
	assert.Equal(t, "sci-fi novels", mem.Preferences["content"][0].Value)
}

// TestParseExtraction_ElementValidation verifies bad elements are dropped
// individually while the record survives.
func TestParseExtraction_ElementValidation(t *testing.T) {
	reply := `{
		"preferences": [
			{"category": "content", "value": "jazz", "confidence": 0.8},
			{"category": "content", "value": "overconfident", "confidence": 1.5},
			{"category": "", "value": "missing category", "confidence": 0.5}
		],
		"emotional_patterns": [
			{"pattern": "anxious before deadlines", "frequency": 0.6, "intensity": "medium"},
			{"pattern": "bad intensity", "frequency": 0.5, "intensity": "extreme"},
			{"pattern": "bad frequency", "frequency": -0.2, "intensity": "low"}
		],
		"facts": [
			{"fact_type": "work", "value": "software engineer", "confidence": 0.9},
			{"fact_type": "work", "value": "out of range", "confidence": 2.0}
		]
	}`

	mem, err := ParseExtraction(reply, "u1")

	require.NoError(t, err)
	require.Len(t, mem.Preferences["content"], 1)
	assert.Equal(t, "jazz", mem.Preferences["content"][0].Value)
	require.Len(t, mem.EmotionalPatterns, 1)
	assert.Equal(t, "anxious before deadlines", mem.EmotionalPatterns[0].Pattern)
	require.Len(t, mem.Facts, 1)
	assert.Equal(t, "software engineer", mem.Facts[0].Value)

	assert.Equal(t, 2, mem.Dropped.Preferences)
	assert.Equal(t, 2, mem.Dropped.Patterns)
	assert.Equal(t, 1, mem.Dropped.Facts)
	assert.Equal(t, 5, mem.Dropped.Total())
}

// TestParseExtraction_MessageCountShapes verifies int, list, and junk shapes
// of messages_analyzed.
func TestParseExtraction_MessageCountShapes(t *testing.T) {
	testCases := []struct {
		name  string
		field string
		want  int
	}{
		{"integer", `"messages_analyzed": 4`, 4},
		{"list", `"messages_analyzed": ["a", "b", "c"]`, 3},
		{"string junk", `"messages_analyzed": "four"`, 0},
		{"absent", `"preferences": []`, 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			mem, err := ParseExtraction(`{`+tc.field+`}`, "u1")
			require.NoError(t, err)
			assert.Equal(t, tc.want, mem.MessageCount)
		})
	}
}

// TestStripFences covers fenced, tagged, and plain replies.
func TestStripFences(t *testing.T) {
	testCases := []struct {
		name  string
		input string
		want  string
	}{
		{"json tag", "```json\n{}\n```", "{}"},
		{"bare fence", "```\n{}\n```", "{}"},
		{"no fence", "  {}  ", "{}"},
		{"fence only at start", "```json\n{\"a\": 1}", `{"a": 1}`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, StripFences(tc.input))
		})
	}
}

// TestOverallConfidence verifies averaging across all three element kinds.
func TestOverallConfidence(t *testing.T) {
	mem := NewUserMemory("u1")
	assert.Zero(t, mem.OverallConfidence())

	mem.Preferences["content"] = []Preference{{Category: "content", Value: "a", Confidence: 0.8}}
	mem.EmotionalPatterns = []EmotionalPattern{{Pattern: "b", Frequency: 0.6, Intensity: IntensityLow}}
	mem.Facts = []Fact{{FactType: "work", Value: "c", Confidence: 1.0}}

	assert.InDelta(t, 0.8, mem.OverallConfidence(), 1e-9)
}

// TestDefaultUserMemory verifies the fixed fallback preference.
func TestDefaultUserMemory(t *testing.T) {
	mem := DefaultUserMemory("u1")
	require.Len(t, mem.Preferences["communication_style"], 1)
	assert.Equal(t, "concise", mem.Preferences["communication_style"][0].Value)
}
