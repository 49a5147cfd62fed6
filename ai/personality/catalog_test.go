package personality

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCatalogComplete(t *testing.T) {
	require.Len(t, AllTypes(), 7)

	for _, typ := range AllTypes() {
		t.Run(string(typ), func(t *testing.T) {
			p, ok := GetProfile(typ)
			require.True(t, ok)
			require.Equal(t, typ, p.Type)
			require.NotEmpty(t, p.Name)
			require.NotEmpty(t, p.Description)
			require.NotEmpty(t, p.SystemPrompt)
			require.NotEmpty(t, p.Guidelines)
			require.NotEmpty(t, p.Tone.Formality)
		})
	}
}

func TestParseType(t *testing.T) {
	for _, typ := range AllTypes() {
		got, err := ParseType(string(typ))
		require.NoError(t, err)
		require.Equal(t, typ, got)
	}

	_, err := ParseType("pirate")
	require.Error(t, err)

	_, err = ParseType("")
	require.Error(t, err)

	// lookups are case sensitive
	_, err = ParseType("Mentor")
	require.Error(t, err)
}

func TestSystemPromptsDiffer(t *testing.T) {
	seen := make(map[string]Type)
	for _, typ := range AllTypes() {
		p, _ := GetProfile(typ)
		prev, dup := seen[p.SystemPrompt]
		require.False(t, dup, "%s and %s share a system prompt", prev, typ)
		seen[p.SystemPrompt] = typ
	}
}
