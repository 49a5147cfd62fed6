package memory

import (
	"fmt"
	"strings"
)

// extractionSystemPrompt instructs the model to answer with the three-part
// JSON schema the parser expects. Confidence banding guidance keeps the
// model from omitting uncertain items.
const extractionSystemPrompt = `You are an expert AI psychologist and data analyst specializing in extracting structured user memory from chat conversations.

Your task is to analyze the provided chat messages and extract three types of information:

1. USER PREFERENCES: What the user likes, dislikes, prefers, or tends to do
2. EMOTIONAL PATTERNS: How the user expresses emotions, common emotional states, triggers
3. FACTS: Personal information, background details, important events, or contextual information

For each extraction, provide:
- High confidence (0.8-1.0): Directly stated or clearly implied
- Medium confidence (0.5-0.8): Reasonably inferred but not explicit
- Low confidence (0.3-0.5): Possible but uncertain

Return your analysis in this exact JSON format:

{
    "preferences": [
        {
            "category": "communication|content|behavior|emotional|social|professional|lifestyle|technical",
            "value": "specific preference description",
            "confidence": 0.85,
            "context": "brief context from messages",
            "examples": ["relevant quote 1", "relevant quote 2"]
        }
    ],
    "emotional_patterns": [
        {
            "pattern": "description of emotional pattern",
            "frequency": 0.7,
            "triggers": ["trigger1", "trigger2"],
            "intensity": "low|medium|high",
            "context": "when this pattern appears"
        }
    ],
    "facts": [
        {
            "fact_type": "personal|background|event|relationship|work|health",
            "value": "factual information",
            "confidence": 0.9,
            "source_context": "where this was mentioned",
            "temporal_relevance": "current|past|ongoing"
        }
    ]
}

Guidelines:
- Be specific and precise in your extractions
- Include confidence scores for all items
- Provide context and examples when possible
- Focus on information that would be valuable for personalized interactions
- Avoid making assumptions beyond what's supported by the messages
- If uncertain, use lower confidence scores rather than omitting information`

// FormatTranscript renders messages as "[i] ROLE: content" lines, one per
// message, 1-based, in original order. Entries with empty content are
// skipped but still consume an index.
func FormatTranscript(messages []Message) string {
	var lines []string
	for i, msg := range messages {
		role := msg.Role
		if role == "" {
			role = "unknown"
		}
		content := strings.TrimSpace(msg.Content)
		if content == "" {
			continue
		}
		lines = append(lines, fmt.Sprintf("[%d] %s: %s", i+1, strings.ToUpper(role), content))
	}
	return strings.Join(lines, "\n")
}

func buildExtractionUserPrompt(transcript string) string {
	return fmt.Sprintf(`Analyze these chat messages and extract user memory information:

%s

Focus on identifying patterns, preferences, and facts that would be useful for creating personalized AI responses. Provide your analysis in the specified JSON format.`, transcript)
}
