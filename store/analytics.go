package store

// AnalyticsEvent is a fire-and-forget usage event. EventData is JSON.
type AnalyticsEvent struct {
	ID        int64
	UserID    string
	EventType string
	EventData string
	CreatedTs int64
}

type CreateAnalyticsEvent struct {
	UserID    string
	EventType string
	EventData string
}

// UserStats aggregates a user's activity across tables.
type UserStats struct {
	MemoryExtractions         int     `json:"memory_extractions"`
	AvgConfidence             float64 `json:"avg_confidence"`
	TotalMessagesAnalyzed     int     `json:"total_messages_analyzed"`
	TotalConversations        int     `json:"total_conversations"`
	PersonalitiesTried        int     `json:"personalities_tried"`
	PersonalityComparisons    int     `json:"personality_comparisons"`
	UniquePersonalitiesTested int     `json:"unique_personalities_tested"`
}
