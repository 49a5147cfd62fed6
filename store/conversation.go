package store

// Conversation is one stored exchange. Messages holds the turn list as JSON.
type Conversation struct {
	ID              int64
	UserID          string
	SessionID       string
	Messages        string
	PersonalityType string
	CreatedTs       int64
}

type CreateConversation struct {
	UserID          string
	SessionID       string
	Messages        string
	PersonalityType string
}

type FindConversation struct {
	UserID *string
	Limit  *int
}
