package store

// UserMemorySnapshot is the persisted form of an extracted memory record.
// MemoryData holds the full record as JSON; MessageCount and ConfidenceScore
// are denormalized for stats queries. One row per user; saves replace the
// previous snapshot rather than merging into it.
type UserMemorySnapshot struct {
	ID              int64
	UserID          string
	MemoryData      string
	MessageCount    int
	ConfidenceScore float64
	CreatedTs       int64
	UpdatedTs       int64
}

type UpsertUserMemory struct {
	UserID          string
	MemoryData      string
	MessageCount    int
	ConfidenceScore float64
}

type FindUserMemory struct {
	UserID string
}
