package store

import (
	"context"
	"database/sql"
)

// Driver is an interface for store driver.
// It contains all methods that store database driver should implement.
type Driver interface {
	GetDB() *sql.DB
	Close() error

	IsInitialized(ctx context.Context) (bool, error)
	Migrate(ctx context.Context) error

	// User model related methods.
	UpsertUser(ctx context.Context, upsert *UpsertUser) (*User, error)
	GetUser(ctx context.Context, find *FindUser) (*User, error)

	// UserMemory model related methods.
	UpsertUserMemory(ctx context.Context, upsert *UpsertUserMemory) (*UserMemorySnapshot, error)
	GetUserMemory(ctx context.Context, find *FindUserMemory) (*UserMemorySnapshot, error)

	// Conversation model related methods.
	CreateConversation(ctx context.Context, create *CreateConversation) (*Conversation, error)
	ListConversations(ctx context.Context, find *FindConversation) ([]*Conversation, error)

	// PersonalityResponse model related methods.
	CreatePersonalityResponse(ctx context.Context, create *CreatePersonalityResponse) (*PersonalityResponse, error)
	ListPersonalityResponses(ctx context.Context, find *FindPersonalityResponse) ([]*PersonalityResponse, error)

	// Analytics model related methods.
	CreateAnalyticsEvent(ctx context.Context, create *CreateAnalyticsEvent) (*AnalyticsEvent, error)

	// GetUserStats aggregates activity counters for one user.
	GetUserStats(ctx context.Context, userID string) (*UserStats, error)

	// DeleteExpiredData removes conversations, personality responses and
	// analytics rows created before cutoffTs.
	DeleteExpiredData(ctx context.Context, cutoffTs int64) error
}
