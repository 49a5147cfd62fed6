package store

import (
	"context"
	"sync"

	"github.com/hrygo/guppshupp/internal/profile"
)

// Store provides database access to all raw objects. Memory writes for the
// same user are serialized with a keyed mutex so a slow extraction cannot
// interleave with a concurrent save and clobber a newer snapshot.
type Store struct {
	profile *profile.Profile
	driver  Driver

	userLocks sync.Map // user id -> *sync.Mutex
}

// New creates a new instance of Store.
func New(driver Driver, profile *profile.Profile) *Store {
	return &Store{
		driver:  driver,
		profile: profile,
	}
}

func (s *Store) GetDriver() Driver {
	return s.driver
}

func (s *Store) Close() error {
	return s.driver.Close()
}

func (s *Store) Migrate(ctx context.Context) error {
	return s.driver.Migrate(ctx)
}

func (s *Store) userLock(userID string) *sync.Mutex {
	mu, _ := s.userLocks.LoadOrStore(userID, &sync.Mutex{})
	return mu.(*sync.Mutex)
}

func (s *Store) UpsertUser(ctx context.Context, upsert *UpsertUser) (*User, error) {
	return s.driver.UpsertUser(ctx, upsert)
}

func (s *Store) GetUser(ctx context.Context, find *FindUser) (*User, error) {
	return s.driver.GetUser(ctx, find)
}

// UpsertUserMemory replaces the user's memory snapshot. Last write wins
// across concurrent requests for the same user.
func (s *Store) UpsertUserMemory(ctx context.Context, upsert *UpsertUserMemory) (*UserMemorySnapshot, error) {
	mu := s.userLock(upsert.UserID)
	mu.Lock()
	defer mu.Unlock()
	return s.driver.UpsertUserMemory(ctx, upsert)
}

func (s *Store) GetUserMemory(ctx context.Context, find *FindUserMemory) (*UserMemorySnapshot, error) {
	return s.driver.GetUserMemory(ctx, find)
}

func (s *Store) CreateConversation(ctx context.Context, create *CreateConversation) (*Conversation, error) {
	return s.driver.CreateConversation(ctx, create)
}

func (s *Store) ListConversations(ctx context.Context, find *FindConversation) ([]*Conversation, error) {
	return s.driver.ListConversations(ctx, find)
}

func (s *Store) CreatePersonalityResponse(ctx context.Context, create *CreatePersonalityResponse) (*PersonalityResponse, error) {
	return s.driver.CreatePersonalityResponse(ctx, create)
}

func (s *Store) ListPersonalityResponses(ctx context.Context, find *FindPersonalityResponse) ([]*PersonalityResponse, error) {
	return s.driver.ListPersonalityResponses(ctx, find)
}

func (s *Store) CreateAnalyticsEvent(ctx context.Context, create *CreateAnalyticsEvent) (*AnalyticsEvent, error) {
	return s.driver.CreateAnalyticsEvent(ctx, create)
}

func (s *Store) GetUserStats(ctx context.Context, userID string) (*UserStats, error) {
	return s.driver.GetUserStats(ctx, userID)
}

func (s *Store) DeleteExpiredData(ctx context.Context, cutoffTs int64) error {
	return s.driver.DeleteExpiredData(ctx, cutoffTs)
}
