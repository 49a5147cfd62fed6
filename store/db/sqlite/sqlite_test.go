package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hrygo/guppshupp/internal/profile"
	"github.com/hrygo/guppshupp/store"
)

func newTestDriver(t *testing.T) store.Driver {
	t.Helper()

	driver, err := NewDB(&profile.Profile{
		Mode:   "prod",
		Driver: "sqlite",
		DSN:    filepath.Join(t.TempDir(), "test.db"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = driver.Close() })

	require.NoError(t, driver.Migrate(context.Background()))
	return driver
}

func TestMigrateIdempotent(t *testing.T) {
	ctx := context.Background()
	driver := newTestDriver(t)

	ok, err := driver.IsInitialized(ctx)
	require.NoError(t, err)
	require.True(t, ok)

	require.NoError(t, driver.Migrate(ctx))
}

func TestUserUpsert(t *testing.T) {
	ctx := context.Background()
	driver := newTestDriver(t)

	user, err := driver.UpsertUser(ctx, &store.UpsertUser{ID: "u1"})
	require.NoError(t, err)
	require.Equal(t, "u1", user.ID)
	require.Equal(t, "{}", user.Metadata)
	require.NotZero(t, user.CreatedTs)

	// second upsert keeps the row and refreshes metadata
	updated, err := driver.UpsertUser(ctx, &store.UpsertUser{ID: "u1", Metadata: `{"source":"api"}`})
	require.NoError(t, err)
	require.Equal(t, `{"source":"api"}`, updated.Metadata)
	require.Equal(t, user.CreatedTs, updated.CreatedTs)

	missing, err := driver.GetUser(ctx, &store.FindUser{ID: "nobody"})
	require.NoError(t, err)
	require.Nil(t, missing)
}

func TestUserMemoryReplaceOnWrite(t *testing.T) {
	ctx := context.Background()
	driver := newTestDriver(t)

	first, err := driver.UpsertUserMemory(ctx, &store.UpsertUserMemory{
		UserID:          "u1",
		MemoryData:      `{"facts":[{"value":"engineer"}]}`,
		MessageCount:    4,
		ConfidenceScore: 0.8,
	})
	require.NoError(t, err)
	require.Equal(t, 4, first.MessageCount)

	second, err := driver.UpsertUserMemory(ctx, &store.UpsertUserMemory{
		UserID:          "u1",
		MemoryData:      `{"facts":[]}`,
		MessageCount:    2,
		ConfidenceScore: 0.3,
	})
	require.NoError(t, err)
	require.Equal(t, first.ID, second.ID)

	got, err := driver.GetUserMemory(ctx, &store.FindUserMemory{UserID: "u1"})
	require.NoError(t, err)
	require.Equal(t, `{"facts":[]}`, got.MemoryData)
	require.Equal(t, 2, got.MessageCount)
	require.Equal(t, 0.3, got.ConfidenceScore)

	missing, err := driver.GetUserMemory(ctx, &store.FindUserMemory{UserID: "nobody"})
	require.NoError(t, err)
	require.Nil(t, missing)
}

func TestConversations(t *testing.T) {
	ctx := context.Background()
	driver := newTestDriver(t)

	for _, personality := range []string{"mentor", "friend", "mentor"} {
		_, err := driver.CreateConversation(ctx, &store.CreateConversation{
			UserID:          "u1",
			SessionID:       "s1",
			Messages:        `[{"role":"user","content":"hi"}]`,
			PersonalityType: personality,
		})
		require.NoError(t, err)
	}

	userID := "u1"
	all, err := driver.ListConversations(ctx, &store.FindConversation{UserID: &userID})
	require.NoError(t, err)
	require.Len(t, all, 3)
	// newest first
	require.Equal(t, "mentor", all[0].PersonalityType)

	limit := 2
	limited, err := driver.ListConversations(ctx, &store.FindConversation{UserID: &userID, Limit: &limit})
	require.NoError(t, err)
	require.Len(t, limited, 2)

	other := "u2"
	none, err := driver.ListConversations(ctx, &store.FindConversation{UserID: &other})
	require.NoError(t, err)
	require.Empty(t, none)
}

func TestPersonalityResponses(t *testing.T) {
	ctx := context.Background()
	driver := newTestDriver(t)

	_, err := driver.CreatePersonalityResponse(ctx, &store.CreatePersonalityResponse{
		UserID:              "u1",
		UserMessage:         "how do I learn Go?",
		BaseResponse:        "read the tour",
		PersonalityType:     "mentor",
		PersonalityResponse: "Start with the tour, then build something small.",
	})
	require.NoError(t, err)

	userID := "u1"
	rows, err := driver.ListPersonalityResponses(ctx, &store.FindPersonalityResponse{UserID: &userID})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, "mentor", rows[0].PersonalityType)
	require.Equal(t, "read the tour", rows[0].BaseResponse)
}

func TestUserStats(t *testing.T) {
	ctx := context.Background()
	driver := newTestDriver(t)

	_, err := driver.UpsertUserMemory(ctx, &store.UpsertUserMemory{
		UserID: "u1", MemoryData: "{}", MessageCount: 6, ConfidenceScore: 0.5,
	})
	require.NoError(t, err)

	for _, personality := range []string{"mentor", "friend"} {
		_, err := driver.CreateConversation(ctx, &store.CreateConversation{
			UserID: "u1", Messages: "[]", PersonalityType: personality,
		})
		require.NoError(t, err)

		_, err = driver.CreatePersonalityResponse(ctx, &store.CreatePersonalityResponse{
			UserID: "u1", UserMessage: "hi", BaseResponse: "hello",
			PersonalityType: personality, PersonalityResponse: "hey!",
		})
		require.NoError(t, err)
	}

	stats, err := driver.GetUserStats(ctx, "u1")
	require.NoError(t, err)
	require.Equal(t, 1, stats.MemoryExtractions)
	require.Equal(t, 0.5, stats.AvgConfidence)
	require.Equal(t, 6, stats.TotalMessagesAnalyzed)
	require.Equal(t, 2, stats.TotalConversations)
	require.Equal(t, 2, stats.PersonalitiesTried)
	require.Equal(t, 2, stats.PersonalityComparisons)
	require.Equal(t, 2, stats.UniquePersonalitiesTested)

	empty, err := driver.GetUserStats(ctx, "nobody")
	require.NoError(t, err)
	require.Zero(t, empty.MemoryExtractions)
	require.Zero(t, empty.TotalConversations)
}

func TestDeleteExpiredData(t *testing.T) {
	ctx := context.Background()
	driver := newTestDriver(t)

	_, err := driver.CreateConversation(ctx, &store.CreateConversation{
		UserID: "u1", Messages: "[]", PersonalityType: "mentor",
	})
	require.NoError(t, err)
	_, err = driver.CreateAnalyticsEvent(ctx, &store.CreateAnalyticsEvent{
		UserID: "u1", EventType: "memory_extraction",
	})
	require.NoError(t, err)
	_, err = driver.UpsertUserMemory(ctx, &store.UpsertUserMemory{UserID: "u1", MemoryData: "{}"})
	require.NoError(t, err)

	userID := "u1"

	// cutoff in the past removes nothing
	require.NoError(t, driver.DeleteExpiredData(ctx, 1))
	kept, err := driver.ListConversations(ctx, &store.FindConversation{UserID: &userID})
	require.NoError(t, err)
	require.Len(t, kept, 1)

	// cutoff in the future removes the append-only rows but keeps the snapshot
	require.NoError(t, driver.DeleteExpiredData(ctx, kept[0].CreatedTs+1))
	gone, err := driver.ListConversations(ctx, &store.FindConversation{UserID: &userID})
	require.NoError(t, err)
	require.Empty(t, gone)

	snapshot, err := driver.GetUserMemory(ctx, &store.FindUserMemory{UserID: "u1"})
	require.NoError(t, err)
	require.NotNil(t, snapshot)
}
