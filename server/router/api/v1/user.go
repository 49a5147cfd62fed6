package v1

import (
	"encoding/json"
	"net/http"
	"strconv"

	"log/slog"

	"github.com/labstack/echo/v4"

	"github.com/hrygo/guppshupp/ai/memory"
	"github.com/hrygo/guppshupp/store"
)

const defaultHistoryLimit = 10

// GetUserMemory returns the stored memory snapshot for a user.
// GET /api/user/:id/memory
func (s *APIV1Service) GetUserMemory(c echo.Context) error {
	userID := c.Param("id")

	snapshot, err := s.Store.GetUserMemory(c.Request().Context(), &store.FindUserMemory{UserID: userID})
	if err != nil {
		slog.Error("failed to get user memory", "user_id", userID, "error", err)
		return errorJSON(c, http.StatusInternalServerError, "failed to retrieve memory")
	}
	if snapshot == nil {
		return errorJSON(c, http.StatusNotFound, "user memory not found")
	}

	var mem memory.UserMemory
	if err := json.Unmarshal([]byte(snapshot.MemoryData), &mem); err != nil {
		slog.Error("stored memory is not valid JSON", "user_id", userID, "error", err)
		return errorJSON(c, http.StatusInternalServerError, "failed to decode memory")
	}
	mem.MessageCount = snapshot.MessageCount

	return c.JSON(http.StatusOK, map[string]any{
		"success": true,
		"memory":  &mem,
	})
}

// GetUserStats returns aggregate activity counters for a user.
// GET /api/user/:id/stats
func (s *APIV1Service) GetUserStats(c echo.Context) error {
	userID := c.Param("id")

	stats, err := s.Store.GetUserStats(c.Request().Context(), userID)
	if err != nil {
		slog.Error("failed to get user stats", "user_id", userID, "error", err)
		return errorJSON(c, http.StatusInternalServerError, "failed to retrieve stats")
	}

	return c.JSON(http.StatusOK, map[string]any{
		"success": true,
		"stats":   stats,
	})
}

// HistoryEntry is one stored conversation in API form.
type HistoryEntry struct {
	SessionID       string           `json:"session_id"`
	Messages        []memory.Message `json:"messages"`
	PersonalityType string           `json:"personality_type"`
	CreatedTs       int64            `json:"created_at"`
}

// GetUserHistory returns recent conversations for a user, newest first.
// GET /api/user/:id/history?limit=10
func (s *APIV1Service) GetUserHistory(c echo.Context) error {
	userID := c.Param("id")

	limit := defaultHistoryLimit
	if raw := c.QueryParam("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			return errorJSON(c, http.StatusBadRequest, "invalid limit")
		}
		limit = parsed
	}

	conversations, err := s.Store.ListConversations(c.Request().Context(), &store.FindConversation{
		UserID: &userID,
		Limit:  &limit,
	})
	if err != nil {
		slog.Error("failed to list conversations", "user_id", userID, "error", err)
		return errorJSON(c, http.StatusInternalServerError, "failed to retrieve history")
	}

	history := make([]HistoryEntry, 0, len(conversations))
	for _, conversation := range conversations {
		var messages []memory.Message
		if err := json.Unmarshal([]byte(conversation.Messages), &messages); err != nil {
			slog.Warn("skipping undecodable conversation row", "id", conversation.ID, "error", err)
			continue
		}
		history = append(history, HistoryEntry{
			SessionID:       conversation.SessionID,
			Messages:        messages,
			PersonalityType: conversation.PersonalityType,
			CreatedTs:       conversation.CreatedTs,
		})
	}

	return c.JSON(http.StatusOK, map[string]any{
		"success": true,
		"history": history,
	})
}
