package v1

import (
	"encoding/json"
	"net/http"
	"time"

	"log/slog"

	"github.com/labstack/echo/v4"

	"github.com/hrygo/guppshupp/ai/memory"
	"github.com/hrygo/guppshupp/store"
)

// AnalyzeRequest carries a transcript to extract memory from.
type AnalyzeRequest struct {
	Messages []memory.Message `json:"messages"`
	UserID   string           `json:"user_id,omitempty"`
}

// AnalyzeResponse returns the extracted memory record.
type AnalyzeResponse struct {
	Success        bool               `json:"success"`
	UserID         string             `json:"user_id"`
	Memory         *memory.UserMemory `json:"memory"`
	ProcessingTime float64            `json:"processing_time"`
	MessageCount   int                `json:"message_count"`
}

// AnalyzeMessages extracts user memory from a chat transcript and persists
// it as the user's new snapshot.
// POST /api/analyze
func (s *APIV1Service) AnalyzeMessages(c echo.Context) error {
	start := time.Now()
	ctx := c.Request().Context()

	var req AnalyzeRequest
	if err := c.Bind(&req); err != nil {
		return errorJSON(c, http.StatusBadRequest, "invalid request body")
	}
	if len(req.Messages) == 0 {
		return errorJSON(c, http.StatusBadRequest, "messages required")
	}

	userID := resolveUserID(c, req.UserID)

	if _, err := s.Store.UpsertUser(ctx, &store.UpsertUser{ID: userID}); err != nil {
		slog.Error("failed to upsert user", "user_id", userID, "error", err)
		return errorJSON(c, http.StatusInternalServerError, "failed to create user")
	}

	mem, err := s.Extractor.Extract(ctx, userID, req.Messages)
	if err != nil {
		s.Exporter.RecordExtraction(false)
		slog.Error("memory extraction failed", "user_id", userID, "error", err)
		return errorJSON(c, http.StatusInternalServerError, "memory extraction failed")
	}
	s.Exporter.RecordExtraction(true)
	s.Exporter.RecordExtractionDropped("preference", mem.Dropped.Preferences)
	s.Exporter.RecordExtractionDropped("emotional_pattern", mem.Dropped.Patterns)
	s.Exporter.RecordExtractionDropped("fact", mem.Dropped.Facts)

	memoryData, err := json.Marshal(mem)
	if err != nil {
		return errorJSON(c, http.StatusInternalServerError, "failed to encode memory")
	}

	if _, err := s.Store.UpsertUserMemory(ctx, &store.UpsertUserMemory{
		UserID:          userID,
		MemoryData:      string(memoryData),
		MessageCount:    len(req.Messages),
		ConfidenceScore: mem.OverallConfidence(),
	}); err != nil {
		slog.Error("failed to save user memory", "user_id", userID, "error", err)
		return errorJSON(c, http.StatusInternalServerError, "failed to save memory")
	}

	s.logAnalyticsEvent(ctx, userID, "memory_extraction", map[string]any{
		"message_count": len(req.Messages),
		"preferences":   mem.PreferenceCount(),
		"facts":         len(mem.Facts),
		"dropped":       mem.Dropped.Total(),
	})

	return c.JSON(http.StatusOK, AnalyzeResponse{
		Success:        true,
		UserID:         userID,
		Memory:         mem,
		ProcessingTime: time.Since(start).Seconds(),
		MessageCount:   len(req.Messages),
	})
}
