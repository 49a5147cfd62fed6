package v1

import (
	"encoding/json"
	"net/http"
	"time"

	"log/slog"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/hrygo/guppshupp/ai/memory"
	"github.com/hrygo/guppshupp/ai/personality"
	"github.com/hrygo/guppshupp/store"
)

// GenerateRequest asks for a persona-styled response to one message.
// Memory supplied inline is used only when the user has no stored snapshot.
type GenerateRequest struct {
	Message     string             `json:"message"`
	Personality string             `json:"personality"`
	UserID      string             `json:"user_id,omitempty"`
	Memory      *memory.UserMemory `json:"memory,omitempty"`
}

// GenerateResponse is the styled response with its local annotations.
type GenerateResponse struct {
	Success                 bool              `json:"success"`
	UserID                  string            `json:"user_id"`
	Response                string            `json:"response"`
	Personality             string            `json:"personality"`
	PersonalizationElements []string          `json:"personalization_elements"`
	MemoryReferences        []string          `json:"memory_references"`
	ToneMetrics             map[string]string `json:"tone_metrics"`
	Confidence              float64           `json:"confidence"`
	ProcessingTime          float64           `json:"processing_time"`
}

// GenerateResponse generates a personality-styled response.
// POST /api/generate
func (s *APIV1Service) GenerateResponse(c echo.Context) error {
	start := time.Now()
	ctx := c.Request().Context()

	var req GenerateRequest
	if err := c.Bind(&req); err != nil {
		return errorJSON(c, http.StatusBadRequest, "invalid request body")
	}
	if req.Message == "" {
		return errorJSON(c, http.StatusBadRequest, "message required")
	}

	personalityType, err := personality.ParseType(req.Personality)
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, err.Error())
	}

	userID := resolveUserID(c, req.UserID)

	// stored memory wins over inline memory
	mem := s.loadUserMemory(ctx, userID)
	if mem == nil {
		mem = req.Memory
	}

	resp, err := s.Engine.Generate(ctx, &personality.GenerateRequest{
		Message:     req.Message,
		Personality: personalityType,
		Memory:      mem,
	})
	if err != nil {
		s.Exporter.RecordGeneration(string(personalityType), false)
		slog.Error("response generation failed", "user_id", userID, "personality", personalityType, "error", err)
		return errorJSON(c, http.StatusInternalServerError, "response generation failed")
	}
	s.Exporter.RecordGeneration(string(personalityType), true)

	s.saveConversation(c, userID, req.Message, resp.Response, personalityType)

	return c.JSON(http.StatusOK, GenerateResponse{
		Success:                 true,
		UserID:                  userID,
		Response:                resp.Response,
		Personality:             string(resp.Personality),
		PersonalizationElements: resp.PersonalizationElements,
		MemoryReferences:        resp.MemoryReferences,
		ToneMetrics:             resp.ToneMetrics,
		Confidence:              resp.Confidence,
		ProcessingTime:          time.Since(start).Seconds(),
	})
}

// saveConversation appends the exchange to history, best effort.
func (s *APIV1Service) saveConversation(c echo.Context, userID, userMessage, response string, personalityType personality.Type) {
	turns := []memory.Message{
		{Role: "user", Content: userMessage},
		{Role: "assistant", Content: response},
	}
	encoded, err := json.Marshal(turns)
	if err != nil {
		return
	}

	sessionID := c.Request().Header.Get("X-Session-ID")
	if sessionID == "" {
		sessionID = uuid.NewString()
	}
	if _, err := s.Store.CreateConversation(c.Request().Context(), &store.CreateConversation{
		UserID:          userID,
		SessionID:       sessionID,
		Messages:        string(encoded),
		PersonalityType: string(personalityType),
	}); err != nil {
		slog.Warn("failed to save conversation", "user_id", userID, "error", err)
	}
}
