package v1

import (
	"net/http"
	"time"

	"log/slog"

	"github.com/labstack/echo/v4"

	"github.com/hrygo/guppshupp/ai/personality"
	"github.com/hrygo/guppshupp/store"
)

// CompareRequest asks for one styled response per personality.
type CompareRequest struct {
	Message       string   `json:"message"`
	Personalities []string `json:"personalities,omitempty"`
	UserID        string   `json:"user_id,omitempty"`
}

// CompareResponse holds the base response plus all variants.
type CompareResponse struct {
	Success              bool              `json:"success"`
	UserID               string            `json:"user_id"`
	UserMessage          string            `json:"user_message"`
	BaseResponse         string            `json:"base_response"`
	PersonalityResponses map[string]string `json:"personality_responses"`
	ComparisonAnalysis   map[string]string `json:"comparison_analysis"`
	Recommendations      []string          `json:"recommendations"`
	ProcessingTime       float64           `json:"processing_time"`
}

// ComparePersonalities generates a base response plus one variant per
// requested personality. Any variant failure fails the whole request.
// POST /api/compare
func (s *APIV1Service) ComparePersonalities(c echo.Context) error {
	start := time.Now()
	ctx := c.Request().Context()

	var req CompareRequest
	if err := c.Bind(&req); err != nil {
		return errorJSON(c, http.StatusBadRequest, "invalid request body")
	}
	if req.Message == "" {
		return errorJSON(c, http.StatusBadRequest, "message required")
	}

	variants := make([]personality.Type, 0, len(req.Personalities))
	for _, raw := range req.Personalities {
		t, err := personality.ParseType(raw)
		if err != nil {
			return errorJSON(c, http.StatusBadRequest, err.Error())
		}
		variants = append(variants, t)
	}

	userID := resolveUserID(c, req.UserID)

	// The professional variant doubles as the comparison baseline and is
	// the only one that sees stored memory.
	base, err := s.Engine.Generate(ctx, &personality.GenerateRequest{
		Message:     req.Message,
		Personality: personality.TypeProfessional,
		Memory:      s.loadUserMemory(ctx, userID),
	})
	if err != nil {
		slog.Error("base response generation failed", "user_id", userID, "error", err)
		return errorJSON(c, http.StatusInternalServerError, "comparison failed")
	}

	comparison, err := s.Engine.Compare(ctx, req.Message, base.Response, variants)
	if err != nil {
		slog.Error("personality comparison failed", "user_id", userID, "error", err)
		return errorJSON(c, http.StatusInternalServerError, "comparison failed")
	}
	s.Exporter.RecordComparison()

	responses := make(map[string]string, len(comparison.Responses))
	for t, response := range comparison.Responses {
		responses[string(t)] = response

		if _, err := s.Store.CreatePersonalityResponse(ctx, &store.CreatePersonalityResponse{
			UserID:              userID,
			UserMessage:         req.Message,
			BaseResponse:        base.Response,
			PersonalityType:     string(t),
			PersonalityResponse: response,
		}); err != nil {
			slog.Warn("failed to save personality response", "user_id", userID, "personality", t, "error", err)
		}
	}

	return c.JSON(http.StatusOK, CompareResponse{
		Success:              true,
		UserID:               userID,
		UserMessage:          req.Message,
		BaseResponse:         base.Response,
		PersonalityResponses: responses,
		ComparisonAnalysis:   comparison.Analysis,
		Recommendations:      comparison.Recommendations,
		ProcessingTime:       time.Since(start).Seconds(),
	})
}
