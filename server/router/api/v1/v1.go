// Package v1 exposes the REST API surface: memory analysis, personality
// generation and comparison, user reads, and the personality catalog.
package v1

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/labstack/echo/v4"
	"github.com/lithammer/shortuuid/v4"

	"github.com/hrygo/guppshupp/ai/core/llm"
	"github.com/hrygo/guppshupp/ai/memory"
	"github.com/hrygo/guppshupp/ai/metrics"
	"github.com/hrygo/guppshupp/ai/personality"
	"github.com/hrygo/guppshupp/internal/profile"
	"github.com/hrygo/guppshupp/store"
)

type APIV1Service struct {
	Profile   *profile.Profile
	Store     *store.Store
	Gateway   llm.Service
	Extractor *memory.Extractor
	Engine    *personality.Engine
	Exporter  *metrics.PrometheusExporter
}

func NewAPIV1Service(profile *profile.Profile, store *store.Store, gateway llm.Service, exporter *metrics.PrometheusExporter) *APIV1Service {
	return &APIV1Service{
		Profile:   profile,
		Store:     store,
		Gateway:   gateway,
		Extractor: memory.NewExtractor(gateway),
		Engine:    personality.NewEngine(gateway),
		Exporter:  exporter,
	}
}

// RegisterRoutes mounts all v1 routes on the Echo instance.
func (s *APIV1Service) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", s.GetHealth)

	api := e.Group("/api")
	api.POST("/analyze", s.AnalyzeMessages)
	api.POST("/generate", s.GenerateResponse)
	api.POST("/compare", s.ComparePersonalities)
	api.GET("/personalities", s.ListPersonalities)
	api.GET("/user/:id/memory", s.GetUserMemory)
	api.GET("/user/:id/stats", s.GetUserStats)
	api.GET("/user/:id/history", s.GetUserHistory)
}

// errorJSON writes the uniform failure envelope.
func errorJSON(c echo.Context, status int, message string) error {
	return c.JSON(status, map[string]any{
		"success": false,
		"error":   message,
	})
}

// resolveUserID takes the caller-supplied id, falling back to the X-User-ID
// header, then to a generated anonymous id.
func resolveUserID(c echo.Context, bodyUserID string) string {
	if bodyUserID != "" {
		return bodyUserID
	}
	if header := c.Request().Header.Get("X-User-ID"); header != "" {
		return header
	}
	return "anon_" + shortuuid.New()
}

// loadUserMemory reads the stored snapshot for a user and decodes it. A
// missing or undecodable snapshot yields nil; storage trouble never blocks
// the caller's request.
func (s *APIV1Service) loadUserMemory(ctx context.Context, userID string) *memory.UserMemory {
	snapshot, err := s.Store.GetUserMemory(ctx, &store.FindUserMemory{UserID: userID})
	if err != nil {
		slog.Error("failed to load user memory", "user_id", userID, "error", err)
		return nil
	}
	if snapshot == nil {
		return nil
	}

	var mem memory.UserMemory
	if err := json.Unmarshal([]byte(snapshot.MemoryData), &mem); err != nil {
		slog.Error("stored memory is not valid JSON", "user_id", userID, "error", err)
		return nil
	}
	mem.MessageCount = snapshot.MessageCount
	return &mem
}

// logAnalyticsEvent records a usage event, best effort.
func (s *APIV1Service) logAnalyticsEvent(ctx context.Context, userID, eventType string, data map[string]any) {
	encoded, err := json.Marshal(data)
	if err != nil {
		encoded = []byte("{}")
	}
	if _, err := s.Store.CreateAnalyticsEvent(ctx, &store.CreateAnalyticsEvent{
		UserID:    userID,
		EventType: eventType,
		EventData: string(encoded),
	}); err != nil {
		slog.Warn("failed to log analytics event", "event_type", eventType, "error", err)
	}
}
