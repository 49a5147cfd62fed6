package v1

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// HealthResponse reports per-dependency health.
type HealthResponse struct {
	Status    string            `json:"status"`
	Services  map[string]string `json:"services"`
	Timestamp int64             `json:"timestamp"`
}

// GetHealth probes the model gateway and reports database presence.
// GET /health
func (s *APIV1Service) GetHealth(c echo.Context) error {
	llmHealthy := s.Gateway != nil && s.Gateway.HealthCheck(c.Request().Context())
	dbHealthy := s.Store != nil

	status := "healthy"
	if !llmHealthy || !dbHealthy {
		status = "unhealthy"
	}

	healthy := func(ok bool) string {
		if ok {
			return "healthy"
		}
		return "unhealthy"
	}

	return c.JSON(http.StatusOK, HealthResponse{
		Status: status,
		Services: map[string]string{
			"llm":      healthy(llmHealthy),
			"database": healthy(dbHealthy),
		},
		Timestamp: time.Now().Unix(),
	})
}
