package v1

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/hrygo/guppshupp/ai/personality"
)

// PersonalityInfo is one catalog entry.
type PersonalityInfo struct {
	Type            string           `json:"type"`
	Name            string           `json:"name"`
	Description     string           `json:"description"`
	Characteristics personality.Tone `json:"characteristics"`
}

// ListPersonalities returns the static personality catalog.
// GET /api/personalities
func (s *APIV1Service) ListPersonalities(c echo.Context) error {
	catalog := make([]PersonalityInfo, 0, len(personality.AllTypes()))
	for _, t := range personality.AllTypes() {
		p, ok := personality.GetProfile(t)
		if !ok {
			continue
		}
		catalog = append(catalog, PersonalityInfo{
			Type:            string(t),
			Name:            p.Name,
			Description:     p.Description,
			Characteristics: p.Tone,
		})
	}

	return c.JSON(http.StatusOK, map[string]any{
		"success":       true,
		"personalities": catalog,
	})
}
