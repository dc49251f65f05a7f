package api

import (
	"net/http"

	"github.com/phrazzld/carousel-api/internal/api/shared"
	"github.com/phrazzld/carousel-api/internal/catalog"
)

// CatalogHandler serves the static style catalog and the health check.
type CatalogHandler struct {
	aiEnabled bool
}

// NewCatalogHandler creates a CatalogHandler. aiEnabled is reported by the
// health check so clients can hide AI mode.
func NewCatalogHandler(aiEnabled bool) *CatalogHandler {
	return &CatalogHandler{aiEnabled: aiEnabled}
}

// Templates handles GET /api/templates.
func (h *CatalogHandler) Templates(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, TemplatesResponse{Templates: catalog.Templates()})
}

// StylePresets handles GET /api/style-presets.
func (h *CatalogHandler) StylePresets(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, PresetsResponse{Presets: catalog.Presets()})
}

// Health handles GET /health.
func (h *CatalogHandler) Health(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, HealthResponse{Status: "ok", AIEnabled: h.aiEnabled})
}
