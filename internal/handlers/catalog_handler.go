package handlers

import (
	"net/http"

	"github.com/ternarybob/arbor"

	"github.com/viralforge/studio/internal/services/catalog"
)

// CatalogHandler serves the static goal and agent catalogs
type CatalogHandler struct {
	catalog *catalog.Service
	logger  arbor.ILogger
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(catalogService *catalog.Service, logger arbor.ILogger) *CatalogHandler {
	return &CatalogHandler{
		catalog: catalogService,
		logger:  logger,
	}
}

// ListGoalsHandler handles GET /api/goals
func (h *CatalogHandler) ListGoalsHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	WriteJSON(w, http.StatusOK, h.catalog.Goals())
}

// ListAgentsHandler handles GET /api/agents
func (h *CatalogHandler) ListAgentsHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	WriteJSON(w, http.StatusOK, h.catalog.Agents())
}
