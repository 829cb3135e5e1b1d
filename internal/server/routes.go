package server

import (
	"net/http"
)

// setupRoutes registers all HTTP routes
func (s *Server) setupRoutes() *http.ServeMux {
	mux := http.NewServeMux()

	// WebSocket endpoint for pipeline progress events
	mux.HandleFunc("/ws", s.app.WSHandler.HandleWebSocket)

	// Session lifecycle
	mux.HandleFunc("/api/session", s.app.WizardHandler.CreateSessionHandler) // POST - issue a wizard session ID

	// Wizard state
	mux.HandleFunc("/api/wizard/state/", s.app.WizardHandler.StateHandler) // GET/PUT /{key}
	mux.HandleFunc("/api/wizard/guard", s.app.WizardHandler.GuardHandler)  // GET - step transition guard
	mux.HandleFunc("/api/wizard/reset", s.app.WizardHandler.ResetHandler)  // POST - start new campaign

	// Campaign processing
	mux.HandleFunc("/api/campaign/process", s.app.CampaignHandler.ProcessHandler) // POST - run the pipeline
	mux.HandleFunc("/api/campaign/result", s.app.CampaignHandler.ResultHandler)   // GET - stored canonical result

	// Static catalogs
	mux.HandleFunc("/api/goals", s.app.CatalogHandler.ListGoalsHandler)   // GET - marketing goals
	mux.HandleFunc("/api/agents", s.app.CatalogHandler.ListAgentsHandler) // GET - AI team profiles

	// System endpoints
	mux.HandleFunc("/api/version", s.app.APIHandler.VersionHandler)
	mux.HandleFunc("/api/health", s.app.APIHandler.HealthHandler)

	// Catch-all for unmatched API routes
	mux.HandleFunc("/api/", s.app.APIHandler.NotFoundHandler)

	return mux
}
