package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/ternarybob/arbor"

	"github.com/viralforge/studio/internal/interfaces"
	"github.com/viralforge/studio/internal/models"
	"github.com/viralforge/studio/internal/services/campaign"
	"github.com/viralforge/studio/internal/services/wizard"
)

// OrchestratorInterface defines the methods needed from the campaign orchestrator
type OrchestratorInterface interface {
	Run(ctx context.Context, session string, data models.CollectedData, goal models.Goal, done campaign.CompletionFunc) (*models.CampaignResult, error)
}

// CampaignHandler handles campaign processing HTTP requests
type CampaignHandler struct {
	orchestrator  OrchestratorInterface
	wizardService *wizard.Service
	logger        arbor.ILogger
}

// NewCampaignHandler creates a new campaign handler
func NewCampaignHandler(orchestrator OrchestratorInterface, wizardService *wizard.Service, logger arbor.ILogger) *CampaignHandler {
	return &CampaignHandler{
		orchestrator:  orchestrator,
		wizardService: wizardService,
		logger:        logger,
	}
}

// ProcessHandler handles POST /api/campaign/process - enters the Processing
// step: checks the step guard, then runs the upload-and-generate pipeline
// in the background. Progress is published over the websocket; the result
// is read back via ResultHandler. A duplicate POST while a run is in flight
// is rejected without touching the network.
func (h *CampaignHandler) ProcessHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "POST") {
		return
	}

	session := RequireSession(w, r)
	if session == "" {
		return
	}

	if _, allowed := h.wizardService.GuardStep(r.Context(), session, models.StepProcessing); !allowed {
		WriteError(w, http.StatusConflict, "Wizard state incomplete, restart from goal selection")
		return
	}

	goal, err := h.wizardService.GetGoal(r.Context(), session)
	if err != nil || goal == nil {
		WriteError(w, http.StatusConflict, "Selected goal missing, restart from goal selection")
		return
	}
	data, err := h.wizardService.GetCollectedData(r.Context(), session)
	if err != nil || data == nil {
		WriteError(w, http.StatusConflict, "Collected data missing, restart from goal selection")
		return
	}

	// Synchronous mode blocks until the pipeline finishes and returns the
	// result inline. Used by tests and non-websocket clients.
	if r.URL.Query().Get("wait") == "true" {
		result, err := h.orchestrator.Run(r.Context(), session, *data, *goal, nil)
		if err != nil {
			WriteError(w, mapPipelineError(err), err.Error())
			return
		}
		WriteJSON(w, http.StatusOK, result)
		return
	}

	// The run outlives the HTTP request; navigation away from the
	// Processing screen does not abort it.
	go func() {
		_, err := h.orchestrator.Run(context.Background(), session, *data, *goal, nil)
		if err != nil && !errors.Is(err, campaign.ErrAlreadyRunning) && !errors.Is(err, campaign.ErrAlreadyComplete) {
			h.logger.Warn().Err(err).Str("session", session).Msg("Campaign processing failed")
		}
	}()

	WriteStarted(w, "Campaign generation started")
}

// ResultHandler handles GET /api/campaign/result - returns the stored
// canonical result, 404 while absent
func (h *CampaignHandler) ResultHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	session := RequireSession(w, r)
	if session == "" {
		return
	}

	result, err := h.wizardService.GetResult(r.Context(), session)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "Failed to read campaign result")
		return
	}
	if result == nil {
		WriteError(w, http.StatusNotFound, "No campaign result for this session")
		return
	}

	WriteJSON(w, http.StatusOK, result)
}

// mapPipelineError translates the pipeline error taxonomy to an HTTP status.
// Used by synchronous processing mode; the async path reports errors over
// the websocket instead.
func mapPipelineError(err error) int {
	var serverErr *interfaces.ServerError
	var uploadErr *interfaces.UploadError
	var netErr *interfaces.NetworkError
	var malformedErr *interfaces.MalformedResponseError

	switch {
	case errors.Is(err, campaign.ErrAlreadyRunning), errors.Is(err, campaign.ErrAlreadyComplete):
		return http.StatusConflict
	case errors.As(err, &serverErr), errors.As(err, &uploadErr):
		return http.StatusBadGateway
	case errors.As(err, &netErr):
		return http.StatusGatewayTimeout
	case errors.As(err, &malformedErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
