package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/ternarybob/arbor"

	"github.com/viralforge/studio/internal/common"
	"github.com/viralforge/studio/internal/models"
	"github.com/viralforge/studio/internal/services/wizard"
)

// LatchResetter releases a session's orchestration latch on wizard reset
type LatchResetter interface {
	Reset(session string)
}

// WizardHandler handles wizard session and state HTTP requests
type WizardHandler struct {
	wizardService *wizard.Service
	latches       LatchResetter
	logger        arbor.ILogger
}

// NewWizardHandler creates a new wizard handler
func NewWizardHandler(wizardService *wizard.Service, latches LatchResetter, logger arbor.ILogger) *WizardHandler {
	return &WizardHandler{
		wizardService: wizardService,
		latches:       latches,
		logger:        logger,
	}
}

// allowedKeys restricts the state surface to the keys the wizard owns
var allowedKeys = map[string]bool{
	wizard.KeySelectedGoal:   true,
	wizard.KeyAITeam:         true,
	wizard.KeyCollectedData:  true,
	wizard.KeyCampaignResult: true,
}

// CreateSessionHandler handles POST /api/session - issues a wizard session ID
func (h *WizardHandler) CreateSessionHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "POST") {
		return
	}

	session := common.NewSessionID()
	h.logger.Info().Str("session", session).Msg("Wizard session created")

	WriteJSON(w, http.StatusCreated, map[string]string{"session_id": session})
}

// StateHandler handles GET and PUT /api/wizard/state/{key}
func (h *WizardHandler) StateHandler(w http.ResponseWriter, r *http.Request) {
	key := strings.TrimPrefix(r.URL.Path, "/api/wizard/state/")
	if key == "" || !allowedKeys[key] {
		WriteError(w, http.StatusBadRequest, "Unknown wizard state key")
		return
	}

	session := RequireSession(w, r)
	if session == "" {
		return
	}

	switch r.Method {
	case "GET":
		h.getState(w, r, session, key)
	case "PUT":
		h.putState(w, r, session, key)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *WizardHandler) getState(w http.ResponseWriter, r *http.Request, session, key string) {
	var value json.RawMessage
	present, err := h.wizardService.Get(r.Context(), session, key, &value)
	if err != nil {
		h.logger.Error().Err(err).Str("key", key).Msg("Failed to read wizard state")
		WriteError(w, http.StatusInternalServerError, "Failed to read wizard state")
		return
	}

	if !present {
		WriteJSON(w, http.StatusOK, map[string]interface{}{"present": false})
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"present": true,
		"value":   value,
	})
}

func (h *WizardHandler) putState(w http.ResponseWriter, r *http.Request, session, key string) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		WriteError(w, http.StatusBadRequest, "Failed to read request body")
		return
	}

	if !json.Valid(body) {
		WriteError(w, http.StatusBadRequest, "Request body must be valid JSON")
		return
	}

	if err := h.wizardService.Set(r.Context(), session, key, json.RawMessage(body)); err != nil {
		h.logger.Error().Err(err).Str("key", key).Msg("Failed to store wizard state")
		WriteError(w, http.StatusInternalServerError, "Failed to store wizard state")
		return
	}

	WriteSuccess(w, "Stored "+key)
}

// GuardHandler handles GET /api/wizard/guard?step={step} - checks the
// transition guard for entering a wizard step and returns the redirect
// target when the guard fails
func (h *WizardHandler) GuardHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	session := RequireSession(w, r)
	if session == "" {
		return
	}

	step := models.WizardStep(r.URL.Query().Get("step"))
	if !wizard.ValidStep(step) {
		WriteError(w, http.StatusBadRequest, "Unknown wizard step")
		return
	}

	target, allowed := h.wizardService.GuardStep(r.Context(), session, step)
	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"step":    step,
		"allowed": allowed,
		"target":  target,
	})
}

// ResetHandler handles POST /api/wizard/reset - clears all wizard state for
// the session and releases the orchestration latch so a new campaign can be
// started
func (h *WizardHandler) ResetHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "POST") {
		return
	}

	session := RequireSession(w, r)
	if session == "" {
		return
	}

	if err := h.wizardService.Clear(r.Context(), session); err != nil {
		WriteError(w, http.StatusInternalServerError, "Failed to reset wizard")
		return
	}
	if h.latches != nil {
		h.latches.Reset(session)
	}

	WriteSuccess(w, "Wizard reset")
}
