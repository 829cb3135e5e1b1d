// Package wizard manages per-session wizard state: the JSON-encoded values
// written by each wizard step and the linear state machine that guards
// step entry.
package wizard

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ternarybob/arbor"

	"github.com/viralforge/studio/internal/interfaces"
	"github.com/viralforge/studio/internal/models"
)

// Wizard state keys. One key per step; each step writes its key before the
// next step may be entered.
const (
	KeySelectedGoal   = "selectedGoal"
	KeyAITeam         = "aiTeam"
	KeyCollectedData  = "collectedData"
	KeyCampaignResult = "campaignResult"
)

// WizardKeys lists every key the wizard owns, in step order.
var WizardKeys = []string{KeySelectedGoal, KeyAITeam, KeyCollectedData, KeyCampaignResult}

// Service provides JSON-encoded wizard state over a KeyValueStorage. The
// storage content is treated as a boundary: user-inspectable and subject to
// tampering, so malformed entries are treated as absent, never fatal.
type Service struct {
	storage interfaces.KeyValueStorage
	logger  arbor.ILogger
}

// NewService creates a new wizard state service
func NewService(storage interfaces.KeyValueStorage, logger arbor.ILogger) *Service {
	return &Service{
		storage: storage,
		logger:  logger,
	}
}

// Set serializes a value to JSON and stores it under the session key
func (s *Service) Set(ctx context.Context, session, key string, value interface{}) error {
	if key == "" {
		return fmt.Errorf("key cannot be empty")
	}

	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to serialize wizard value for %s: %w", key, err)
	}

	if err := s.storage.Set(ctx, session, key, string(data)); err != nil {
		s.logger.Error().Err(err).Str("session", session).Str("key", key).Msg("Failed to store wizard state")
		return err
	}

	s.logger.Debug().Str("session", session).Str("key", key).Msg("Stored wizard state")
	return nil
}

// Get deserializes the session key into out. Returns false when the key is
// absent or its stored value is malformed; malformed entries are logged and
// treated as absent rather than surfaced.
func (s *Service) Get(ctx context.Context, session, key string, out interface{}) (bool, error) {
	value, err := s.storage.Get(ctx, session, key)
	if err != nil {
		if errors.Is(err, interfaces.ErrKeyNotFound) {
			return false, nil
		}
		s.logger.Error().Err(err).Str("session", session).Str("key", key).Msg("Failed to read wizard state")
		return false, err
	}

	if err := json.Unmarshal([]byte(value), out); err != nil {
		s.logger.Warn().Err(err).Str("session", session).Str("key", key).Msg("Malformed wizard state entry, treating as absent")
		return false, nil
	}

	return true, nil
}

// Has reports whether the session key is present and parseable as JSON
func (s *Service) Has(ctx context.Context, session, key string) bool {
	var raw json.RawMessage
	present, err := s.Get(ctx, session, key, &raw)
	return err == nil && present
}

// Clear removes all wizard keys for the session, used on "start new campaign"
func (s *Service) Clear(ctx context.Context, session string) error {
	if err := s.storage.DeleteSession(ctx, session); err != nil {
		s.logger.Error().Err(err).Str("session", session).Msg("Failed to clear wizard state")
		return err
	}

	s.logger.Info().Str("session", session).Msg("Cleared wizard state")
	return nil
}

// SaveResult persists the canonical campaign result. Satisfies the
// orchestrator's ResultStore.
func (s *Service) SaveResult(ctx context.Context, session string, result *models.CampaignResult) error {
	return s.Set(ctx, session, KeyCampaignResult, result)
}

// GetResult retrieves the stored campaign result, nil when absent
func (s *Service) GetResult(ctx context.Context, session string) (*models.CampaignResult, error) {
	var result models.CampaignResult
	present, err := s.Get(ctx, session, KeyCampaignResult, &result)
	if err != nil {
		return nil, err
	}
	if !present {
		return nil, nil
	}
	return &result, nil
}

// GetGoal retrieves the selected goal, nil when absent
func (s *Service) GetGoal(ctx context.Context, session string) (*models.Goal, error) {
	var goal models.Goal
	present, err := s.Get(ctx, session, KeySelectedGoal, &goal)
	if err != nil {
		return nil, err
	}
	if !present {
		return nil, nil
	}
	return &goal, nil
}

// GetCollectedData retrieves the data-collection payload, nil when absent
func (s *Service) GetCollectedData(ctx context.Context, session string) (*models.CollectedData, error) {
	var data models.CollectedData
	present, err := s.Get(ctx, session, KeyCollectedData, &data)
	if err != nil {
		return nil, err
	}
	if !present {
		return nil, nil
	}
	return &data, nil
}
