package wizard

import (
	"context"

	"github.com/viralforge/studio/internal/models"
)

// requiredKeys maps each wizard step to the keys that must be present and
// parseable before the step may be entered. These are the keys written by
// every earlier step in the linear flow:
//
//	GoalSelection -> TeamAssembly -> DataCollection -> Processing -> Results
var requiredKeys = map[models.WizardStep][]string{
	models.StepGoalSelection:  {},
	models.StepTeamAssembly:   {KeySelectedGoal},
	models.StepDataCollection: {KeySelectedGoal, KeyAITeam},
	models.StepProcessing:     {KeySelectedGoal, KeyAITeam, KeyCollectedData},
	models.StepResults:        {KeySelectedGoal, KeyAITeam, KeyCollectedData, KeyCampaignResult},
}

// RequiredKeys returns the predecessor keys a step depends on.
func RequiredKeys(step models.WizardStep) []string {
	keys, ok := requiredKeys[step]
	if !ok {
		return nil
	}
	return keys
}

// ValidStep reports whether step names a known wizard step.
func ValidStep(step models.WizardStep) bool {
	_, ok := requiredKeys[step]
	return ok
}

// GuardStep checks the transition guard for entering a step. When every
// required predecessor key is present it returns the step itself and true.
// When any is absent or malformed it returns StepGoalSelection and false:
// missing state always forces a restart from the beginning, since partial
// wizard state cannot be trusted after a tampered or interrupted session.
func (s *Service) GuardStep(ctx context.Context, session string, step models.WizardStep) (models.WizardStep, bool) {
	keys, ok := requiredKeys[step]
	if !ok {
		return models.StepGoalSelection, false
	}

	for _, key := range keys {
		if !s.Has(ctx, session, key) {
			s.logger.Debug().
				Str("session", session).
				Str("step", string(step)).
				Str("missing_key", key).
				Msg("Wizard step guard failed, redirecting to goal selection")
			return models.StepGoalSelection, false
		}
	}

	return step, true
}
