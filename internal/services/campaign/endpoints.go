// Package campaign implements the upload-and-generate pipeline: request
// building, endpoint routing, the remote generation call, response
// normalization, and the orchestrator that sequences them.
package campaign

import (
	"strings"

	"github.com/viralforge/studio/internal/models"
)

// ComprehensiveGoalTitle is the sentinel goal title that routes a run to the
// comprehensive generation endpoint. The match is exact and case-sensitive
// after trimming surrounding whitespace; every other goal, however similar,
// takes the basic endpoint.
const ComprehensiveGoalTitle = "Go Viral Globally"

// EndpointConfig parameterizes the pipeline with the remote collaborator's
// endpoints. The basic/comprehensive divergence is configuration, not code
// duplication: one orchestrator serves both flows.
type EndpointConfig struct {
	TicketURL        string
	BasicURL         string
	ComprehensiveURL string
}

// ForGoal selects the generation endpoint for a goal. Returns the endpoint
// URL and whether the comprehensive mode was selected.
func (e EndpointConfig) ForGoal(goal models.Goal) (string, bool) {
	if strings.TrimSpace(goal.Title) == ComprehensiveGoalTitle {
		return e.ComprehensiveURL, true
	}
	return e.BasicURL, false
}
