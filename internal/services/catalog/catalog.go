// Package catalog serves the static goal and AI-team catalogs. The catalog
// is data, not behavior: the agents themselves run behind the remote
// generation API, and the goal title is the routing input for endpoint
// selection.
package catalog

import (
	"fmt"

	"github.com/viralforge/studio/internal/models"
)

var agents = []models.AgentProfile{
	{ID: "market-researcher", Name: "Mira", Role: "Market Researcher", Specialty: "Audience segmentation and competitor analysis"},
	{ID: "trend-analyst", Name: "Tao", Role: "Trend Analyst", Specialty: "Platform trend detection and virality signals"},
	{ID: "copywriter", Name: "Cole", Role: "Copywriter", Specialty: "Captions, hooks and hashtag strategy"},
	{ID: "visual-designer", Name: "Vera", Role: "Visual Designer", Specialty: "Image prompts and asset direction"},
	{ID: "campaign-strategist", Name: "Stella", Role: "Campaign Strategist", Specialty: "Multi-week calendars and budget pacing"},
	{ID: "localization-lead", Name: "Lina", Role: "Localization Lead", Specialty: "Market-by-market adaptation"},
}

var goals = []models.Goal{
	{
		ID:          "brand-awareness",
		Title:       "Build Brand Awareness",
		Description: "Introduce the product to new audiences across your preferred platforms",
		Icon:        "megaphone",
		AgentIDs:    []string{"market-researcher", "copywriter", "visual-designer"},
	},
	{
		ID:          "drive-sales",
		Title:       "Drive Product Sales",
		Description: "Conversion-focused content with clear calls to action",
		Icon:        "cart",
		AgentIDs:    []string{"market-researcher", "copywriter", "campaign-strategist"},
	},
	{
		ID:          "go-viral",
		Title:       "Go Viral Globally",
		Description: "Maximum-reach comprehensive campaign across every market and platform",
		Icon:        "globe",
		AgentIDs:    []string{"trend-analyst", "copywriter", "visual-designer", "campaign-strategist", "localization-lead"},
	},
	{
		ID:          "launch-product",
		Title:       "Launch New Product",
		Description: "A structured launch-week plan with teasers and reveal content",
		Icon:        "rocket",
		AgentIDs:    []string{"copywriter", "visual-designer", "campaign-strategist"},
	},
	{
		ID:          "grow-following",
		Title:       "Grow Social Following",
		Description: "Engagement-first content designed to build a returning audience",
		Icon:        "users",
		AgentIDs:    []string{"trend-analyst", "copywriter"},
	},
}

// Service exposes the static catalogs
type Service struct{}

// NewService creates a catalog service
func NewService() *Service {
	return &Service{}
}

// Goals returns every available marketing goal
func (s *Service) Goals() []models.Goal {
	return goals
}

// Agents returns every agent profile
func (s *Service) Agents() []models.AgentProfile {
	return agents
}

// GoalByID looks up a goal by its ID
func (s *Service) GoalByID(id string) (*models.Goal, error) {
	for i := range goals {
		if goals[i].ID == id {
			return &goals[i], nil
		}
	}
	return nil, fmt.Errorf("unknown goal: %s", id)
}

// TeamForGoal resolves a goal's agent IDs into profiles, preserving order
func (s *Service) TeamForGoal(goal *models.Goal) []models.AgentProfile {
	byID := make(map[string]models.AgentProfile, len(agents))
	for _, a := range agents {
		byID[a.ID] = a
	}

	team := make([]models.AgentProfile, 0, len(goal.AgentIDs))
	for _, id := range goal.AgentIDs {
		if a, ok := byID[id]; ok {
			team = append(team, a)
		}
	}
	return team
}
