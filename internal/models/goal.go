package models

// Goal represents a marketing objective the user selects in the first wizard
// step. The goal determines which AI team is assembled and which generation
// endpoint the processing pipeline targets.
type Goal struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Icon        string   `json:"icon,omitempty"`
	AgentIDs    []string `json:"agent_ids"`
}

// AgentProfile describes one member of the AI team shown during team assembly.
// Profiles are static catalog data; the actual agents run behind the remote
// generation API.
type AgentProfile struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Role      string `json:"role"`
	Specialty string `json:"specialty"`
	Avatar    string `json:"avatar,omitempty"`
}
