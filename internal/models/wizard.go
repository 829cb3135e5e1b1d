package models

// WizardStep identifies one screen of the linear campaign wizard.
type WizardStep string

const (
	StepGoalSelection  WizardStep = "goal_selection"
	StepTeamAssembly   WizardStep = "team_assembly"
	StepDataCollection WizardStep = "data_collection"
	StepProcessing     WizardStep = "processing"
	StepResults        WizardStep = "results"
)

// StepOrder lists the wizard steps in navigation order. Entering a step
// requires every key written by earlier steps to be present and parseable.
var StepOrder = []WizardStep{
	StepGoalSelection,
	StepTeamAssembly,
	StepDataCollection,
	StepProcessing,
	StepResults,
}

// UploadedFile is a file selected during data collection. Data carries the
// raw bytes; after a storage round-trip the bytes (and sometimes the name and
// type) may be lost, which the request builder tolerates by substituting a
// placeholder image.
type UploadedFile struct {
	Name string `json:"name"`
	Type string `json:"type"`
	Size int64  `json:"size,omitempty"`
	Data []byte `json:"data,omitempty"`
}

// ProductInfo describes the product being marketed.
type ProductInfo struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
	Category    string `json:"category"`
}

// CollectedData is everything gathered by the data-collection step. It is
// the primary input to the processing pipeline.
type CollectedData struct {
	Product             ProductInfo    `json:"product"`
	TargetAudience      string         `json:"target_audience"`
	BudgetRange         string         `json:"budget_range"`
	TargetMarkets       []string       `json:"target_markets"`
	PlatformPreferences []string       `json:"platform_preferences"`
	CampaignObjectives  []string       `json:"campaign_objectives"`
	Files               []UploadedFile `json:"files"`
}
