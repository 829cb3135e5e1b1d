package models

// UploadTicket is a short-lived, single-use authorization for a direct
// client-to-object-storage write. Tickets are consumed exactly once; a
// failed PUT requires a fresh ticket, never a reuse.
type UploadTicket struct {
	UploadURL       string            `json:"uploadUrl"`
	ObjectKey       string            `json:"objectKey"`
	RequiredHeaders map[string]string `json:"requiredHeaders"`
}

// CampaignRequest is the payload sent to the generation API. Exactly one
// request is built per generation attempt and it is immutable once built.
// Field names follow the remote API's camelCase wire contract.
type CampaignRequest struct {
	Product             ProductInfo `json:"product" validate:"required"`
	TargetAudience      string      `json:"targetAudience"`
	BudgetRange         string      `json:"budgetRange"`
	TargetMarkets       []string    `json:"targetMarkets"`
	PlatformPreferences []string    `json:"platformPreferences"`
	CampaignObjectives  []string    `json:"campaignObjectives"`
	ObjectKey           string      `json:"objectKey,omitempty"`
	ImageURL            string      `json:"imageUrl,omitempty" validate:"required,url"`
}
