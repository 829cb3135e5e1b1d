package models

// ContentIdea is a single post idea returned by the generation API.
// EngagementScore is a 0-100 prediction of relative engagement.
type ContentIdea struct {
	Topic           string   `json:"topic"`
	Platform        string   `json:"platform"`
	EngagementScore int      `json:"engagement_score"`
	Caption         string   `json:"caption"`
	Hashtags        []string `json:"hashtags"`
}

// CampaignPlan is a multi-week posting plan. Calendar maps a period label
// (e.g. "Week 1") to a description; Adaptations maps a platform name to
// platform-specific guidance.
type CampaignPlan struct {
	Name          string            `json:"name"`
	DurationWeeks int               `json:"duration_weeks"`
	PostsPerWeek  int               `json:"posts_per_week"`
	Platforms     []string          `json:"platforms"`
	Calendar      map[string]string `json:"calendar"`
	Adaptations   map[string]string `json:"adaptations"`
}

// GeneratedAssets groups auxiliary creative assets produced alongside the
// content ideas and campaign plans.
type GeneratedAssets struct {
	ImagePrompts   []string `json:"image_prompts"`
	VideoScripts   []string `json:"video_scripts"`
	EmailTemplates []string `json:"email_templates"`
	BlogOutlines   []string `json:"blog_outlines"`
}

// CampaignResult is the canonical normalized shape consumed by the display
// layer. Both generation endpoints are normalized into this one type; the
// display layer never branches on response shape. Collection fields are
// always non-nil after normalization.
type CampaignResult struct {
	ContentIdeas    []ContentIdea   `json:"content_ideas"`
	Campaigns       []CampaignPlan  `json:"campaigns"`
	GeneratedAssets GeneratedAssets `json:"generated_assets"`
}
