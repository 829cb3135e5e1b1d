package campaign

import (
	"encoding/json"
	"strconv"

	"github.com/viralforge/studio/internal/interfaces"
	"github.com/viralforge/studio/internal/models"
)

// Normalize converts a raw generation response body into the canonical
// CampaignResult. The two endpoints return divergent shapes:
//
//   - comprehensive: the payload is a JSON-encoded string nested under a
//     "content" field
//   - basic: fields are inline, sometimes nested under "parsedCampaigns"
//
// Field names vary between snake_case and camelCase across endpoints, so
// every lookup tolerates both. A payload that cannot be parsed raises
// *interfaces.MalformedResponseError (an API contract break, never
// swallowed). Missing collection fields default to empty slices so the
// display layer never branches on nil. Input order of contentIdeas and
// campaigns is preserved. Normalization is a pure function of the body:
// identical input yields deeply equal output.
func Normalize(body []byte) (*models.CampaignResult, error) {
	var root map[string]json.RawMessage
	if err := json.Unmarshal(body, &root); err != nil {
		return nil, &interfaces.MalformedResponseError{Reason: "response body is not a JSON object", Err: err}
	}

	payload, err := extractPayload(root)
	if err != nil {
		return nil, err
	}

	result := &models.CampaignResult{
		ContentIdeas: []models.ContentIdea{},
		Campaigns:    []models.CampaignPlan{},
		GeneratedAssets: models.GeneratedAssets{
			ImagePrompts:   []string{},
			VideoScripts:   []string{},
			EmailTemplates: []string{},
			BlogOutlines:   []string{},
		},
	}

	if raw := field(payload, "content_ideas", "contentIdeas"); raw != nil {
		ideas, err := decodeContentIdeas(raw)
		if err != nil {
			return nil, err
		}
		result.ContentIdeas = ideas
	}

	if raw := field(payload, "campaigns"); raw != nil {
		campaigns, err := decodeCampaigns(raw)
		if err != nil {
			return nil, err
		}
		result.Campaigns = campaigns
	}

	if raw := field(payload, "generated_assets", "generatedAssets"); raw != nil {
		assets, err := decodeAssets(raw)
		if err != nil {
			return nil, err
		}
		result.GeneratedAssets = assets
	}

	return result, nil
}

// extractPayload resolves the per-endpoint nesting down to the object that
// carries the campaign fields.
func extractPayload(root map[string]json.RawMessage) (map[string]json.RawMessage, error) {
	if raw, ok := root["content"]; ok {
		// Comprehensive endpoint: payload is a JSON string.
		var inner string
		if err := json.Unmarshal(raw, &inner); err == nil {
			var payload map[string]json.RawMessage
			if err := json.Unmarshal([]byte(inner), &payload); err != nil {
				return nil, &interfaces.MalformedResponseError{Reason: "content field is not a valid JSON document", Err: err}
			}
			return payload, nil
		}
		// Some deployments inline the object directly under content.
		var payload map[string]json.RawMessage
		if err := json.Unmarshal(raw, &payload); err != nil {
			return nil, &interfaces.MalformedResponseError{Reason: "content field is neither a JSON string nor an object", Err: err}
		}
		return payload, nil
	}

	if raw, ok := root["parsedCampaigns"]; ok {
		var payload map[string]json.RawMessage
		if err := json.Unmarshal(raw, &payload); err != nil {
			return nil, &interfaces.MalformedResponseError{Reason: "parsedCampaigns field is not an object", Err: err}
		}
		return payload, nil
	}

	return root, nil
}

func decodeContentIdeas(raw json.RawMessage) ([]models.ContentIdea, error) {
	var items []map[string]json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, &interfaces.MalformedResponseError{Reason: "content ideas field is not an array", Err: err}
	}

	ideas := make([]models.ContentIdea, 0, len(items))
	for _, item := range items {
		idea := models.ContentIdea{
			Topic:           stringField(item, "topic"),
			Platform:        stringField(item, "platform"),
			EngagementScore: intField(item, "engagement_score", "engagementScore"),
			Caption:         stringField(item, "caption"),
			Hashtags:        stringSliceField(item, "hashtags"),
		}
		ideas = append(ideas, idea)
	}
	return ideas, nil
}

func decodeCampaigns(raw json.RawMessage) ([]models.CampaignPlan, error) {
	var items []map[string]json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, &interfaces.MalformedResponseError{Reason: "campaigns field is not an array", Err: err}
	}

	campaigns := make([]models.CampaignPlan, 0, len(items))
	for _, item := range items {
		plan := models.CampaignPlan{
			Name:          stringField(item, "name"),
			DurationWeeks: intField(item, "duration_weeks", "durationWeeks"),
			PostsPerWeek:  intField(item, "posts_per_week", "postsPerWeek"),
			Platforms:     stringSliceField(item, "platforms"),
			Calendar:      stringMapField(item, "calendar", "content_calendar", "contentCalendar"),
			Adaptations:   stringMapField(item, "adaptations", "platform_adaptations", "platformAdaptations"),
		}
		campaigns = append(campaigns, plan)
	}
	return campaigns, nil
}

func decodeAssets(raw json.RawMessage) (models.GeneratedAssets, error) {
	var item map[string]json.RawMessage
	if err := json.Unmarshal(raw, &item); err != nil {
		return models.GeneratedAssets{}, &interfaces.MalformedResponseError{Reason: "generated assets field is not an object", Err: err}
	}

	return models.GeneratedAssets{
		ImagePrompts:   stringSliceField(item, "image_prompts", "imagePrompts"),
		VideoScripts:   stringSliceField(item, "video_scripts", "videoScripts"),
		EmailTemplates: stringSliceField(item, "email_templates", "emailTemplates"),
		BlogOutlines:   stringSliceField(item, "blog_outlines", "blogOutlines"),
	}, nil
}

// field returns the first present name from the object, nil if none match.
func field(m map[string]json.RawMessage, names ...string) json.RawMessage {
	for _, name := range names {
		if raw, ok := m[name]; ok {
			return raw
		}
	}
	return nil
}

func stringField(m map[string]json.RawMessage, names ...string) string {
	raw := field(m, names...)
	if raw == nil {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return s
}

// intField tolerates numbers arriving as JSON numbers or numeric strings.
func intField(m map[string]json.RawMessage, names ...string) int {
	raw := field(m, names...)
	if raw == nil {
		return 0
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return int(f)
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if n, err := strconv.Atoi(s); err == nil {
			return n
		}
	}
	return 0
}

func stringSliceField(m map[string]json.RawMessage, names ...string) []string {
	raw := field(m, names...)
	if raw == nil {
		return []string{}
	}
	var values []string
	if err := json.Unmarshal(raw, &values); err != nil {
		return []string{}
	}
	if values == nil {
		return []string{}
	}
	return values
}

func stringMapField(m map[string]json.RawMessage, names ...string) map[string]string {
	raw := field(m, names...)
	if raw == nil {
		return map[string]string{}
	}
	var values map[string]string
	if err := json.Unmarshal(raw, &values); err != nil {
		return map[string]string{}
	}
	if values == nil {
		return map[string]string{}
	}
	return values
}
