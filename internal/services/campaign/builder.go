package campaign

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/ternarybob/arbor"

	"github.com/viralforge/studio/internal/models"
	"github.com/viralforge/studio/internal/services/upload"
)

// Builder assembles exactly one immutable CampaignRequest per generation
// attempt and resolves which file to upload, substituting a synthesized
// placeholder when the original bytes were lost.
type Builder struct {
	endpoints EndpointConfig
	validate  *validator.Validate
	logger    arbor.ILogger
}

// NewBuilder creates a campaign request builder.
func NewBuilder(endpoints EndpointConfig, logger arbor.ILogger) *Builder {
	return &Builder{
		endpoints: endpoints,
		validate:  validator.New(),
		logger:    logger,
	}
}

// ResolveFile picks the upload candidate from collected data. Only the
// first file of a multi-file selection is ever used. When the file list is
// empty or the first entry lacks a name, type, or bytes (the file object
// was serialized through a storage layer that cannot carry binary data), a
// placeholder is substituted. This is deliberate degraded-mode behavior,
// not an error. Returns the file and whether a substitution happened.
func (b *Builder) ResolveFile(data models.CollectedData) (models.UploadedFile, bool) {
	if len(data.Files) == 0 {
		b.logger.Warn().Msg("No files in collected data, substituting placeholder image")
		return upload.GeneratePlaceholder(), true
	}

	file := data.Files[0]
	if file.Name == "" || file.Type == "" || len(file.Data) == 0 {
		b.logger.Warn().
			Str("name", file.Name).
			Str("type", file.Type).
			Int("bytes", len(file.Data)).
			Msg("First file lost name/type/bytes across serialization, substituting placeholder image")
		return upload.GeneratePlaceholder(), true
	}

	return file, false
}

// Build produces the CampaignRequest and the endpoint it must be sent to.
// The request is validated before being returned; a validation failure here
// means the wizard state is incoherent and the run cannot proceed.
func (b *Builder) Build(data models.CollectedData, goal models.Goal, objectKey, imageURL string) (*models.CampaignRequest, string, error) {
	endpointURL, comprehensive := b.endpoints.ForGoal(goal)

	req := &models.CampaignRequest{
		Product:             data.Product,
		TargetAudience:      data.TargetAudience,
		BudgetRange:         data.BudgetRange,
		TargetMarkets:       data.TargetMarkets,
		PlatformPreferences: data.PlatformPreferences,
		CampaignObjectives:  data.CampaignObjectives,
		ImageURL:            imageURL,
	}
	// The comprehensive endpoint additionally wants the raw object key; the
	// basic endpoint works from the public image URL alone.
	if comprehensive {
		req.ObjectKey = objectKey
	}

	if err := b.validate.Struct(req); err != nil {
		return nil, "", fmt.Errorf("campaign request failed validation: %w", err)
	}

	b.logger.Debug().
		Str("goal", goal.Title).
		Bool("comprehensive", comprehensive).
		Str("endpoint", endpointURL).
		Msg("Campaign request built")

	return req, endpointURL, nil
}
