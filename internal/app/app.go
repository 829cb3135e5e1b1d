// Package app wires configuration, storage, services and handlers into one
// application instance.
package app

import (
	"context"
	"fmt"

	"github.com/ternarybob/arbor"

	"github.com/viralforge/studio/internal/common"
	"github.com/viralforge/studio/internal/handlers"
	"github.com/viralforge/studio/internal/httpclient"
	"github.com/viralforge/studio/internal/interfaces"
	"github.com/viralforge/studio/internal/services/campaign"
	"github.com/viralforge/studio/internal/services/catalog"
	"github.com/viralforge/studio/internal/services/events"
	"github.com/viralforge/studio/internal/services/scheduler"
	"github.com/viralforge/studio/internal/services/upload"
	"github.com/viralforge/studio/internal/services/wizard"
	badgerstore "github.com/viralforge/studio/internal/storage/badger"
)

// App holds the application's wired dependencies
type App struct {
	Config *common.Config
	Logger arbor.ILogger

	// Storage
	DB      *badgerstore.BadgerDB
	Storage interfaces.KeyValueStorage

	// Services
	EventService  interfaces.EventService
	WizardService *wizard.Service
	Catalog       *catalog.Service
	Uploads       *upload.Client
	Orchestrator  *campaign.Orchestrator
	Janitor       *scheduler.Janitor

	// Handlers
	APIHandler      *handlers.APIHandler
	WizardHandler   *handlers.WizardHandler
	CampaignHandler *handlers.CampaignHandler
	CatalogHandler  *handlers.CatalogHandler
	WSHandler       *handlers.WebSocketHandler
}

// New creates and wires the application
func New(config *common.Config, logger arbor.ILogger) (*App, error) {
	a := &App{
		Config: config,
		Logger: logger,
	}

	// Storage
	db, err := badgerstore.NewBadgerDB(logger, &config.Storage.Badger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}
	a.DB = db
	a.Storage = badgerstore.NewSessionStorage(db, logger)

	// Services
	a.EventService = events.NewService(logger)
	a.WizardService = wizard.NewService(a.Storage, logger)
	a.Catalog = catalog.NewService()

	apiClient := httpclient.NewDefaultHTTPClient(config.APITimeout())
	a.Uploads = upload.NewClient(config.API.TicketURL,
		upload.WithHTTPClient(apiClient),
		upload.WithLogger(logger),
	)

	endpoints := campaign.EndpointConfig{
		TicketURL:        config.API.TicketURL,
		BasicURL:         config.API.BasicURL,
		ComprehensiveURL: config.API.ComprehensiveURL,
	}
	builder := campaign.NewBuilder(endpoints, logger)
	generator := campaign.NewAPIClient(
		campaign.WithAPIHTTPClient(apiClient),
		campaign.WithAPILogger(logger),
		campaign.WithAPIRateLimit(config.API.RateLimit),
	)
	a.Orchestrator = campaign.NewOrchestrator(a.Uploads, generator, builder, a.WizardService, a.EventService, logger)

	a.Janitor = scheduler.NewJanitor(a.Storage, a.Orchestrator, a.EventService, config.SessionTTL(), logger)

	// Handlers
	a.APIHandler = handlers.NewAPIHandler(logger)
	a.WizardHandler = handlers.NewWizardHandler(a.WizardService, a.Orchestrator, logger)
	a.CampaignHandler = handlers.NewCampaignHandler(a.Orchestrator, a.WizardService, logger)
	a.CatalogHandler = handlers.NewCatalogHandler(a.Catalog, logger)
	a.WSHandler = handlers.NewWebSocketHandler(a.EventService, logger)

	logger.Info().
		Str("ticket_url", config.API.TicketURL).
		Str("basic_url", config.API.BasicURL).
		Str("comprehensive_url", config.API.ComprehensiveURL).
		Msg("Application initialized")

	return a, nil
}

// StartBackground starts background services (session janitor)
func (a *App) StartBackground() error {
	return a.Janitor.Start(a.Config.Wizard.CleanupSchedule)
}

// Close releases application resources
func (a *App) Close(ctx context.Context) error {
	if a.Janitor != nil {
		a.Janitor.Stop()
	}
	if a.EventService != nil {
		a.EventService.Close()
	}
	if a.DB != nil {
		if err := a.DB.Close(); err != nil {
			return fmt.Errorf("failed to close storage: %w", err)
		}
	}
	return nil
}
