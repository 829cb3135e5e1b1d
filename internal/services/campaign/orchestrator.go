package campaign

import (
	"context"
	"errors"
	"net/url"
	"sync"

	"github.com/ternarybob/arbor"

	"github.com/viralforge/studio/internal/interfaces"
	"github.com/viralforge/studio/internal/models"
	"github.com/viralforge/studio/internal/services/upload"
)

// Phase identifies one stage of the upload-and-generate pipeline. Phases
// are published on the event bus so the wizard UI can render progress.
type Phase string

const (
	PhaseValidating  Phase = "validating"
	PhaseUploading   Phase = "uploading"
	PhaseGenerating  Phase = "generating"
	PhaseNormalizing Phase = "normalizing"
	PhaseComplete    Phase = "complete"
)

// PhaseEvent is the payload published for pipeline phase transitions.
type PhaseEvent struct {
	Session string `json:"session"`
	Phase   Phase  `json:"phase"`
	Error   string `json:"error,omitempty"`
}

// ErrAlreadyRunning is returned when Run is invoked for a session that
// already has a generation in flight. This is the one-shot latch that
// tolerates duplicate Processing-step entries: the duplicate invocation
// performs no network calls at all.
var ErrAlreadyRunning = errors.New("campaign generation already in progress for this session")

// ErrAlreadyComplete is returned when Run is invoked for a session that
// already produced a result. An explicit wizard reset clears this state.
var ErrAlreadyComplete = errors.New("campaign already generated for this session; reset the wizard to start over")

// ResultStore persists the canonical result for the remainder of the
// session. Satisfied by the wizard state service.
type ResultStore interface {
	SaveResult(ctx context.Context, session string, result *models.CampaignResult) error
}

// CompletionFunc is invoked with the canonical result after it has been
// persisted. Callers that can outlive a run (a navigated-away view) should
// check their own liveness inside the callback.
type CompletionFunc func(result *models.CampaignResult)

type runState int

const (
	stateIdle runState = iota
	stateRunning
	stateDone
)

// Orchestrator drives the upload-and-generate pipeline for one session at a
// time per session: validate, ticket + PUT, build + generate, normalize,
// persist. It performs no automatic retries at any step; all retry is
// user-initiated and restarts from validation with a fresh ticket.
type Orchestrator struct {
	uploads *upload.Client
	api     *APIClient
	builder *Builder
	store   ResultStore
	events  interfaces.EventService
	logger  arbor.ILogger

	mu   sync.Mutex
	runs map[string]runState
}

// NewOrchestrator creates a pipeline orchestrator.
func NewOrchestrator(uploads *upload.Client, api *APIClient, builder *Builder, store ResultStore, events interfaces.EventService, logger arbor.ILogger) *Orchestrator {
	return &Orchestrator{
		uploads: uploads,
		api:     api,
		builder: builder,
		store:   store,
		events:  events,
		logger:  logger,
		runs:    make(map[string]runState),
	}
}

// Run executes the pipeline once for the session. Invariant: at most one
// in-flight generation per session; a second call while running returns
// ErrAlreadyRunning without touching the network. A failed run releases the
// latch so an explicit user retry can start over; a successful run latches
// until Reset.
func (o *Orchestrator) Run(ctx context.Context, session string, data models.CollectedData, goal models.Goal, done CompletionFunc) (*models.CampaignResult, error) {
	o.mu.Lock()
	switch o.runs[session] {
	case stateRunning:
		o.mu.Unlock()
		return nil, ErrAlreadyRunning
	case stateDone:
		o.mu.Unlock()
		return nil, ErrAlreadyComplete
	}
	o.runs[session] = stateRunning
	o.mu.Unlock()

	result, err := o.run(ctx, session, data, goal)

	o.mu.Lock()
	if err != nil {
		delete(o.runs, session)
	} else {
		o.runs[session] = stateDone
	}
	o.mu.Unlock()

	if err != nil {
		o.logger.Error().Err(err).Str("session", session).Str("goal", goal.Title).Msg("Campaign generation failed")
		o.publishError(ctx, session, err)
		return nil, err
	}

	o.publishPhase(ctx, session, PhaseComplete)
	if o.events != nil {
		o.events.Publish(ctx, interfaces.Event{
			Type:    interfaces.EventPipelineComplete,
			Payload: PhaseEvent{Session: session, Phase: PhaseComplete},
		})
	}
	if done != nil {
		done(result)
	}
	return result, nil
}

// Reset releases the session's latch. Called on explicit wizard reset so a
// new campaign can be generated.
func (o *Orchestrator) Reset(session string) {
	o.mu.Lock()
	delete(o.runs, session)
	o.mu.Unlock()
}

func (o *Orchestrator) run(ctx context.Context, session string, data models.CollectedData, goal models.Goal) (*models.CampaignResult, error) {
	// Step 1: resolve and validate the file. Validation failure substitutes
	// the placeholder rather than aborting; the product choice is to always
	// produce a result from local problems. Remote failures are never faked.
	o.publishPhase(ctx, session, PhaseValidating)
	file, substituted := o.builder.ResolveFile(data)
	if !substituted {
		if file.Type == "" {
			file.Type = upload.DetectMIME(file.Data)
		}
		if err := upload.Validate(upload.FileMeta{Name: file.Name, Size: int64(len(file.Data)), MIMEType: file.Type}); err != nil {
			o.logger.Warn().Err(err).Str("session", session).Msg("File failed validation, substituting placeholder image")
			file = upload.GeneratePlaceholder()
		}
	}

	// Step 2: ticket + direct PUT. Must complete before generation begins.
	// Any failure here halts the run with a typed error; the stored
	// campaignResult key stays unset.
	o.publishPhase(ctx, session, PhaseUploading)
	ticket, err := o.uploads.RequestUploadTicket(ctx, file.Name, file.Type)
	if err != nil {
		return nil, err
	}
	if err := o.uploads.PutObject(ctx, ticket, file.Data); err != nil {
		return nil, err
	}

	// Step 3: build the request and call the goal-selected endpoint.
	request, endpointURL, err := o.builder.Build(data, goal, ticket.ObjectKey, publicObjectURL(ticket))
	if err != nil {
		return nil, err
	}

	o.publishPhase(ctx, session, PhaseGenerating)
	body, err := o.api.Generate(ctx, endpointURL, request)
	if err != nil {
		return nil, err
	}

	// Step 4: normalize into the canonical shape.
	o.publishPhase(ctx, session, PhaseNormalizing)
	result, err := Normalize(body)
	if err != nil {
		return nil, err
	}

	// Step 5: persist for the remainder of the session.
	if err := o.store.SaveResult(ctx, session, result); err != nil {
		return nil, err
	}

	o.logger.Info().
		Str("session", session).
		Str("goal", goal.Title).
		Int("content_ideas", len(result.ContentIdeas)).
		Int("campaigns", len(result.Campaigns)).
		Msg("Campaign generation complete")

	return result, nil
}

// publicObjectURL derives the durable object URL from a presigned upload
// URL by stripping the signature query.
func publicObjectURL(ticket *models.UploadTicket) string {
	u, err := url.Parse(ticket.UploadURL)
	if err != nil {
		return ticket.UploadURL
	}
	u.RawQuery = ""
	u.Fragment = ""
	return u.String()
}

func (o *Orchestrator) publishPhase(ctx context.Context, session string, phase Phase) {
	if o.events == nil {
		return
	}
	o.events.Publish(ctx, interfaces.Event{
		Type:    interfaces.EventPipelinePhase,
		Payload: PhaseEvent{Session: session, Phase: phase},
	})
}

func (o *Orchestrator) publishError(ctx context.Context, session string, err error) {
	if o.events == nil {
		return
	}
	o.events.Publish(ctx, interfaces.Event{
		Type:    interfaces.EventPipelineError,
		Payload: PhaseEvent{Session: session, Error: err.Error()},
	})
}
