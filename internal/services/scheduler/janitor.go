// Package scheduler runs the wizard session janitor: sessions idle beyond
// the configured TTL are removed on a cron schedule so abandoned wizard
// state does not accumulate in storage.
package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/ternarybob/arbor"

	"github.com/viralforge/studio/internal/interfaces"
)

// LatchResetter releases per-session orchestration latches when a session
// is expired. Satisfied by the campaign orchestrator.
type LatchResetter interface {
	Reset(session string)
}

// Janitor expires stale wizard sessions on a schedule
type Janitor struct {
	cron    *cron.Cron
	storage interfaces.KeyValueStorage
	latches LatchResetter
	events  interfaces.EventService
	ttl     time.Duration
	logger  arbor.ILogger
}

// NewJanitor creates a session janitor
func NewJanitor(storage interfaces.KeyValueStorage, latches LatchResetter, events interfaces.EventService, ttl time.Duration, logger arbor.ILogger) *Janitor {
	return &Janitor{
		cron:    cron.New(),
		storage: storage,
		latches: latches,
		events:  events,
		ttl:     ttl,
		logger:  logger,
	}
}

// Start registers the sweep on the given cron schedule and starts the cron
// runner
func (j *Janitor) Start(schedule string) error {
	if _, err := j.cron.AddFunc(schedule, j.sweep); err != nil {
		return err
	}
	j.cron.Start()

	j.logger.Info().
		Str("schedule", schedule).
		Dur("ttl", j.ttl).
		Msg("Session janitor started")
	return nil
}

// Stop stops the cron runner and waits for a running sweep to finish
func (j *Janitor) Stop() {
	ctx := j.cron.Stop()
	<-ctx.Done()
}

func (j *Janitor) sweep() {
	ctx := context.Background()

	sessions, err := j.storage.Sessions(ctx)
	if err != nil {
		j.logger.Error().Err(err).Msg("Session sweep failed to list sessions")
		return
	}

	cutoff := time.Now().Add(-j.ttl)
	expired := 0

	for session, lastTouched := range sessions {
		if lastTouched.After(cutoff) {
			continue
		}
		if err := j.storage.DeleteSession(ctx, session); err != nil {
			j.logger.Warn().Err(err).Str("session", session).Msg("Failed to expire session")
			continue
		}
		if j.latches != nil {
			j.latches.Reset(session)
		}
		if j.events != nil {
			j.events.Publish(ctx, interfaces.Event{
				Type:    interfaces.EventSessionExpired,
				Payload: map[string]string{"session": session},
			})
		}
		expired++
	}

	if expired > 0 {
		j.logger.Info().Int("expired", expired).Int("total", len(sessions)).Msg("Session sweep complete")
	}
}
