package scheduler

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/ternarybob/arbor"

	"github.com/viralforge/studio/internal/interfaces"
	"github.com/viralforge/studio/internal/services/events"
	"github.com/viralforge/studio/internal/storage/memory"
)

type recordingLatches struct {
	mu     sync.Mutex
	resets []string
}

func (r *recordingLatches) Reset(session string) {
	r.mu.Lock()
	r.resets = append(r.resets, session)
	r.mu.Unlock()
}

func TestSweep_ExpiresIdleSessions(t *testing.T) {
	storage := memory.NewSessionStorage()
	ctx := context.Background()
	storage.Set(ctx, "ses_old", "selectedGoal", `{"id":"go-viral"}`)
	storage.Set(ctx, "ses_old", "aiTeam", `["copywriter"]`)

	latches := &recordingLatches{}
	logger := arbor.NewLogger()
	eventSvc := events.NewService(logger)
	defer eventSvc.Close()

	var expired sync.Map
	eventSvc.Subscribe(interfaces.EventSessionExpired, func(ctx context.Context, event interfaces.Event) error {
		if payload, ok := event.Payload.(map[string]string); ok {
			expired.Store(payload["session"], true)
		}
		return nil
	})

	// TTL zero: everything already stored counts as idle
	time.Sleep(5 * time.Millisecond)
	janitor := NewJanitor(storage, latches, eventSvc, 0, logger)
	janitor.sweep()

	if _, err := storage.Get(ctx, "ses_old", "selectedGoal"); !errors.Is(err, interfaces.ErrKeyNotFound) {
		t.Error("Expected idle session to be removed")
	}

	latches.mu.Lock()
	resets := append([]string(nil), latches.resets...)
	latches.mu.Unlock()
	if len(resets) != 1 || resets[0] != "ses_old" {
		t.Errorf("Expected latch reset for ses_old, got %v", resets)
	}

	eventSvc.Close() // wait for async delivery
	if _, ok := expired.Load("ses_old"); !ok {
		t.Error("Expected session-expired event")
	}
}

func TestSweep_KeepsActiveSessions(t *testing.T) {
	storage := memory.NewSessionStorage()
	ctx := context.Background()
	storage.Set(ctx, "ses_live", "selectedGoal", `{"id":"go-viral"}`)

	janitor := NewJanitor(storage, nil, nil, time.Hour, arbor.NewLogger())
	janitor.sweep()

	if _, err := storage.Get(ctx, "ses_live", "selectedGoal"); err != nil {
		t.Errorf("Active session must survive the sweep: %v", err)
	}
}

func TestJanitor_StartRejectsBadSchedule(t *testing.T) {
	janitor := NewJanitor(memory.NewSessionStorage(), nil, nil, time.Hour, arbor.NewLogger())

	if err := janitor.Start("not a schedule"); err == nil {
		t.Error("Expected error for unparseable cron schedule")
	}
}

func TestJanitor_StartAndStop(t *testing.T) {
	janitor := NewJanitor(memory.NewSessionStorage(), nil, nil, time.Hour, arbor.NewLogger())

	if err := janitor.Start("@hourly"); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	janitor.Stop()
}
