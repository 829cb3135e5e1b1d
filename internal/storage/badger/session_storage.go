package badger

import (
	"context"
	"fmt"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/timshannon/badgerhold/v4"

	"github.com/viralforge/studio/internal/interfaces"
)

// sessionRecord is the stored representation of one wizard state entry.
// The badgerhold key is "<session>/<key>".
type sessionRecord struct {
	Session   string `badgerhold:"index"`
	Key       string
	Value     string
	UpdatedAt time.Time
}

// SessionStorage implements the KeyValueStorage interface for Badger
type SessionStorage struct {
	db     *BadgerDB
	logger arbor.ILogger
}

// NewSessionStorage creates a new SessionStorage instance
func NewSessionStorage(db *BadgerDB, logger arbor.ILogger) interfaces.KeyValueStorage {
	return &SessionStorage{
		db:     db,
		logger: logger,
	}
}

func recordID(session, key string) string {
	return session + "/" + key
}

// Get retrieves a value by session and key
func (s *SessionStorage) Get(ctx context.Context, session, key string) (string, error) {
	var rec sessionRecord
	err := s.db.Store().Get(recordID(session, key), &rec)
	if err == badgerhold.ErrNotFound {
		return "", interfaces.ErrKeyNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to get session key: %w", err)
	}

	return rec.Value, nil
}

// Set inserts or updates a session-scoped key/value pair
func (s *SessionStorage) Set(ctx context.Context, session, key, value string) error {
	rec := sessionRecord{
		Session:   session,
		Key:       key,
		Value:     value,
		UpdatedAt: time.Now(),
	}

	if err := s.db.Store().Upsert(recordID(session, key), &rec); err != nil {
		return fmt.Errorf("failed to set session key: %w", err)
	}

	return nil
}

// Delete removes a single session key
func (s *SessionStorage) Delete(ctx context.Context, session, key string) error {
	err := s.db.Store().Delete(recordID(session, key), &sessionRecord{})
	if err == badgerhold.ErrNotFound {
		return interfaces.ErrKeyNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to delete session key: %w", err)
	}

	return nil
}

// DeleteSession removes every key belonging to a session
func (s *SessionStorage) DeleteSession(ctx context.Context, session string) error {
	err := s.db.Store().DeleteMatching(&sessionRecord{}, badgerhold.Where("Session").Eq(session))
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	s.logger.Debug().Str("session", session).Msg("Deleted wizard session state")
	return nil
}

// List returns all entries for a session
func (s *SessionStorage) List(ctx context.Context, session string) ([]interfaces.SessionEntry, error) {
	var records []sessionRecord
	err := s.db.Store().Find(&records, badgerhold.Where("Session").Eq(session))
	if err != nil {
		return nil, fmt.Errorf("failed to list session keys: %w", err)
	}

	entries := make([]interfaces.SessionEntry, 0, len(records))
	for _, rec := range records {
		entries = append(entries, interfaces.SessionEntry{
			Session:   rec.Session,
			Key:       rec.Key,
			Value:     rec.Value,
			UpdatedAt: rec.UpdatedAt,
		})
	}

	return entries, nil
}

// Sessions returns each known session with its most recent update time
func (s *SessionStorage) Sessions(ctx context.Context) (map[string]time.Time, error) {
	var records []sessionRecord
	err := s.db.Store().Find(&records, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to scan sessions: %w", err)
	}

	sessions := make(map[string]time.Time)
	for _, rec := range records {
		if last, ok := sessions[rec.Session]; !ok || rec.UpdatedAt.After(last) {
			sessions[rec.Session] = rec.UpdatedAt
		}
	}

	return sessions, nil
}
