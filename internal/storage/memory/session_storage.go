// Package memory provides an in-memory KeyValueStorage implementation.
// It backs unit tests and development runs where a Badger database on disk
// is unnecessary.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/viralforge/studio/internal/interfaces"
)

type entry struct {
	value     string
	updatedAt time.Time
}

// SessionStorage is a map-backed KeyValueStorage
type SessionStorage struct {
	mu   sync.RWMutex
	data map[string]map[string]entry // session -> key -> entry
}

// NewSessionStorage creates an empty in-memory store
func NewSessionStorage() *SessionStorage {
	return &SessionStorage{
		data: make(map[string]map[string]entry),
	}
}

// Get retrieves a value by session and key
func (s *SessionStorage) Get(ctx context.Context, session, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys, ok := s.data[session]
	if !ok {
		return "", interfaces.ErrKeyNotFound
	}
	e, ok := keys[key]
	if !ok {
		return "", interfaces.ErrKeyNotFound
	}
	return e.value, nil
}

// Set inserts or updates a session-scoped key/value pair
func (s *SessionStorage) Set(ctx context.Context, session, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.data[session] == nil {
		s.data[session] = make(map[string]entry)
	}
	s.data[session][key] = entry{value: value, updatedAt: time.Now()}
	return nil
}

// Delete removes a single session key
func (s *SessionStorage) Delete(ctx context.Context, session, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	keys, ok := s.data[session]
	if !ok {
		return interfaces.ErrKeyNotFound
	}
	if _, ok := keys[key]; !ok {
		return interfaces.ErrKeyNotFound
	}
	delete(keys, key)
	return nil
}

// DeleteSession removes every key belonging to a session
func (s *SessionStorage) DeleteSession(ctx context.Context, session string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.data, session)
	return nil
}

// List returns all entries for a session
func (s *SessionStorage) List(ctx context.Context, session string) ([]interfaces.SessionEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var entries []interfaces.SessionEntry
	for key, e := range s.data[session] {
		entries = append(entries, interfaces.SessionEntry{
			Session:   session,
			Key:       key,
			Value:     e.value,
			UpdatedAt: e.updatedAt,
		})
	}
	return entries, nil
}

// Sessions returns each known session with its most recent update time
func (s *SessionStorage) Sessions(ctx context.Context) (map[string]time.Time, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sessions := make(map[string]time.Time)
	for session, keys := range s.data {
		for _, e := range keys {
			if last, ok := sessions[session]; !ok || e.updatedAt.After(last) {
				sessions[session] = e.updatedAt
			}
		}
	}
	return sessions, nil
}
