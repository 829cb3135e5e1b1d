package interfaces

import (
	"context"
	"errors"
	"time"
)

// ErrKeyNotFound is returned when a key is not found in the session store
var ErrKeyNotFound = errors.New("key not found")

// SessionEntry represents a single wizard state entry with metadata
type SessionEntry struct {
	Session   string    `json:"session"`
	Key       string    `json:"key"`
	Value     string    `json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

// KeyValueStorage defines session-scoped key/value storage for wizard state.
// Values are opaque JSON strings owned by the wizard service; the storage
// layer never interprets them.
type KeyValueStorage interface {
	// Get retrieves a value by session and key, returns ErrKeyNotFound if absent
	Get(ctx context.Context, session, key string) (string, error)

	// Set inserts or updates a session-scoped key/value pair
	Set(ctx context.Context, session, key, value string) error

	// Delete removes a single key, returns ErrKeyNotFound if absent
	Delete(ctx context.Context, session, key string) error

	// DeleteSession removes every key belonging to a session
	DeleteSession(ctx context.Context, session string) error

	// List returns all entries for a session
	List(ctx context.Context, session string) ([]SessionEntry, error)

	// Sessions returns each known session with its most recent update time,
	// used by the cleanup janitor to expire stale sessions
	Sessions(ctx context.Context) (map[string]time.Time, error)
}
