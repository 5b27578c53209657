package store

import (
	"context"
	"errors"
	"time"

	"github.com/aussiebroadwan/leadcapture/internal/frontend/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface for browser sessions and the small
// per-session key/value table that stands in for browser storage.
type Store interface {
	Sessions() Sessions
	Values() Values

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction, committing when fn returns nil.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Sessions interface {
	// CreateSession inserts a new session (id is a ULID from idx).
	CreateSession(ctx context.Context, s domain.Session) error

	// GetSession returns a session by id, expired or not.
	GetSession(ctx context.Context, id string) (domain.Session, error)

	// TouchSession bumps last_seen_at and slides expires_at.
	TouchSession(ctx context.Context, id string, seen, expiresAt time.Time) error

	// DeleteSession removes a session; its values go with it.
	DeleteSession(ctx context.Context, id string) error

	// DeleteExpiredSessions removes sessions expired at now and returns their ids.
	DeleteExpiredSessions(ctx context.Context, now time.Time) ([]string, error)
}

type Values interface {
	// GetValue returns the value stored under key, or ErrNotFound.
	GetValue(ctx context.Context, sessionID, key string) ([]byte, error)

	// PutValue inserts or overwrites the value under key.
	PutValue(ctx context.Context, sessionID, key string, value []byte) error

	// DeleteValue removes key. Deleting a missing key is not an error.
	DeleteValue(ctx context.Context, sessionID, key string) error
}
