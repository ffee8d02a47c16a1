package auth

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"
)

// noExpiryHorizon stands in for "never" with stores that require an expiry.
const noExpiryHorizon = 100 * 365 * 24 * time.Hour

// SCSSessionStore persists sessions in any scs.Store. The session token is
// the session id and the stored payload is the user id.
type SCSSessionStore struct {
	store    scs.Store
	lifetime time.Duration

	// Serializes the existence check and commit of new ids.
	createMu sync.Mutex
}

// NewSCSSessionStore wraps an scs store. A zero lifetime keeps sessions
// until they are deleted.
func NewSCSSessionStore(store scs.Store, lifetime time.Duration) *SCSSessionStore {
	return &SCSSessionStore{store: store, lifetime: lifetime}
}

// NewSQLiteSessionStore creates the sessions table if needed and returns a
// store backed by scs/sqlite3store on sqlDB.
func NewSQLiteSessionStore(sqlDB *sql.DB, lifetime time.Duration) (*SCSSessionStore, error) {
	_, err := sqlDB.Exec(`CREATE TABLE IF NOT EXISTS sessions (
		token TEXT PRIMARY KEY,
		data BLOB NOT NULL,
		expiry REAL NOT NULL
	);
	CREATE INDEX IF NOT EXISTS sessions_expiry_idx ON sessions(expiry);`)
	if err != nil {
		return nil, fmt.Errorf("failed to create sessions table: %w", err)
	}
	return NewSCSSessionStore(sqlite3store.New(sqlDB), lifetime), nil
}

func (s *SCSSessionStore) expiry() time.Time {
	if s.lifetime <= 0 {
		return time.Now().Add(noExpiryHorizon)
	}
	return time.Now().Add(s.lifetime)
}

func (s *SCSSessionStore) CreateSession(ctx context.Context, userID string) (string, error) {
	if userID == "" {
		return "", ErrInvalidSessionInput
	}
	return insertWithFreshID(func(id string) error {
		s.createMu.Lock()
		defer s.createMu.Unlock()

		_, found, err := s.find(ctx, id)
		if err != nil {
			return err
		}
		if found {
			return errSessionIDTaken
		}
		return s.commit(ctx, id, []byte(userID), s.expiry())
	})
}

func (s *SCSSessionStore) UserIDForSession(ctx context.Context, sessionID string) (string, error) {
	if sessionID == "" {
		return "", ErrInvalidSessionInput
	}
	data, found, err := s.find(ctx, sessionID)
	if err != nil {
		return "", fmt.Errorf("failed to load session: %w", err)
	}
	if !found {
		return "", ErrSessionNotFound
	}
	return string(data), nil
}

func (s *SCSSessionStore) DeleteSession(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return ErrInvalidSessionInput
	}
	_, found, err := s.find(ctx, sessionID)
	if err != nil {
		return fmt.Errorf("failed to load session: %w", err)
	}
	if !found {
		return ErrSessionNotFound
	}
	if err := s.delete(ctx, sessionID); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// Close stops the background expiry cleanup of stores that run one.
func (s *SCSSessionStore) Close() error {
	if stopper, ok := s.store.(interface{ StopCleanup() }); ok {
		stopper.StopCleanup()
	}
	return nil
}

func (s *SCSSessionStore) find(ctx context.Context, token string) ([]byte, bool, error) {
	if cs, ok := s.store.(scs.CtxStore); ok {
		return cs.FindCtx(ctx, token)
	}
	return s.store.Find(token)
}

func (s *SCSSessionStore) commit(ctx context.Context, token string, b []byte, expiry time.Time) error {
	if cs, ok := s.store.(scs.CtxStore); ok {
		return cs.CommitCtx(ctx, token, b, expiry)
	}
	return s.store.Commit(token, b, expiry)
}

func (s *SCSSessionStore) delete(ctx context.Context, token string) error {
	if cs, ok := s.store.(scs.CtxStore); ok {
		return cs.DeleteCtx(ctx, token)
	}
	return s.store.Delete(token)
}
