package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"sync"
)

// sessionIDBytes is the amount of randomness in a session id (256 bits).
const sessionIDBytes = 32

// maxSessionIDAttempts bounds retries when a freshly generated id is taken.
const maxSessionIDAttempts = 3

var errSessionIDTaken = errors.New("session id already in use")

// SessionStore maps opaque session ids to user ids. Implementations must be
// safe for concurrent use; a CreateSession that returned must be visible to
// every later UserIDForSession.
type SessionStore interface {
	// CreateSession issues a new session id for userID.
	CreateSession(ctx context.Context, userID string) (string, error)
	// UserIDForSession returns the user id for sessionID or ErrSessionNotFound.
	UserIDForSession(ctx context.Context, sessionID string) (string, error)
	// DeleteSession removes sessionID. Deleting an unknown id returns ErrSessionNotFound.
	DeleteSession(ctx context.Context, sessionID string) error
}

// NewSessionID returns a hex encoded id drawn from crypto/rand.
func NewSessionID() (string, error) {
	b := make([]byte, sessionIDBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate session id: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// insertWithFreshID generates ids until insert accepts one that is not yet
// taken. insert must return errSessionIDTaken for an existing id.
func insertWithFreshID(insert func(id string) error) (string, error) {
	for attempt := 0; attempt < maxSessionIDAttempts; attempt++ {
		id, err := NewSessionID()
		if err != nil {
			return "", err
		}
		err = insert(id)
		if errors.Is(err, errSessionIDTaken) {
			continue
		}
		if err != nil {
			return "", err
		}
		return id, nil
	}
	return "", errSessionIDTaken
}

// MemorySessionStore keeps sessions in process memory. Sessions survive until
// DeleteSession or process restart. The zero value is not usable; create one
// with NewMemorySessionStore at startup and share it between handlers.
type MemorySessionStore struct {
	mu       sync.RWMutex
	sessions map[string]string
}

// NewMemorySessionStore creates an empty in-memory store.
func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{sessions: make(map[string]string)}
}

func (s *MemorySessionStore) CreateSession(_ context.Context, userID string) (string, error) {
	if userID == "" {
		return "", ErrInvalidSessionInput
	}
	return insertWithFreshID(func(id string) error {
		s.mu.Lock()
		defer s.mu.Unlock()
		if _, exists := s.sessions[id]; exists {
			return errSessionIDTaken
		}
		s.sessions[id] = userID
		return nil
	})
}

func (s *MemorySessionStore) UserIDForSession(_ context.Context, sessionID string) (string, error) {
	if sessionID == "" {
		return "", ErrInvalidSessionInput
	}
	s.mu.RLock()
	userID, ok := s.sessions[sessionID]
	s.mu.RUnlock()
	if !ok {
		return "", ErrSessionNotFound
	}
	return userID, nil
}

func (s *MemorySessionStore) DeleteSession(_ context.Context, sessionID string) error {
	if sessionID == "" {
		return ErrInvalidSessionInput
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[sessionID]; !ok {
		return ErrSessionNotFound
	}
	delete(s.sessions, sessionID)
	return nil
}

// Len returns the number of live sessions.
func (s *MemorySessionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
