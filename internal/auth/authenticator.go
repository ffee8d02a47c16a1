package auth

import (
	"context"
	"errors"
	"log"

	"github.com/mrlokans/gatekeeper/internal/config"
	"github.com/mrlokans/gatekeeper/internal/database/users"
	"github.com/mrlokans/gatekeeper/internal/entities"
)

// Authenticator decides which requests need credentials and resolves the
// user a request belongs to.
type Authenticator interface {
	RequireAuth(path string, excludedPaths []string) bool
	// HasCredentials reports whether the request carries anything this
	// authenticator could resolve a user from.
	HasCredentials(req RequestContext) bool
	// CurrentUser returns the authenticated user or nil. It never fails;
	// lookup problems are logged and reported as no user.
	CurrentUser(ctx context.Context, req RequestContext) *entities.User
}

// Auth holds what both authenticators share: path exclusion and access to
// the Authorization header and session cookie.
type Auth struct {
	sessionName string
}

// NewAuth creates the shared part of an authenticator reading the session
// from the named cookie.
func NewAuth(sessionName string) Auth {
	if sessionName == "" {
		sessionName = config.DefaultSessionName
	}
	return Auth{sessionName: sessionName}
}

func (a Auth) RequireAuth(path string, excludedPaths []string) bool {
	return RequireAuth(path, excludedPaths)
}

// AuthorizationHeader returns the Authorization header value if present.
func (a Auth) AuthorizationHeader(req RequestContext) (string, bool) {
	if req == nil {
		return "", false
	}
	return req.Header("Authorization")
}

// SessionCookie returns the session cookie value if present.
func (a Auth) SessionCookie(req RequestContext) (string, bool) {
	if req == nil {
		return "", false
	}
	return req.Cookie(a.sessionName)
}

// SessionName returns the session cookie name.
func (a Auth) SessionName() string {
	return a.sessionName
}

func (a Auth) HasCredentials(req RequestContext) bool {
	_, hasHeader := a.AuthorizationHeader(req)
	_, hasCookie := a.SessionCookie(req)
	return hasHeader || hasCookie
}

// BasicAuth resolves users from "Authorization: Basic" credentials.
type BasicAuth struct {
	Auth
	service *Service
}

// NewBasicAuth creates a Basic credentials authenticator.
func NewBasicAuth(base Auth, service *Service) *BasicAuth {
	return &BasicAuth{Auth: base, service: service}
}

func (b *BasicAuth) CurrentUser(ctx context.Context, req RequestContext) *entities.User {
	header, ok := b.AuthorizationHeader(req)
	if !ok {
		return nil
	}
	email, password, err := ParseBasicAuth(header)
	if err != nil {
		return nil
	}

	user, err := b.service.Authenticate(ctx, email, password)
	if err != nil {
		if !errors.Is(err, ErrUserNotFound) && !errors.Is(err, ErrInvalidSecret) {
			log.Printf("basic auth: credential check failed: %v", err)
		}
		return nil
	}
	return user
}

// SessionAuth resolves users from the session cookie.
type SessionAuth struct {
	Auth
	sessions  SessionStore
	directory UserDirectory
}

// NewSessionAuth creates a session cookie authenticator.
func NewSessionAuth(base Auth, sessions SessionStore, directory UserDirectory) *SessionAuth {
	return &SessionAuth{Auth: base, sessions: sessions, directory: directory}
}

// CreateSession issues a session for userID.
func (s *SessionAuth) CreateSession(ctx context.Context, userID string) (string, error) {
	return s.sessions.CreateSession(ctx, userID)
}

// UserIDForSessionID returns the user id a session belongs to.
func (s *SessionAuth) UserIDForSessionID(ctx context.Context, sessionID string) (string, error) {
	return s.sessions.UserIDForSession(ctx, sessionID)
}

// DestroySession removes the session named by the request cookie. It
// returns false when the request has no cookie or the session is unknown.
func (s *SessionAuth) DestroySession(ctx context.Context, req RequestContext) bool {
	sessionID, ok := s.SessionCookie(req)
	if !ok || sessionID == "" {
		return false
	}
	if err := s.sessions.DeleteSession(ctx, sessionID); err != nil {
		if !errors.Is(err, ErrSessionNotFound) {
			log.Printf("session auth: failed to delete session: %v", err)
		}
		return false
	}
	return true
}

func (s *SessionAuth) CurrentUser(ctx context.Context, req RequestContext) *entities.User {
	sessionID, ok := s.SessionCookie(req)
	if !ok || sessionID == "" {
		return nil
	}

	userID, err := s.UserIDForSessionID(ctx, sessionID)
	if err != nil {
		if !errors.Is(err, ErrSessionNotFound) && !errors.Is(err, ErrInvalidSessionInput) {
			log.Printf("session auth: session lookup failed: %v", err)
		}
		return nil
	}

	user, err := s.directory.GetByID(ctx, userID)
	if err != nil {
		if !errors.Is(err, users.ErrNotFound) {
			log.Printf("session auth: user lookup failed: %v", err)
		}
		return nil
	}
	return user
}

var (
	_ Authenticator = (*BasicAuth)(nil)
	_ Authenticator = (*SessionAuth)(nil)
)
