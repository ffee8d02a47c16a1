package auth

import (
	"context"
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/mrlokans/gatekeeper/internal/config"
)

func basicHeader(email, password string) string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(email+":"+password))
}

func requestWith(header, cookieName, cookieValue string) RequestContext {
	r := httptest.NewRequest(http.MethodGet, "/api/v1/users/me", nil)
	if header != "" {
		r.Header.Set("Authorization", header)
	}
	if cookieName != "" {
		r.AddCookie(&http.Cookie{Name: cookieName, Value: cookieValue})
	}
	return HTTPRequest{Request: r}
}

func TestAuth_RequestAccessors(t *testing.T) {
	a := NewAuth("")
	assert.Equal(t, config.DefaultSessionName, a.SessionName())

	req := requestWith("Basic dXNlcjpwYXNz", config.DefaultSessionName, "abc")

	header, ok := a.AuthorizationHeader(req)
	assert.True(t, ok)
	assert.Equal(t, "Basic dXNlcjpwYXNz", header)

	cookie, ok := a.SessionCookie(req)
	assert.True(t, ok)
	assert.Equal(t, "abc", cookie)
	assert.True(t, a.HasCredentials(req))

	empty := requestWith("", "", "")
	_, ok = a.AuthorizationHeader(empty)
	assert.False(t, ok)
	_, ok = a.SessionCookie(empty)
	assert.False(t, ok)
	assert.False(t, a.HasCredentials(empty))

	_, ok = a.AuthorizationHeader(nil)
	assert.False(t, ok)
	_, ok = a.SessionCookie(nil)
	assert.False(t, ok)
}

func TestAuth_SessionCookieUsesConfiguredName(t *testing.T) {
	a := NewAuth("sid")

	_, ok := a.SessionCookie(requestWith("", config.DefaultSessionName, "abc"))
	assert.False(t, ok)

	value, ok := a.SessionCookie(requestWith("", "sid", "abc"))
	assert.True(t, ok)
	assert.Equal(t, "abc", value)
}

func TestBasicAuth_CurrentUser(t *testing.T) {
	service, _ := setupService(t)
	ctx := context.Background()

	created, err := service.RegisterUser(ctx, "bob@example.com", "pass:with:colons")
	require.NoError(t, err)

	basic := NewBasicAuth(NewAuth(""), service)

	user := basic.CurrentUser(ctx, requestWith(basicHeader("bob@example.com", "pass:with:colons"), "", ""))
	require.NotNil(t, user)
	assert.Equal(t, created.ID, user.ID)

	failures := map[string]RequestContext{
		"no header":      requestWith("", "", ""),
		"bearer":         requestWith("Bearer abc", "", ""),
		"bad base64":     requestWith("Basic Holberton", "", ""),
		"no separator":   requestWith("Basic "+base64.StdEncoding.EncodeToString([]byte("bob@example.com")), "", ""),
		"unknown user":   requestWith(basicHeader("alice@example.com", "pass"), "", ""),
		"wrong password": requestWith(basicHeader("bob@example.com", "pass"), "", ""),
		"nil request":    nil,
	}
	for name, req := range failures {
		t.Run(name, func(t *testing.T) {
			assert.Nil(t, basic.CurrentUser(ctx, req))
		})
	}
}

func TestBasicAuth_DirectoryFailure(t *testing.T) {
	service := NewService(failingDirectory{}, NewHasher(bcrypt.MinCost, 1))
	basic := NewBasicAuth(NewAuth(""), service)

	assert.Nil(t, basic.CurrentUser(context.Background(), requestWith(basicHeader("bob@example.com", "x"), "", "")))
}

func TestSessionAuth_CurrentUser(t *testing.T) {
	service, repo := setupService(t)
	ctx := context.Background()

	created, err := service.RegisterUser(ctx, "bob@example.com", "secret")
	require.NoError(t, err)

	sessions := NewSessionAuth(NewAuth(""), NewMemorySessionStore(), repo)

	sessionID, err := sessions.CreateSession(ctx, created.ID)
	require.NoError(t, err)

	userID, err := sessions.UserIDForSessionID(ctx, sessionID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, userID)

	user := sessions.CurrentUser(ctx, requestWith("", config.DefaultSessionName, sessionID))
	require.NotNil(t, user)
	assert.Equal(t, "bob@example.com", user.Email)

	assert.Nil(t, sessions.CurrentUser(ctx, requestWith("", "", "")))
	assert.Nil(t, sessions.CurrentUser(ctx, requestWith("", config.DefaultSessionName, "")))
	assert.Nil(t, sessions.CurrentUser(ctx, requestWith("", config.DefaultSessionName, "unknown")))
	// Basic credentials are ignored in session mode.
	assert.Nil(t, sessions.CurrentUser(ctx, requestWith(basicHeader("bob@example.com", "secret"), "", "")))
}

func TestSessionAuth_SessionForDeletedUser(t *testing.T) {
	_, repo := setupService(t)
	ctx := context.Background()

	sessions := NewSessionAuth(NewAuth(""), NewMemorySessionStore(), repo)
	sessionID, err := sessions.CreateSession(ctx, "no-such-user")
	require.NoError(t, err)

	assert.Nil(t, sessions.CurrentUser(ctx, requestWith("", config.DefaultSessionName, sessionID)))
}

func TestSessionAuth_DirectoryFailure(t *testing.T) {
	ctx := context.Background()
	sessions := NewSessionAuth(NewAuth(""), NewMemorySessionStore(), failingDirectory{})

	sessionID, err := sessions.CreateSession(ctx, "user-1")
	require.NoError(t, err)

	assert.Nil(t, sessions.CurrentUser(ctx, requestWith("", config.DefaultSessionName, sessionID)))
}

func TestSessionAuth_DestroySession(t *testing.T) {
	ctx := context.Background()
	store := NewMemorySessionStore()
	sessions := NewSessionAuth(NewAuth(""), store, failingDirectory{})

	sessionID, err := sessions.CreateSession(ctx, "user-1")
	require.NoError(t, err)

	assert.False(t, sessions.DestroySession(ctx, requestWith("", "", "")))
	assert.False(t, sessions.DestroySession(ctx, requestWith("", config.DefaultSessionName, "unknown")))

	assert.True(t, sessions.DestroySession(ctx, requestWith("", config.DefaultSessionName, sessionID)))
	assert.Equal(t, 0, store.Len())
	assert.False(t, sessions.DestroySession(ctx, requestWith("", config.DefaultSessionName, sessionID)))
}

func TestSessionAuth_CreateSessionRequiresUser(t *testing.T) {
	sessions := NewSessionAuth(NewAuth(""), NewMemorySessionStore(), failingDirectory{})

	_, err := sessions.CreateSession(context.Background(), "")
	assert.ErrorIs(t, err, ErrInvalidSessionInput)
}
