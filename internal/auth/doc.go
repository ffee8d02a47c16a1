// Package auth authenticates HTTP requests against a user directory.
//
// Two modes are supported, selected with AUTH_TYPE:
//   - "basic_auth": every request carries "Authorization: Basic <base64(email:password)>"
//     and the password is checked against the stored bcrypt hash
//   - "session_auth": a login endpoint issues an opaque session id in a cookie,
//     later requests are resolved through a SessionStore
//
// Paths listed in AUTH_EXCLUDED_PATHS skip authentication. A pattern ending in
// "*" matches by prefix, everything else must match the path exactly.
//
// # Configuration
//
//	AUTH_TYPE=session_auth          # or basic_auth
//	SESSION_NAME=_my_session_id     # cookie carrying the session id
//	AUTH_SESSION_STORE=memory       # memory, sqlite or redis
//	AUTH_SESSION_LIFETIME=0         # 0 keeps sessions until logout
//	AUTH_BCRYPT_COST=12
//	AUTH_MAX_CONCURRENT_HASHES=4    # bcrypt work running at once
//
// # Usage
//
//	service := auth.NewService(users.NewRepository(db.DB), auth.NewHasher(12, 4))
//	sessions := auth.NewSessionAuth(auth.NewAuth(""), auth.NewMemorySessionStore(), service.Directory())
//	router.Use(auth.NewMiddleware(sessions, excludedPaths).Handler())
//
// Extract the user in handlers:
//
//	user := auth.GetUser(c) // nil on excluded paths
package auth
