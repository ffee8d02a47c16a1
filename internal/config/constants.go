package config

const (
	// DefaultDatabasePath is the default path for the user database
	DefaultDatabasePath = "./gatekeeper.db"

	// DefaultSessionName is the cookie name used when SESSION_NAME is unset
	DefaultSessionName = "_my_session_id"

	// DefaultBcryptCost is above bcrypt.DefaultCost (10); tests lower it to bcrypt.MinCost
	DefaultBcryptCost = 12

	// DefaultExcludedPaths lists routes reachable without credentials
	DefaultExcludedPaths = "/api/v1/status/,/api/v1/unauthorized/,/api/v1/forbidden/,/api/v1/auth_session/login/,/users/"
)
