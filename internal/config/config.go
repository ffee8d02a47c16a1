package config

import (
	"runtime"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// AuthType selects how the current user is resolved for a request.
type AuthType string

const (
	AuthTypeBasic   AuthType = "basic_auth"   // Authorization: Basic header
	AuthTypeSession AuthType = "session_auth" // Session cookie (default)
)

// SessionStoreKind selects the backend holding session id -> user id mappings.
type SessionStoreKind string

const (
	SessionStoreMemory SessionStoreKind = "memory" // Process-local, lost on restart (default)
	SessionStoreSQLite SessionStoreKind = "sqlite" // Shares the application database
	SessionStoreRedis  SessionStoreKind = "redis"
)

type (
	Config struct {
		HTTP
		Global
		Database
		Auth
		Logging
	}

	HTTP struct {
		Port int32
		Host string
	}
	Global struct {
		ShutdownTimeoutInSeconds int
	}
	Database struct {
		Path string
	}
	Auth struct {
		Type          AuthType
		ExcludedPaths []string
		SessionName   string // Cookie carrying the session id
		SecureCookies bool

		SessionStore    SessionStoreKind
		SessionLifetime time.Duration // 0 keeps sessions until removed
		RedisAddr       string
		RedisPrefix     string

		BcryptCost          int
		MaxConcurrentHashes int // Upper bound on simultaneous bcrypt operations
	}
	Logging struct {
		RedactFields []string
	}
)

// splitList parses a comma separated env value, dropping blanks.
func splitList(raw string) []string {
	var out []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func NewConfig() *Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("port", 5000)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("shutdown_timeout_in_seconds", 2)
	v.SetDefault("database_path", DefaultDatabasePath)

	// Auth defaults
	v.SetDefault("auth_type", string(AuthTypeSession))
	v.SetDefault("auth_excluded_paths", DefaultExcludedPaths)
	v.SetDefault("session_name", DefaultSessionName)
	v.SetDefault("auth_secure_cookies", false)
	v.SetDefault("auth_session_store", string(SessionStoreMemory))
	v.SetDefault("auth_session_lifetime", "0s")
	v.SetDefault("auth_redis_addr", "localhost:6379")
	v.SetDefault("auth_redis_prefix", "gatekeeper:session:")
	v.SetDefault("auth_bcrypt_cost", DefaultBcryptCost)
	v.SetDefault("auth_max_concurrent_hashes", runtime.NumCPU())

	v.SetDefault("log_redact_fields", "email,password,secret,session_id")

	return &Config{
		HTTP: HTTP{
			Port: v.GetInt32("PORT"),
			Host: v.GetString("HOST"),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
		Database: Database{
			Path: v.GetString("DATABASE_PATH"),
		},
		Auth: Auth{
			Type:                AuthType(v.GetString("AUTH_TYPE")),
			ExcludedPaths:       splitList(v.GetString("AUTH_EXCLUDED_PATHS")),
			SessionName:         v.GetString("SESSION_NAME"),
			SecureCookies:       v.GetBool("AUTH_SECURE_COOKIES"),
			SessionStore:        SessionStoreKind(v.GetString("AUTH_SESSION_STORE")),
			SessionLifetime:     v.GetDuration("AUTH_SESSION_LIFETIME"),
			RedisAddr:           v.GetString("AUTH_REDIS_ADDR"),
			RedisPrefix:         v.GetString("AUTH_REDIS_PREFIX"),
			BcryptCost:          v.GetInt("AUTH_BCRYPT_COST"),
			MaxConcurrentHashes: v.GetInt("AUTH_MAX_CONCURRENT_HASHES"),
		},
		Logging: Logging{
			RedactFields: splitList(v.GetString("LOG_REDACT_FIELDS")),
		},
	}
}
