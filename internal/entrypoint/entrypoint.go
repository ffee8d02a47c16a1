package entrypoint

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/mrlokans/gatekeeper/internal/auth"
	"github.com/mrlokans/gatekeeper/internal/config"
	"github.com/mrlokans/gatekeeper/internal/database"
	"github.com/mrlokans/gatekeeper/internal/database/users"
	http_controllers "github.com/mrlokans/gatekeeper/internal/http"
	"github.com/mrlokans/gatekeeper/internal/logging"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

func Serve(router *gin.Engine, cfg *config.Config, onShutdown ShutdownFunc) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("Starting server at %s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// kill (no param) sends SIGTERM, kill -2 sends SIGINT
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Printf("Shutdown Server, waiting %v before killing\n", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Server Shutdown: %v", err)
	}

	if onShutdown != nil {
		onShutdown(ctx)
	}

	log.Println("Server exiting")
}

// NewSessionStore builds the configured session backend. The returned
// closer releases backend resources and may be nil.
func NewSessionStore(cfg config.Auth, db *database.Database) (auth.SessionStore, io.Closer, error) {
	switch cfg.SessionStore {
	case config.SessionStoreMemory, "":
		return auth.NewMemorySessionStore(), nil, nil

	case config.SessionStoreSQLite:
		sqlDB, err := db.SQL()
		if err != nil {
			return nil, nil, fmt.Errorf("failed to get SQL DB for sessions: %w", err)
		}
		store, err := auth.NewSQLiteSessionStore(sqlDB, cfg.SessionLifetime)
		if err != nil {
			return nil, nil, err
		}
		return store, store, nil

	case config.SessionStoreRedis:
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Ping(ctx).Err(); err != nil {
			client.Close()
			return nil, nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.RedisAddr, err)
		}
		return auth.NewRedisSessionStore(client, cfg.RedisPrefix, cfg.SessionLifetime), client, nil

	default:
		return nil, nil, fmt.Errorf("unknown session store %q", cfg.SessionStore)
	}
}

// BuildRouterConfig wires the authenticator selected by cfg.Auth.Type.
func BuildRouterConfig(cfg *config.Config, db *database.Database, sessions auth.SessionStore, version string) (http_controllers.RouterConfig, error) {
	directory := users.NewRepository(db.DB)
	hasher := auth.NewHasher(cfg.Auth.BcryptCost, cfg.Auth.MaxConcurrentHashes)
	service := auth.NewService(directory, hasher)
	base := auth.NewAuth(cfg.Auth.SessionName)

	routerCfg := http_controllers.RouterConfig{
		AuthService:   service,
		ExcludedPaths: cfg.Auth.ExcludedPaths,
		Cookie: auth.CookieConfig{
			Secure:   cfg.Auth.SecureCookies,
			Lifetime: cfg.Auth.SessionLifetime,
		},
		Database: db,
		Version:  version,
	}

	switch cfg.Auth.Type {
	case config.AuthTypeBasic:
		routerCfg.Authenticator = auth.NewBasicAuth(base, service)
	case config.AuthTypeSession:
		if sessions == nil {
			return routerCfg, fmt.Errorf("session auth requires a session store")
		}
		routerCfg.SessionAuth = auth.NewSessionAuth(base, sessions, directory)
		routerCfg.Authenticator = routerCfg.SessionAuth
	default:
		return routerCfg, fmt.Errorf("unknown auth type %q", cfg.Auth.Type)
	}

	return routerCfg, nil
}

func Run(cfg *config.Config, version string) {
	log.SetOutput(logging.NewRedactingWriter(os.Stderr, cfg.Logging.RedactFields))
	gin.DefaultWriter = logging.NewRedactingWriter(os.Stdout, cfg.Logging.RedactFields)

	log.Printf("Starting Gatekeeper v%s", version)

	db, err := database.NewDatabase(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}()

	var sessions auth.SessionStore
	var sessionCloser io.Closer
	if cfg.Auth.Type == config.AuthTypeSession {
		sessions, sessionCloser, err = NewSessionStore(cfg.Auth, db)
		if err != nil {
			log.Fatalf("Failed to initialize session store: %v", err)
		}
		log.Printf("Authentication: session cookie %q, store %s", cfg.Auth.SessionName, cfg.Auth.SessionStore)
	} else {
		log.Printf("Authentication: %s", cfg.Auth.Type)
	}

	routerCfg, err := BuildRouterConfig(cfg, db, sessions, version)
	if err != nil {
		log.Fatalf("Failed to configure authentication: %v", err)
	}

	router := http_controllers.NewRouter(routerCfg)

	onShutdown := func(ctx context.Context) {
		if sessionCloser != nil {
			if err := sessionCloser.Close(); err != nil {
				log.Printf("Error closing session store: %v", err)
			}
		}
	}

	Serve(router, cfg, onShutdown)
}
