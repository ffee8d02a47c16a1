package http

import (
	"github.com/gin-gonic/gin"

	"github.com/mrlokans/gatekeeper/internal/auth"
)

// Pinger reports whether a backing store is reachable.
type Pinger interface {
	Ping() error
}

// RouterConfig holds all dependencies needed to build the router.
type RouterConfig struct {
	Authenticator auth.Authenticator
	AuthService   *auth.Service
	SessionAuth   *auth.SessionAuth // nil when requests authenticate with Basic credentials
	ExcludedPaths []string
	Cookie        auth.CookieConfig
	Database      Pinger
	Version       string
}

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	router.Use(auth.SecurityHeadersMiddleware())
	if cfg.Cookie.Secure {
		router.Use(auth.StrictTransportSecurityMiddleware(31536000))
	}

	router.Use(auth.NewMiddleware(cfg.Authenticator, cfg.ExcludedPaths).Handler())

	status := NewStatusController(cfg.Database, cfg.Version)
	router.GET("/api/v1/status", status.Status)
	router.GET("/api/v1/unauthorized", status.Unauthorized)
	router.GET("/api/v1/forbidden", status.Forbidden)

	usersController := NewUsersController(cfg.AuthService.Directory())
	router.GET("/api/v1/users/:user_id", usersController.Show)

	auth.NewAuthController(cfg.AuthService, cfg.SessionAuth, cfg.Cookie).RegisterRoutes(router)

	return router
}
