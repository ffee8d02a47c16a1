package auth

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/gatekeeper/internal/database/users"
)

// CookieConfig controls the session cookie written at login.
type CookieConfig struct {
	Secure   bool
	Lifetime time.Duration // 0 writes a browser-session cookie
}

// AuthController handles registration, login and logout endpoints.
type AuthController struct {
	service  *Service
	sessions *SessionAuth
	cookie   CookieConfig
}

// NewAuthController creates a new authentication controller. sessions may
// be nil when requests authenticate with Basic credentials; login and
// logout are then not served.
func NewAuthController(service *Service, sessions *SessionAuth, cookie CookieConfig) *AuthController {
	return &AuthController{
		service:  service,
		sessions: sessions,
		cookie:   cookie,
	}
}

// RegisterRoutes registers authentication routes on the router.
func (ac *AuthController) RegisterRoutes(router gin.IRouter) {
	router.POST("/users", ac.Register)
	if ac.sessions != nil {
		router.POST("/api/v1/auth_session/login", ac.Login)
		router.DELETE("/api/v1/auth_session/logout", ac.Logout)
	}
}

// Register creates a user from the email and password form fields.
func (ac *AuthController) Register(c *gin.Context) {
	email := c.PostForm("email")
	password := c.PostForm("password")
	if email == "" || password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "email and password required"})
		return
	}

	user, err := ac.service.RegisterUser(c.Request.Context(), email, password)
	if err != nil {
		switch {
		case errors.Is(err, ErrAlreadyExists):
			c.JSON(http.StatusBadRequest, gin.H{"message": "User " + email + " already exists"})
		case errors.Is(err, ErrSecretTooLong):
			c.JSON(http.StatusBadRequest, gin.H{"message": ErrSecretTooLong.Error()})
		default:
			log.Printf("register: failed to create user: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to create user"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"email": user.Email, "message": "user created"})
}

// Login checks the email and password form fields, starts a session and
// sets the session cookie.
func (ac *AuthController) Login(c *gin.Context) {
	ctx := c.Request.Context()

	email := c.PostForm("email")
	if email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email missing"})
		return
	}
	password := c.PostForm("password")
	if password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "password missing"})
		return
	}

	user, err := ac.service.Directory().FindByIdentifier(ctx, email)
	if err != nil {
		if !errors.Is(err, users.ErrNotFound) {
			log.Printf("login: user lookup failed: %v", err)
		}
		c.JSON(http.StatusNotFound, gin.H{"error": "no user found for this email"})
		return
	}

	if err := ac.service.CheckPassword(ctx, user, password); err != nil {
		if !errors.Is(err, ErrInvalidSecret) {
			log.Printf("login: password check failed: %v", err)
		}
		c.JSON(http.StatusUnauthorized, gin.H{"error": "wrong password"})
		return
	}

	sessionID, err := ac.sessions.CreateSession(ctx, user.ID)
	if err != nil {
		log.Printf("login: failed to create session: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create session"})
		return
	}

	ac.setSessionCookie(c, sessionID, int(ac.cookie.Lifetime/time.Second))
	c.JSON(http.StatusOK, user)
}

// Logout destroys the session named by the request cookie.
func (ac *AuthController) Logout(c *gin.Context) {
	if !ac.sessions.DestroySession(c.Request.Context(), GinRequest(c)) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		return
	}
	ac.setSessionCookie(c, "", -1)
	c.JSON(http.StatusOK, gin.H{})
}

func (ac *AuthController) setSessionCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(ac.sessions.SessionName(), value, maxAge, "/", "", ac.cookie.Secure, true)
}
