package http

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

type StatusResponse struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
}

type StatusController struct {
	db      Pinger
	version string
}

func NewStatusController(db Pinger, version string) *StatusController {
	return &StatusController{
		db:      db,
		version: version,
	}
}

// Status reports "OK" while the user database is reachable.
func (s *StatusController) Status(c *gin.Context) {
	if s.db != nil {
		if err := s.db.Ping(); err != nil {
			log.Printf("status: database ping failed: %v", err)
			c.JSON(http.StatusServiceUnavailable, StatusResponse{Status: "unavailable", Version: s.version})
			return
		}
	}
	c.JSON(http.StatusOK, StatusResponse{Status: "OK", Version: s.version})
}

// Unauthorized always answers 401, for clients testing error handling.
func (s *StatusController) Unauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
}

// Forbidden always answers 403.
func (s *StatusController) Forbidden(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
}
