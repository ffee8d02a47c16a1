package http

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/gatekeeper/internal/auth"
	"github.com/mrlokans/gatekeeper/internal/database/users"
)

// currentUserID is the path id that resolves to the authenticated user.
const currentUserID = "me"

// UsersController serves user records.
type UsersController struct {
	directory auth.UserDirectory
}

func NewUsersController(directory auth.UserDirectory) *UsersController {
	return &UsersController{directory: directory}
}

// Show returns the user with the :user_id path parameter, or the user
// resolved by the auth middleware when the id is "me".
func (uc *UsersController) Show(c *gin.Context) {
	userID := c.Param("user_id")

	if userID == currentUserID {
		user := auth.GetUser(c)
		if user == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
			return
		}
		c.JSON(http.StatusOK, user)
		return
	}

	user, err := uc.directory.GetByID(c.Request.Context(), userID)
	if err != nil {
		if !errors.Is(err, users.ErrNotFound) {
			log.Printf("users: lookup failed: %v", err)
		}
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		return
	}
	c.JSON(http.StatusOK, user)
}
