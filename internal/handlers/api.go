package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kleinsmk/Pode/internal/auth"
	"github.com/kleinsmk/Pode/internal/models"
)

// Whoami returns the principal attached to the request as JSON. It sits
// behind the auth middleware, so a missing state means broken wiring.
func Whoami(c *gin.Context) {
	state, ok := auth.StateFrom(c)
	if !ok || !state.IsAuthenticated {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "no authentication state on request"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": state.User})
}

// KeyInfo reports which service principal the presented API key maps to.
func KeyInfo(c *gin.Context) {
	state, ok := auth.StateFrom(c)
	if !ok || !state.IsAuthenticated {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "no authentication state on request"})
		return
	}

	principal, ok := state.User.(*models.PublicUser)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "unexpected principal type"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"key_owner":   principal.Username,
		"role":        principal.Role,
		"auth_source": principal.AuthSource,
	})
}
