package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kleinsmk/Pode/internal/auth"
	"github.com/kleinsmk/Pode/internal/models"
)

// RequireAdmin rejects requests whose authenticated principal lacks the
// admin role. It must run after the auth middleware.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		state, ok := auth.StateFrom(c)
		if !ok || !state.IsAuthenticated {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "authentication required",
			})
			return
		}

		principal, ok := state.User.(*models.PublicUser)
		if !ok || !principal.IsAdmin() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": "admin privileges required",
			})
			return
		}

		c.Next()
	}
}
