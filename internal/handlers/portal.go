package handlers

import (
	"net/http"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"github.com/kleinsmk/Pode/internal/auth"
	"github.com/kleinsmk/Pode/internal/models"
	"github.com/kleinsmk/Pode/internal/session"
	"github.com/kleinsmk/Pode/internal/templates"
)

// Portal renders the landing page for a signed-in user.
func (h *AuthHandler) Portal(c *gin.Context) {
	state, ok := auth.StateFrom(c)
	if !ok || !state.IsAuthenticated {
		c.HTML(http.StatusInternalServerError, "error.html", templates.ErrorPageProps{
			Status:  http.StatusInternalServerError,
			Message: "No authenticated user on this request.",
		})
		return
	}

	principal, ok := state.User.(*models.PublicUser)
	if !ok {
		c.HTML(http.StatusInternalServerError, "error.html", templates.ErrorPageProps{
			Status:  http.StatusInternalServerError,
			Message: "Unexpected principal type on this request.",
		})
		return
	}

	props := templates.PortalPageProps{
		Username:   principal.Username,
		FullName:   principal.FullName,
		Email:      principal.Email,
		Role:       principal.Role,
		AuthSource: principal.AuthSource,
	}
	if ts, ok := sessions.Default(c).Get(session.KeyLoginTime).(int64); ok && ts > 0 {
		props.LoginTime = time.Unix(ts, 0).Format("Jan 2, 2006 15:04:05 MST")
	}

	c.HTML(http.StatusOK, "portal.html", props)
}
