package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kleinsmk/Pode/internal/middleware"
	"github.com/kleinsmk/Pode/internal/templates"
	"github.com/kleinsmk/Pode/internal/util"
)

// errorMessages maps the error codes carried on /login?error=... to the
// text shown above the form. Unknown codes render nothing so the query
// string can't be used to inject arbitrary content.
var errorMessages = map[string]string{
	"session_timeout":     "Your session expired due to inactivity. Please sign in again.",
	"session_invalid":     "Your session could not be verified. Please sign in again.",
	"invalid_credentials": "Invalid username or password.",
}

// AuthHandler serves the interactive login flow. Credential checking
// itself happens in the auth middleware before these handlers run.
type AuthHandler struct {
	baseURL string
}

func NewAuthHandler(baseURL string) *AuthHandler {
	return &AuthHandler{baseURL: baseURL}
}

// LoginPage renders the login form. The auth middleware has already
// redirected away any request with a live session.
func (h *AuthHandler) LoginPage(c *gin.Context) {
	redirectTo := c.Query("redirect")
	if !util.IsRedirectSafe(redirectTo, h.baseURL) {
		redirectTo = ""
	}

	c.HTML(http.StatusOK, "login.html", templates.LoginPageProps{
		CSRFToken: middleware.GetCSRFToken(c),
		Error:     errorMessages[c.Query("error")],
		Redirect:  redirectTo,
	})
}

// LoginSuccess runs after the auth middleware has validated the posted
// credentials and saved the session. It only decides where to land.
func (h *AuthHandler) LoginSuccess(c *gin.Context) {
	redirectTo := c.PostForm("redirect")
	if redirectTo == "" || !util.IsRedirectSafe(redirectTo, h.baseURL) {
		redirectTo = "/portal"
	}
	c.Redirect(http.StatusFound, redirectTo)
}
