package middleware

import (
	"encoding/base64"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"github.com/kleinsmk/Pode/internal/util"
)

const (
	csrfTokenKey    = "csrf_token"
	csrfFormField   = "csrf_token"
	csrfHeaderField = "X-CSRF-Token"
)

// CSRF issues a per-session token and validates it on state-changing
// methods. The token is read from the csrf_token form field or the
// X-CSRF-Token header. Safe methods only mint and expose the token.
func CSRF() gin.HandlerFunc {
	return func(c *gin.Context) {
		s := sessions.Default(c)

		token, _ := s.Get(csrfTokenKey).(string)
		if token == "" {
			minted, err := mintCSRFToken()
			if err != nil {
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"error": "failed to initialize CSRF protection",
				})
				return
			}
			token = minted
			s.Set(csrfTokenKey, token)
			if err := s.Save(); err != nil {
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"error": "failed to save CSRF token",
				})
				return
			}
		}

		// Templates read the token from the request context.
		c.Set(csrfTokenKey, token)

		switch c.Request.Method {
		case http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch:
			submitted := c.PostForm(csrfFormField)
			if submitted == "" {
				submitted = c.GetHeader(csrfHeaderField)
			}
			if submitted == "" || submitted != token {
				c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
					"error": "CSRF token validation failed, refresh the page and try again",
				})
				return
			}
		}

		c.Next()
	}
}

func mintCSRFToken() (string, error) {
	b, err := util.CryptoRandomBytes(32)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(b), nil
}

// GetCSRFToken returns the token minted for this request, for embedding
// in forms.
func GetCSRFToken(c *gin.Context) string {
	if v, exists := c.Get(csrfTokenKey); exists {
		if token, ok := v.(string); ok {
			return token
		}
	}
	return ""
}
