package auth

import (
	"context"
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/kleinsmk/Pode/internal/models"
)

// capturedCreds records what a parser handed to its validator.
type capturedCreds struct {
	called   bool
	username string
	password string
}

// capturingValidator accepts everything and records the credentials it saw.
func capturingValidator(captured *capturedCreds) Validator {
	return func(_ context.Context, username, password string) (*Result, error) {
		captured.called = true
		captured.username = username
		captured.password = password
		return &Result{User: &models.PublicUser{Username: username}}, nil
	}
}

// newParserContext builds a request-scoped gin context for parser tests.
func newParserContext(headers map[string]string) *gin.Context {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/protected", nil)
	for k, v := range headers {
		c.Request.Header.Set(k, v)
	}
	return c
}

// newFormContext builds a gin context carrying a posted urlencoded form.
func newFormContext(form url.Values) *gin.Context {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(
		http.MethodPost,
		"/login",
		strings.NewReader(form.Encode()),
	)
	c.Request.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return c
}

// basicHeader encodes credentials as a Basic Authorization header value.
func basicHeader(creds string) string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(creds))
}
