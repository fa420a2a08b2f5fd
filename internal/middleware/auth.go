package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kleinsmk/Pode/internal/auth"
	"github.com/kleinsmk/Pode/internal/core"
	"github.com/kleinsmk/Pode/internal/metrics"
	"github.com/kleinsmk/Pode/internal/session"
)

// AuthOptions configures one attachment site of the Auth middleware.
// The zero value authenticates every request with the named method and
// persists successful results to the session.
type AuthOptions struct {
	// Method names the registered authentication method to run.
	// Required unless the route is login- or logout-only.
	Method string

	// Sessionless disables both session resume and session persistence
	// for this route.
	Sessionless bool

	// IsLoginRoute lets the request through without credentials so a
	// login form can render. Any stale session auth state is cleared
	// first.
	IsLoginRoute bool

	// IsLogoutRoute drops the session and finalizes the response
	// without running any parser.
	IsLogoutRoute bool

	// FailureURL, when set, turns every failure into a redirect.
	FailureURL string

	// SuccessURL, when set, turns every success into a redirect.
	SuccessURL string
}

// Auth dispatches request authentication for one route. It resolves
// the configured method from the registry, delegates credential
// extraction to the method's parser, and reconciles the outcome with
// the session and the configured redirect URLs.
type Auth struct {
	registry *auth.Registry
	sessions session.Manager
	metrics  core.Recorder
	opts     AuthOptions
}

// NewAuth builds the middleware for one route. sessions may be nil
// when the engine carries no session middleware; the dispatcher then
// behaves as if Sessionless were set. rec may be nil.
func NewAuth(registry *auth.Registry, sessions session.Manager, rec core.Recorder, opts AuthOptions) *Auth {
	if rec == nil {
		rec = metrics.NewNoop()
	}
	return &Auth{
		registry: registry,
		sessions: sessions,
		metrics:  rec,
		opts:     opts,
	}
}

// Handler adapts the dispatcher to a gin handler chain.
func (a *Auth) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !a.Invoke(c) {
			c.Abort()
			return
		}
		c.Next()
	}
}

// Invoke runs the authentication flow for one request and reports
// whether handling should continue. False means the response has
// already been finalized.
//
// The decision order is fixed: logout first, then session resume,
// then login-route passthrough, and only then credential parsing.
func (a *Auth) Invoke(c *gin.Context) bool {
	if a.opts.IsLogoutRoute {
		auth.ClearState(c)
		if a.sessions != nil {
			if age, err := a.sessions.Drop(c); err == nil {
				a.metrics.RecordLogout(age)
			}
		}
		return a.resolve(c, http.StatusFound, "", nil)
	}

	if a.useSession() {
		if state, ok := a.sessions.AuthState(c); ok {
			auth.SetState(c, state)
			a.metrics.RecordSessionResume(a.opts.Method)
			return a.resolve(c, 0, "", nil)
		}
	}

	if a.opts.IsLoginRoute {
		if a.sessions != nil {
			_ = a.sessions.ExpireCookie(c)
		}
		return true
	}

	m, err := a.registry.Lookup(a.opts.Method)
	if err != nil {
		_ = c.AbortWithError(http.StatusInternalServerError, err)
		return false
	}

	start := time.Now()
	result, err := a.runParser(c, m)
	if err != nil {
		_ = c.Error(err)
		a.metrics.RecordAuthAttempt(m.Name, false, time.Since(start))
		return a.resolve(c, http.StatusInternalServerError, "", m)
	}

	if !result.OK() {
		code := result.Code
		if code == 0 {
			code = http.StatusUnauthorized
		}
		if code == http.StatusBadRequest {
			a.metrics.RecordParseFailure(m.Name, code)
		}
		a.metrics.RecordAuthAttempt(m.Name, false, time.Since(start))
		return a.resolve(c, code, result.Message, m)
	}

	state := &core.AuthState{
		User:            result.User,
		IsAuthenticated: true,
		Persist:         a.useSession(),
	}
	auth.SetState(c, state)
	if state.Persist {
		_ = a.sessions.SaveAuthState(c, state)
	}
	a.metrics.RecordAuthAttempt(m.Name, true, time.Since(start))
	return a.resolve(c, 0, "", m)
}

// runParser shields the dispatcher from panicking parsers and
// validators; a panic surfaces as an internal error, never a crash.
func (a *Auth) runParser(c *gin.Context, m *auth.Method) (result *auth.Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = fmt.Errorf("auth method %s: panic: %v", m.Name, r)
		}
	}()
	return m.Parser(c, m)
}

// resolve applies the shared status-resolution rule. A code > 0 walks
// the failure path: redirect to FailureURL when configured, otherwise
// answer with the code and description. Code 0 is the success path:
// redirect to SuccessURL when configured, otherwise let the request
// continue. Only the plain success outcome returns true.
func (a *Auth) resolve(c *gin.Context, code int, description string, m *auth.Method) bool {
	if code > 0 {
		if a.opts.FailureURL != "" {
			c.Redirect(http.StatusFound, a.opts.FailureURL)
			c.Abort()
			return false
		}
		if code == http.StatusUnauthorized && m != nil && m.Challenge != "" {
			c.Header("WWW-Authenticate", m.Challenge)
		}
		if description == "" {
			c.AbortWithStatus(code)
			return false
		}
		c.AbortWithStatusJSON(code, gin.H{"error": description})
		return false
	}

	if a.opts.SuccessURL != "" {
		c.Redirect(http.StatusFound, a.opts.SuccessURL)
		c.Abort()
		return false
	}
	return true
}

func (a *Auth) useSession() bool {
	return !a.opts.Sessionless && a.sessions != nil
}
