package session

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"github.com/kleinsmk/Pode/internal/core"
	"github.com/kleinsmk/Pode/internal/models"
)

// Session keys. Every value stays within gob's primitive set so all
// gin-contrib/sessions backends can serialize them without type
// registration; the principal rides as JSON bytes for the same reason.
const (
	KeyPrincipal     = "auth_principal"
	KeyAuthenticated = "auth_ok"
	KeyLoginTime     = "login_time"
	KeyLastActivity  = "last_activity"
	KeyFingerprint   = "auth_fingerprint"
)

// Manager is the session collaborator used by the auth middleware.
// Callers issue semantic commands only; how authentication state maps
// onto the underlying backend is this package's concern.
type Manager interface {
	// AuthState restores the persisted authentication state, if any.
	AuthState(c *gin.Context) (*core.AuthState, bool)

	// SaveAuthState persists a freshly authenticated state and stamps
	// login and last-activity times.
	SaveAuthState(c *gin.Context, state *core.AuthState) error

	// Drop deletes all session data and expires the cookie, returning
	// how long the session had been alive.
	Drop(c *gin.Context) (time.Duration, error)

	// ExpireCookie replaces the session contents with an empty set so
	// the next login starts fresh. The cookie itself survives, which
	// keeps CSRF tokens issued alongside a login form working.
	ExpireCookie(c *gin.Context) error

	// Touch refreshes the last-activity timestamp.
	Touch(c *gin.Context) error
}

// GinManager implements Manager over gin-contrib/sessions. It expects
// the sessions middleware to be installed on the engine.
type GinManager struct{}

func NewGinManager() *GinManager { return &GinManager{} }

func (g *GinManager) AuthState(c *gin.Context) (*core.AuthState, bool) {
	s := sessions.Default(c)
	ok, _ := s.Get(KeyAuthenticated).(bool)
	if !ok {
		return nil, false
	}
	raw, _ := s.Get(KeyPrincipal).([]byte)
	if len(raw) == 0 {
		return nil, false
	}
	var user models.PublicUser
	if err := json.Unmarshal(raw, &user); err != nil {
		return nil, false
	}
	return &core.AuthState{User: &user, IsAuthenticated: true, Persist: true}, true
}

func (g *GinManager) SaveAuthState(c *gin.Context, state *core.AuthState) error {
	raw, err := json.Marshal(state.User)
	if err != nil {
		return fmt.Errorf("session: encode principal: %w", err)
	}

	s := sessions.Default(c)
	now := time.Now().Unix()
	s.Set(KeyPrincipal, raw)
	s.Set(KeyAuthenticated, state.IsAuthenticated)
	s.Set(KeyLoginTime, now)
	s.Set(KeyLastActivity, now)
	if err := s.Save(); err != nil {
		return fmt.Errorf("session: save auth state: %w", err)
	}
	return nil
}

func (g *GinManager) Drop(c *gin.Context) (time.Duration, error) {
	s := sessions.Default(c)

	var age time.Duration
	if ts, ok := s.Get(KeyLoginTime).(int64); ok && ts > 0 {
		age = time.Since(time.Unix(ts, 0))
	}

	s.Clear()
	s.Options(sessions.Options{Path: "/", MaxAge: -1})
	if err := s.Save(); err != nil {
		return age, fmt.Errorf("session: drop: %w", err)
	}
	return age, nil
}

func (g *GinManager) ExpireCookie(c *gin.Context) error {
	s := sessions.Default(c)
	s.Clear()
	if err := s.Save(); err != nil {
		return fmt.Errorf("session: expire: %w", err)
	}
	return nil
}

func (g *GinManager) Touch(c *gin.Context) error {
	s := sessions.Default(c)
	s.Set(KeyLastActivity, time.Now().Unix())
	if err := s.Save(); err != nil {
		return fmt.Errorf("session: touch: %w", err)
	}
	return nil
}
