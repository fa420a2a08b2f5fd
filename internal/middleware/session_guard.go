package middleware

import (
	"net/http"
	"net/url"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"github.com/kleinsmk/Pode/internal/core"
	"github.com/kleinsmk/Pode/internal/metrics"
	"github.com/kleinsmk/Pode/internal/session"
	"github.com/kleinsmk/Pode/internal/util"
)

const loginPath = "/login"

// SessionIdleTimeout enforces an inactivity window on authenticated
// sessions. seconds <= 0 disables the check. An expired session is
// cleared and the browser sent back to the login page with the
// original request preserved in the redirect parameter.
func SessionIdleTimeout(seconds int, rec core.Recorder) gin.HandlerFunc {
	if rec == nil {
		rec = metrics.NewNoop()
	}
	return func(c *gin.Context) {
		if seconds <= 0 {
			c.Next()
			return
		}

		s := sessions.Default(c)
		if ok, _ := s.Get(session.KeyAuthenticated).(bool); !ok {
			c.Next()
			return
		}

		now := time.Now().Unix()
		if last, ok := s.Get(session.KeyLastActivity).(int64); ok && now-last > int64(seconds) {
			rec.RecordSessionExpired("idle_timeout", sessionAge(s, now))
			destroySession(s)
			redirectToLogin(c, "session_timeout")
			return
		}

		s.Set(session.KeyLastActivity, now)
		_ = s.Save()
		c.Next()
	}
}

// SessionFingerprint binds authenticated sessions to the client's
// User-Agent, and optionally its IP. A mismatch means the cookie is
// being replayed from somewhere else; the session is destroyed and a
// fresh login forced.
func SessionFingerprint(enabled, includeIP bool, rec core.Recorder) gin.HandlerFunc {
	if rec == nil {
		rec = metrics.NewNoop()
	}
	return func(c *gin.Context) {
		if !enabled {
			c.Next()
			return
		}

		s := sessions.Default(c)
		if ok, _ := s.Get(session.KeyAuthenticated).(bool); !ok {
			c.Next()
			return
		}

		print := clientFingerprint(c, includeIP)
		stored, _ := s.Get(session.KeyFingerprint).(string)
		switch {
		case stored == "":
			// First request after login stamps the fingerprint.
			s.Set(session.KeyFingerprint, print)
			_ = s.Save()
		case stored != print:
			rec.RecordSessionExpired("fingerprint_mismatch", sessionAge(s, time.Now().Unix()))
			destroySession(s)
			redirectToLogin(c, "session_invalid")
			return
		}

		c.Next()
	}
}

func clientFingerprint(c *gin.Context, includeIP bool) string {
	seed := c.Request.UserAgent()
	if includeIP {
		seed += "|" + util.IPFromContext(c)
	}
	return util.SHA256Hex(seed)
}

func sessionAge(s sessions.Session, now int64) time.Duration {
	if login, ok := s.Get(session.KeyLoginTime).(int64); ok {
		return time.Duration(now-login) * time.Second
	}
	return 0
}

func destroySession(s sessions.Session) {
	s.Clear()
	s.Options(sessions.Options{Path: "/", MaxAge: -1})
	_ = s.Save()
}

func redirectToLogin(c *gin.Context, reason string) {
	q := url.Values{}
	q.Set("error", reason)
	q.Set("redirect", c.Request.RequestURI)
	c.Redirect(http.StatusFound, loginPath+"?"+q.Encode())
	c.Abort()
}
