package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kleinsmk/Pode/internal/core"
)

const (
	resultSuccess = "success"
	resultFailure = "failure"
)

// HTTPMetrics creates a Gin middleware that records HTTP metrics.
// Recorders other than *Metrics get a passthrough middleware.
func HTTPMetrics(rec core.Recorder) gin.HandlerFunc {
	m, ok := rec.(*Metrics)
	if !ok {
		return func(c *gin.Context) {
			c.Next()
		}
	}

	return func(c *gin.Context) {
		// Skip the metrics endpoint to avoid self-recording
		if c.Request.URL.Path == "/metrics" {
			c.Next()
			return
		}

		start := time.Now()

		m.HTTPRequestsInFlight.Inc()
		defer m.HTTPRequestsInFlight.Dec()

		c.Next()

		duration := time.Since(start).Seconds()
		method := c.Request.Method
		path := normalizePath(c.FullPath()) // route pattern, not raw path
		status := strconv.Itoa(c.Writer.Status())

		m.HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
		m.HTTPRequestDuration.WithLabelValues(method, path).Observe(duration)
	}
}

// normalizePath converts the actual request path to its route pattern
// (e.g., "/users/:id"), keeping label cardinality bounded.
func normalizePath(fullPath string) string {
	if fullPath == "" {
		return "unknown"
	}
	return fullPath
}

// RecordAuthAttempt records one full parse-and-validate cycle
func (m *Metrics) RecordAuthAttempt(method string, success bool, duration time.Duration) {
	result := resultSuccess
	if !success {
		result = resultFailure
	}
	m.AuthAttemptsTotal.WithLabelValues(method, result).Inc()
	m.AuthAttemptDuration.WithLabelValues(method).Observe(duration.Seconds())
}

// RecordParseFailure records a malformed credential submission
func (m *Metrics) RecordParseFailure(method string, code int) {
	m.AuthParseFailuresTotal.WithLabelValues(method, strconv.Itoa(code)).Inc()
}

// RecordLogin records a login attempt against a credential source
func (m *Metrics) RecordLogin(authSource string, success bool) {
	result := resultSuccess
	if !success {
		result = resultFailure
	}
	m.AuthLoginTotal.WithLabelValues(authSource, result).Inc()

	if success {
		m.SessionsCreatedTotal.Inc()
		m.SessionsActive.Inc()
	}
}

// RecordLogout records a logout and the session's lifetime
func (m *Metrics) RecordLogout(sessionDuration time.Duration) {
	m.AuthLogoutTotal.Inc()
	m.SessionsActive.Dec()
	m.SessionsExpiredTotal.WithLabelValues("logout").Inc()
	m.SessionDuration.Observe(sessionDuration.Seconds())
}

// RecordExternalAPICall records external API call duration
func (m *Metrics) RecordExternalAPICall(provider string, duration time.Duration) {
	m.ExternalAPIDuration.WithLabelValues(provider).Observe(duration.Seconds())
}

// RecordSessionResume records a request authenticated from the session
func (m *Metrics) RecordSessionResume(method string) {
	if method == "" {
		method = "unknown"
	}
	m.SessionsResumedTotal.WithLabelValues(method).Inc()
}

// RecordSessionExpired records a session that ended without a logout
func (m *Metrics) RecordSessionExpired(reason string, duration time.Duration) {
	m.SessionsActive.Dec()
	m.SessionsExpiredTotal.WithLabelValues(reason).Inc()
	m.SessionDuration.Observe(duration.Seconds())
}

// SetRegisteredUsersCount sets the user gauge (for periodic updates)
func (m *Metrics) SetRegisteredUsersCount(count int) {
	m.RegisteredUsers.Set(float64(count))
}

// RecordDatabaseQueryError records a database query error during metric collection
func (m *Metrics) RecordDatabaseQueryError(operation string) {
	m.DatabaseQueryErrorsTotal.WithLabelValues(operation).Inc()
}

// String formats the metrics for logging
func (m *Metrics) String() string {
	return "Metrics{Auth: active, Sessions: active, HTTP: enabled}"
}
