package core

import "time"

// Recorder defines the interface for recording application metrics.
// Implementations include Metrics (Prometheus-based) and Noop.
type Recorder interface {
	// Authentication
	RecordAuthAttempt(method string, success bool, duration time.Duration)
	RecordParseFailure(method string, code int)
	RecordLogin(authSource string, success bool)
	RecordLogout(sessionDuration time.Duration)
	RecordExternalAPICall(provider string, duration time.Duration)

	// Session Management
	RecordSessionResume(method string)
	RecordSessionExpired(reason string, duration time.Duration)

	// Gauge Setters (for periodic updates)
	SetRegisteredUsersCount(count int)

	// Database Operations
	RecordDatabaseQueryError(operation string)
}

// MetricsStore defines the DB operations needed by CacheWrapper.
type MetricsStore interface {
	CountUsers() (int64, error)
}
