package metrics

import (
	"time"

	"github.com/kleinsmk/Pode/internal/core"
)

// Noop is a no-operation Recorder. All methods do nothing, providing
// zero overhead when metrics are disabled.
type Noop struct{}

// Ensure Noop implements core.Recorder at compile time
var _ core.Recorder = (*Noop)(nil)

// NewNoop creates a new no-operation metrics recorder
func NewNoop() *Noop {
	return &Noop{}
}

// Authentication - noop implementations
func (n *Noop) RecordAuthAttempt(method string, success bool, duration time.Duration) {}
func (n *Noop) RecordParseFailure(method string, code int)                            {}
func (n *Noop) RecordLogin(authSource string, success bool)                           {}
func (n *Noop) RecordLogout(sessionDuration time.Duration)                            {}
func (n *Noop) RecordExternalAPICall(provider string, duration time.Duration)         {}

// Session Management - noop implementations
func (n *Noop) RecordSessionResume(method string)                          {}
func (n *Noop) RecordSessionExpired(reason string, duration time.Duration) {}

// Gauge Setters - noop implementations
func (n *Noop) SetRegisteredUsersCount(count int) {}

// Database Operations - noop implementations
func (n *Noop) RecordDatabaseQueryError(operation string) {}
