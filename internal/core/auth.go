package core

import "context"

// AuthResult holds the outcome of a credential validation attempt.
// A nil User marks the attempt as failed; Message and Code then carry
// the client-facing description and HTTP status. A zero Code means
// "unset" and is resolved to 401 by the middleware.
type AuthResult struct {
	User    any    // authenticated principal, nil on failure
	Message string // client-facing failure description
	Code    int    // HTTP status for the failure, 0 = unset
}

// OK reports whether the result carries an authenticated principal.
func (r *AuthResult) OK() bool {
	return r != nil && r.User != nil
}

// Failure builds a failed result. code may be zero to defer the
// status decision to the middleware default.
func Failure(message string, code int) *AuthResult {
	return &AuthResult{Message: message, Code: code}
}

// AuthState is the per-request authentication outcome the middleware
// attaches to the request context.
type AuthState struct {
	User            any
	IsAuthenticated bool
	Persist         bool // copy the state into the session store after the request
}

// CredentialValidator is the interface that username/password
// validation backends must implement.
type CredentialValidator interface {
	Validate(ctx context.Context, username, password string) (*AuthResult, error)
	Name() string
}
