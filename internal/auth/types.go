package auth

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/kleinsmk/Pode/internal/core"
)

// Result is a type alias for core.AuthResult.
// Using an alias (not a new type) keeps all existing *auth.Result references
// valid without any changes at call sites.
type Result = core.AuthResult

// State is a type alias for core.AuthState.
type State = core.AuthState

// Parser extracts credentials from the incoming request and produces a
// Result, normally by handing them to the method's Validator. A non-nil
// error means the parser itself broke (bad wiring, a collaborator blew
// up), never that the request failed to authenticate; expected
// rejections come back as failure Results.
type Parser func(c *gin.Context, m *Method) (*Result, error)

// Validator judges an extracted username/password pair.
type Validator func(ctx context.Context, username, password string) (*Result, error)

// Method is a named authentication scheme: a Parser bound to the
// Validator it feeds. Methods are registered once during startup and
// read-only afterwards.
type Method struct {
	Name      string
	Parser    Parser
	Validator Validator

	// Challenge, when non-empty, is emitted as the WWW-Authenticate
	// header on direct 401 responses produced by this method.
	Challenge string
}
