package auth

import (
	"github.com/gin-gonic/gin"

	"github.com/kleinsmk/Pode/internal/util"
)

// stateKey is the gin context key the middleware publishes the
// per-request auth state under.
const stateKey = "auth_state"

// SetState attaches the request's auth state to the gin context and
// mirrors the principal under the shared user key for handler
// convenience.
func SetState(c *gin.Context, s *State) {
	c.Set(stateKey, s)
	if s != nil && s.User != nil {
		c.Set(util.CtxUser, s.User)
	}
}

// StateFrom returns the auth state attached to the request, if any.
func StateFrom(c *gin.Context) (*State, bool) {
	v, exists := c.Get(stateKey)
	if !exists {
		return nil, false
	}
	s, ok := v.(*State)
	if !ok || s == nil {
		return nil, false
	}
	return s, true
}

// ClearState removes any auth state from the request context.
func ClearState(c *gin.Context) {
	c.Set(stateKey, (*State)(nil))
}
