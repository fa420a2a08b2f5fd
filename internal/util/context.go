package util

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/kleinsmk/Pode/internal/models"
)

// Gin context keys shared between middleware, handlers, and services.
const (
	CtxClientIP = "client_ip"
	CtxUser     = "user"
)

// IPFromContext extracts the client IP from a request context. It
// accepts either a gin context or any context carrying the value set
// by the ClientContext middleware.
func IPFromContext(ctx context.Context) string {
	if c, ok := ctx.(*gin.Context); ok {
		return c.ClientIP()
	}
	if ip, ok := ctx.Value(CtxClientIP).(string); ok {
		return ip
	}
	return ""
}

// WithClientIP returns a context carrying the client IP, for code
// running outside a gin handler (background jobs, tests).
func WithClientIP(ctx context.Context, ip string) context.Context {
	return context.WithValue(ctx, CtxClientIP, ip) //nolint:staticcheck
}

// UsernameFromContext extracts the authenticated principal's username
// from a gin context, or "" when the request is anonymous.
func UsernameFromContext(ctx context.Context) string {
	c, ok := ctx.(*gin.Context)
	if !ok {
		return ""
	}
	v, exists := c.Get(CtxUser)
	if !exists {
		return ""
	}
	if user, ok := v.(*models.PublicUser); ok {
		return user.Username
	}
	return ""
}
