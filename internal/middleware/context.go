package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/kleinsmk/Pode/internal/util"
)

// ClientContext stores per-request identity hints used by audit
// logging and session fingerprinting. ClientIP honors X-Forwarded-For
// subject to the engine's trusted proxy settings.
func ClientContext() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(util.CtxClientIP, c.ClientIP())
		c.Next()
	}
}
