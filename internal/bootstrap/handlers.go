package bootstrap

import (
	"github.com/kleinsmk/Pode/internal/config"
	"github.com/kleinsmk/Pode/internal/handlers"
	"github.com/kleinsmk/Pode/internal/services"
)

// handlerSet holds all HTTP handlers
type handlerSet struct {
	auth  *handlers.AuthHandler
	audit *handlers.AuditHandler
}

// initializeHandlers creates all HTTP handlers
func initializeHandlers(
	cfg *config.Config,
	auditService *services.AuditService,
) handlerSet {
	return handlerSet{
		auth:  handlers.NewAuthHandler(cfg.BaseURL),
		audit: handlers.NewAuditHandler(auditService),
	}
}
