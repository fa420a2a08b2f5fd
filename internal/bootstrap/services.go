package bootstrap

import (
	"fmt"
	"log"

	"github.com/kleinsmk/Pode/internal/auth"
	"github.com/kleinsmk/Pode/internal/config"
	"github.com/kleinsmk/Pode/internal/core"
	"github.com/kleinsmk/Pode/internal/models"
	"github.com/kleinsmk/Pode/internal/services"
	"github.com/kleinsmk/Pode/internal/store"
)

// initializeServices creates all business logic services
func initializeServices(
	cfg *config.Config,
	db *store.Store,
	userCache core.Cache[models.User],
	auditService *services.AuditService,
	prometheusMetrics core.Recorder,
) *services.UserService {
	// Initialize credential validators
	localValidator := auth.NewLocalValidator(db)

	// Keep a nil *HTTPAPIValidator out of the interface field.
	var externalValidator core.CredentialValidator
	if v := initializeHTTPAPIValidator(cfg, prometheusMetrics); v != nil {
		externalValidator = v
	}

	return services.NewUserService(
		db,
		localValidator,
		externalValidator,
		cfg.AuthMode,
		userCache,
		cfg.UserCacheTTL,
		auditService,
		prometheusMetrics,
	)
}

// initializeAuthRegistry registers the authentication methods routes
// refer to by name
func initializeAuthRegistry(
	cfg *config.Config,
	userService *services.UserService,
) (*auth.Registry, error) {
	registry := auth.NewRegistry()

	form := auth.NewForm("login", userService.Authenticate, auth.FormOptions{})
	if err := registry.Register(form); err != nil {
		return nil, fmt.Errorf("failed to register login method: %w", err)
	}

	basic := auth.NewBasic("basic", userService.Authenticate, auth.BasicOptions{Realm: "Pode"})
	if err := registry.Register(basic); err != nil {
		return nil, fmt.Errorf("failed to register basic method: %w", err)
	}

	if cfg.APIKeyEnabled {
		keyValidator := auth.NewStaticKeyValidator(cfg.APIKeyHash, cfg.APIKeySalt, &models.PublicUser{
			Username:   cfg.APIKeyOwner,
			Role:       "service",
			AuthSource: "api_key",
		})
		apiKey := auth.NewAPIKey("api_key", keyValidator.Validate, auth.APIKeyOptions{
			Header: cfg.APIKeyHeader,
		})
		if err := registry.Register(apiKey); err != nil {
			return nil, fmt.Errorf("failed to register api_key method: %w", err)
		}
		log.Printf("API key authentication enabled (header: %s)", cfg.APIKeyHeader)
	}

	log.Printf("Registered auth methods: %v", registry.Names())
	return registry, nil
}
