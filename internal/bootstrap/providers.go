package bootstrap

import (
	"log"

	"github.com/kleinsmk/Pode/internal/auth"
	"github.com/kleinsmk/Pode/internal/client"
	"github.com/kleinsmk/Pode/internal/config"
	"github.com/kleinsmk/Pode/internal/core"
)

// initializeHTTPAPIValidator creates the HTTP API credential validator
// when the configured auth mode calls for one
func initializeHTTPAPIValidator(cfg *config.Config, rec core.Recorder) *auth.HTTPAPIValidator {
	switch cfg.AuthMode {
	case config.AuthModeHTTPAPI:
		retryClient, err := client.NewRetryClient(client.Options{
			AuthMode:           cfg.HTTPAPIAuthMode,
			AuthSecret:         cfg.HTTPAPIAuthSecret,
			AuthHeader:         cfg.HTTPAPIAuthHeader,
			Timeout:            cfg.HTTPAPITimeout,
			InsecureSkipVerify: cfg.HTTPAPIInsecureSkipVerify,
			MaxRetries:         cfg.HTTPAPIMaxRetries,
			RetryDelay:         cfg.HTTPAPIRetryDelay,
			MaxRetryDelay:      cfg.HTTPAPIMaxRetryDelay,
		})
		if err != nil {
			log.Fatalf("Failed to create HTTP API auth client: %v", err)
		}
		log.Printf("HTTP API authentication enabled: %s", cfg.HTTPAPIURL)
		return auth.NewHTTPAPIValidator(cfg.HTTPAPIURL, retryClient, rec)
	default:
		return nil
	}
}
