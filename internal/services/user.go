package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/kleinsmk/Pode/internal/auth"
	"github.com/kleinsmk/Pode/internal/core"
	"github.com/kleinsmk/Pode/internal/models"
	"github.com/kleinsmk/Pode/internal/store"
)

const (
	AuthModeLocal   = "local"
	AuthModeHTTPAPI = "http_api"
)

const invalidCredentialsMessage = "Invalid credentials supplied"

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrAuthProviderFailed = errors.New("authentication provider failed")
	ErrUserSyncFailed     = errors.New("failed to sync user from external provider")
)

// UserService is the credential validator wired into the auth
// registry. It routes each attempt to the right backend based on the
// user's auth source, syncs externally managed accounts into the local
// database, and records login metrics and audit events for every
// outcome.
type UserService struct {
	store    *store.Store
	local    core.CredentialValidator
	external core.CredentialValidator
	authMode string
	cache    core.Cache[models.User]
	cacheTTL time.Duration
	audit    *AuditService
	metrics  core.Recorder
}

func NewUserService(
	s *store.Store,
	local core.CredentialValidator,
	external core.CredentialValidator,
	authMode string,
	cache core.Cache[models.User],
	cacheTTL time.Duration,
	audit *AuditService,
	rec core.Recorder,
) *UserService {
	return &UserService{
		store:    s,
		local:    local,
		external: external,
		authMode: authMode,
		cache:    cache,
		cacheTTL: cacheTTL,
		audit:    audit,
		metrics:  rec,
	}
}

// Authenticate verifies a username/password pair. Rejected credentials
// come back as a failure Result; an error means a backend fault. The
// signature matches auth.Validator so the method can be registered
// directly.
func (s *UserService) Authenticate(
	ctx context.Context,
	username, password string,
) (*auth.Result, error) {
	user, err := s.lookupUser(ctx, username)
	if err != nil && !errors.Is(err, store.ErrRecordNotFound) {
		return nil, fmt.Errorf("user lookup failed: %w", err)
	}

	if err == nil {
		return s.authenticateExistingUser(ctx, user, password)
	}

	// Unknown username. In external auth mode the upstream API is
	// still consulted so first-time users get provisioned.
	if s.authMode == AuthModeHTTPAPI {
		return s.authenticateNewExternalUser(ctx, username, password)
	}

	s.recordLogin(ctx, AuthModeLocal, username, false, "unknown user")
	return &auth.Result{Message: invalidCredentialsMessage}, nil
}

// authenticateExistingUser routes by the user's auth_source field.
func (s *UserService) authenticateExistingUser(
	ctx context.Context,
	user *models.User,
	password string,
) (*auth.Result, error) {
	var (
		result *auth.Result
		err    error
		source string
	)

	switch user.AuthSource {
	case AuthModeHTTPAPI:
		if s.external == nil {
			return nil, fmt.Errorf("%w: http_api validator not configured", ErrAuthProviderFailed)
		}
		source = AuthModeHTTPAPI
		result, err = s.external.Validate(ctx, user.Username, password)

		// Refresh the local record on successful external auth.
		if err == nil && result.OK() {
			if synced, syncErr := s.syncExternalUser(ctx, result, AuthModeHTTPAPI); syncErr != nil {
				log.Printf("[Auth] Sync failed for user=%s: %v", user.Username, syncErr)
			} else {
				user = synced
			}
			result.User = user.Public()
		}

	default:
		if s.local == nil {
			return nil, fmt.Errorf("%w: local validator not configured", ErrAuthProviderFailed)
		}
		source = AuthModeLocal
		result, err = s.local.Validate(ctx, user.Username, password)
	}

	if err != nil {
		return nil, err
	}

	s.recordLogin(ctx, source, user.Username, result.OK(), result.Message)
	return result, nil
}

// authenticateNewExternalUser validates against the external API and
// provisions a local record on first success.
func (s *UserService) authenticateNewExternalUser(
	ctx context.Context,
	username, password string,
) (*auth.Result, error) {
	if s.external == nil {
		return nil, fmt.Errorf("%w: http_api validator not configured", ErrAuthProviderFailed)
	}

	result, err := s.external.Validate(ctx, username, password)
	if err != nil {
		return nil, err
	}
	if !result.OK() {
		s.recordLogin(ctx, AuthModeHTTPAPI, username, false, result.Message)
		return result, nil
	}

	user, err := s.syncExternalUser(ctx, result, AuthModeHTTPAPI)
	if err != nil {
		log.Printf("[Auth] Failed to create user=%s: %v", username, err)
		return nil, ErrUserSyncFailed
	}

	log.Printf("[Auth] New external user created: %s", username)
	result.User = user.Public()
	s.recordLogin(ctx, AuthModeHTTPAPI, username, true, "")
	return result, nil
}

// syncExternalUser creates or updates the local record from a
// successful external validation and drops any stale cache entry.
func (s *UserService) syncExternalUser(
	ctx context.Context,
	result *auth.Result,
	authSource string,
) (*models.User, error) {
	principal, ok := result.User.(*models.PublicUser)
	if !ok {
		return nil, fmt.Errorf("unexpected principal type %T", result.User)
	}

	user, err := s.store.UpsertExternalUser(
		principal.Username,
		principal.ExternalID,
		authSource,
		principal.Email,
		principal.FullName,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert external user: %w", err)
	}

	if s.cache != nil {
		_ = s.cache.Delete(ctx, userCacheKey(user.Username))
	}
	return user, nil
}

// lookupUser reads through the user cache when one is configured. The
// TTL is kept short so password and role changes take effect quickly.
func (s *UserService) lookupUser(ctx context.Context, username string) (*models.User, error) {
	if s.cache == nil {
		return s.store.GetUserByUsername(username)
	}

	user, err := s.cache.GetWithFetch(
		ctx,
		userCacheKey(username),
		s.cacheTTL,
		func(_ context.Context, _ string) (models.User, error) {
			u, err := s.store.GetUserByUsername(username)
			if err != nil {
				return models.User{}, err
			}
			return *u, nil
		},
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func userCacheKey(username string) string {
	return "user:" + username
}

// recordLogin feeds the login counter and the audit trail.
func (s *UserService) recordLogin(
	ctx context.Context,
	source, username string,
	success bool,
	message string,
) {
	if s.metrics != nil {
		s.metrics.RecordLogin(source, success)
	}
	if s.audit == nil {
		return
	}

	entry := AuditLogEntry{
		EventType:     models.EventAuthenticationSuccess,
		Severity:      models.SeverityInfo,
		ActorUsername: username,
		ResourceType:  models.ResourceUser,
		ResourceName:  username,
		Action:        "login",
		Success:       success,
		Details:       models.AuditDetails{"auth_source": source},
	}
	if !success {
		entry.EventType = models.EventAuthenticationFailure
		entry.Severity = models.SeverityWarning
		entry.ErrorMessage = message
	}
	s.audit.Log(ctx, entry)
}

// GetUserByID loads a user for display purposes.
func (s *UserService) GetUserByID(id string) (*models.User, error) {
	user, err := s.store.GetUserByID(id)
	if err != nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}
