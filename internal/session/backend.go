package session

import (
	"fmt"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-contrib/sessions/memstore"
	redisstore "github.com/gin-contrib/sessions/redis"

	"github.com/kleinsmk/Pode/internal/config"
)

// NewBackend builds the sessions.Store named by cfg.SessionBackend.
// Cookie is the default and needs no external service; memstore keeps
// sessions in process memory; redis shares them across instances.
func NewBackend(cfg *config.Config) (sessions.Store, error) {
	var (
		store sessions.Store
		err   error
	)

	switch cfg.SessionBackend {
	case "", config.SessionBackendCookie:
		store = cookie.NewStore([]byte(cfg.SessionSecret))
	case config.SessionBackendMemory:
		store = memstore.NewStore([]byte(cfg.SessionSecret))
	case config.SessionBackendRedis:
		store, err = redisstore.NewStore(10, "tcp", cfg.RedisAddr, "", cfg.RedisPassword, []byte(cfg.SessionSecret))
		if err != nil {
			return nil, fmt.Errorf("session: redis backend: %w", err)
		}
	default:
		return nil, fmt.Errorf("session: unknown backend %q", cfg.SessionBackend)
	}

	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   cfg.SessionMaxAge,
		HttpOnly: true,
		Secure:   cfg.IsProduction,
		SameSite: http.SameSiteLaxMode,
	})
	return store, nil
}
