package bootstrap

import (
	"log"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/kleinsmk/Pode/internal/auth"
	"github.com/kleinsmk/Pode/internal/config"
	"github.com/kleinsmk/Pode/internal/core"
	"github.com/kleinsmk/Pode/internal/handlers"
	"github.com/kleinsmk/Pode/internal/metrics"
	"github.com/kleinsmk/Pode/internal/middleware"
	"github.com/kleinsmk/Pode/internal/session"
	"github.com/kleinsmk/Pode/internal/store"
	"github.com/kleinsmk/Pode/internal/templates"
)

// setupRouter configures the Gin router with all routes and middleware
func setupRouter(
	cfg *config.Config,
	db *store.Store,
	registry *auth.Registry,
	h handlerSet,
	prometheusMetrics core.Recorder,
) (*gin.Engine, error) {
	// Setup Gin mode
	setupGinMode(cfg)
	r := gin.New()

	// Setup middleware
	r.Use(metrics.HTTPMetrics(prometheusMetrics))
	r.Use(gin.Logger(), gin.Recovery())
	r.Use(middleware.ClientContext())

	// Setup session middleware
	if err := setupSessionMiddleware(r, cfg, prometheusMetrics); err != nil {
		return nil, err
	}

	// Embedded page templates
	r.SetHTMLTemplate(templates.Load())

	// Health check endpoint
	r.GET("/health", createHealthCheckHandler(db))

	// Setup metrics endpoint
	setupMetricsEndpoint(r, cfg)

	// Setup all routes
	setupAllRoutes(r, cfg, registry, h, prometheusMetrics)

	// Log server startup info
	logServerStartup(cfg)

	return r, nil
}

// setupSessionMiddleware configures session handling middleware
func setupSessionMiddleware(r *gin.Engine, cfg *config.Config, rec core.Recorder) error {
	sessionStore, err := session.NewBackend(cfg)
	if err != nil {
		return err
	}
	r.Use(sessions.Sessions("pode_session", sessionStore))
	r.Use(middleware.SessionIdleTimeout(cfg.SessionIdleTimeout, rec))
	r.Use(middleware.SessionFingerprint(cfg.SessionFingerprint, cfg.SessionFingerprintIP, rec))
	return nil
}

// setupMetricsEndpoint configures the Prometheus metrics endpoint
func setupMetricsEndpoint(r *gin.Engine, cfg *config.Config) {
	switch {
	case !cfg.MetricsEnabled:
		log.Printf("Prometheus metrics disabled")
	case cfg.MetricsToken != "":
		log.Printf("Prometheus metrics enabled at /metrics with Bearer token authentication")
		r.GET(
			"/metrics",
			middleware.MetricsAuth(cfg.MetricsToken),
			gin.WrapH(promhttp.Handler()),
		)
	default:
		log.Printf("Prometheus metrics enabled at /metrics (no authentication)")
		r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}
}

// setupAllRoutes configures all application routes
func setupAllRoutes(
	r *gin.Engine,
	cfg *config.Config,
	registry *auth.Registry,
	h handlerSet,
	rec core.Recorder,
) {
	sessionManager := session.NewGinManager()
	csrf := middleware.CSRF()

	// Public root redirects into the portal; its auth middleware sends
	// anonymous visitors on to the login form.
	r.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusFound, "/portal")
	})

	// Login page. Auth runs before CSRF: a live session redirects away
	// without minting a token, and the stale-session reset would discard
	// a token minted earlier in the chain.
	loginPageAuth := middleware.NewAuth(registry, sessionManager, rec, middleware.AuthOptions{
		Method:       "login",
		IsLoginRoute: true,
		SuccessURL:   "/portal",
	})
	r.GET("/login", loginPageAuth.Handler(), csrf, h.auth.LoginPage)

	// Login submission. CSRF validates before any credentials are read.
	loginAuth := middleware.NewAuth(registry, sessionManager, rec, middleware.AuthOptions{
		Method:     "login",
		FailureURL: "/login?error=invalid_credentials",
	})
	r.POST("/login", csrf, loginAuth.Handler(), h.auth.LoginSuccess)

	// Logout drops the session and lands on the login form.
	logoutAuth := middleware.NewAuth(registry, sessionManager, rec, middleware.AuthOptions{
		IsLogoutRoute: true,
		FailureURL:    "/login",
	})
	r.GET("/logout", logoutAuth.Handler())

	// Portal, the session-backed landing page.
	portalAuth := middleware.NewAuth(registry, sessionManager, rec, middleware.AuthOptions{
		Method:     "login",
		FailureURL: "/login",
	})
	r.GET("/portal", portalAuth.Handler(), h.auth.Portal)

	// JSON API authenticated per request with Basic credentials.
	basicAuth := middleware.NewAuth(registry, sessionManager, rec, middleware.AuthOptions{
		Method:      "basic",
		Sessionless: true,
	})
	api := r.Group("/api")
	api.Use(basicAuth.Handler())
	{
		api.GET("/whoami", handlers.Whoami)

		audit := api.Group("/audit")
		audit.Use(middleware.RequireAdmin())
		{
			audit.GET("", h.audit.ListAuditLogs)
			audit.GET("/stats", h.audit.GetAuditLogStats)
			audit.GET("/export", h.audit.ExportAuditLogs)
		}
	}

	// Service-to-service endpoint authenticated by static API key.
	if cfg.APIKeyEnabled {
		keyAuth := middleware.NewAuth(registry, sessionManager, rec, middleware.AuthOptions{
			Method:      "api_key",
			Sessionless: true,
		})
		r.GET("/api/keyinfo", keyAuth.Handler(), handlers.KeyInfo)
	}
}

// createHealthCheckHandler creates health check endpoint handler
func createHealthCheckHandler(db *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		switch err := db.Health(); err {
		case nil:
			c.JSON(http.StatusOK, gin.H{
				"status":   "healthy",
				"database": "connected",
			})
		default:
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"database": "disconnected",
			})
		}
	}
}

// setupGinMode sets Gin mode based on environment configuration
func setupGinMode(cfg *config.Config) {
	mode := ginModeMap[cfg.IsProduction]
	gin.SetMode(mode)
	log.Printf("Gin mode: %s", ginModeLogMessage[cfg.IsProduction])
}

var ginModeMap = map[bool]string{
	true:  gin.ReleaseMode,
	false: gin.DebugMode,
}

var ginModeLogMessage = map[bool]string{
	true:  "Release (production)",
	false: "Debug (development)",
}

// logServerStartup logs server startup information
func logServerStartup(cfg *config.Config) {
	log.Printf("Authentication mode: %s", cfg.AuthMode)
	log.Printf("Server starting on %s", cfg.ServerAddr)
	log.Printf("Login URL: %s/login", cfg.BaseURL)
	log.Printf("Default user: admin (check logs for password if first run)")
}
