package bootstrap

import (
	"context"
	"net/http"

	"github.com/appleboy/graceful"
	"github.com/gin-gonic/gin"

	"github.com/kleinsmk/Pode/internal/auth"
	"github.com/kleinsmk/Pode/internal/config"
	"github.com/kleinsmk/Pode/internal/core"
	"github.com/kleinsmk/Pode/internal/models"
	"github.com/kleinsmk/Pode/internal/services"
	"github.com/kleinsmk/Pode/internal/store"
)

// Application holds all initialized components
type Application struct {
	Config *config.Config

	// Core infrastructure
	DB                 *store.Store
	MetricsRecorder    core.Recorder
	MetricsCache       core.Cache[int64]
	MetricsCacheCloser func() error
	UserCache          core.Cache[models.User]
	UserCacheCloser    func() error

	// Auth and services
	Registry     *auth.Registry
	AuditService *services.AuditService
	UserService  *services.UserService

	// HTTP
	HandlerSet handlerSet
	Router     *gin.Engine
	Server     *http.Server
}

// Run initializes and starts the application
func Run(cfg *config.Config) error {
	app := &Application{Config: cfg}

	// Phase 1: Validate configuration
	validateAllConfiguration(cfg)

	// Phase 2: Initialize infrastructure
	if err := app.initializeInfrastructure(); err != nil {
		return err
	}

	// Phase 3: Initialize business layer
	if err := app.initializeBusinessLayer(); err != nil {
		return err
	}

	// Phase 4: Initialize HTTP layer
	if err := app.initializeHTTPLayer(); err != nil {
		return err
	}

	// Phase 5: Start server with graceful shutdown
	app.startWithGracefulShutdown()

	return nil
}

// initializeInfrastructure sets up database, metrics, and caches
func (app *Application) initializeInfrastructure() error {
	ctx := context.Background()

	var err error
	app.DB, err = initializeDatabase(ctx, app.Config)
	if err != nil {
		return err
	}

	app.MetricsRecorder = initializeMetrics(app.Config)

	app.MetricsCache, app.MetricsCacheCloser, err = initializeMetricsCache(ctx, app.Config)
	if err != nil {
		return err
	}

	app.UserCache, app.UserCacheCloser, err = initializeUserCache(ctx, app.Config)
	if err != nil {
		return err
	}

	return nil
}

// initializeBusinessLayer sets up services and the auth method registry
func (app *Application) initializeBusinessLayer() error {
	// Audit service (required by other services)
	app.AuditService = services.NewAuditService(
		app.DB,
		app.Config.EnableAuditLogging,
		app.Config.AuditLogBufferSize,
		app.MetricsRecorder,
	)

	app.UserService = initializeServices(
		app.Config,
		app.DB,
		app.UserCache,
		app.AuditService,
		app.MetricsRecorder,
	)

	var err error
	app.Registry, err = initializeAuthRegistry(app.Config, app.UserService)
	return err
}

// initializeHTTPLayer sets up handlers, router, and server
func (app *Application) initializeHTTPLayer() error {
	app.HandlerSet = initializeHandlers(app.Config, app.AuditService)

	router, err := setupRouter(
		app.Config,
		app.DB,
		app.Registry,
		app.HandlerSet,
		app.MetricsRecorder,
	)
	if err != nil {
		return err
	}
	app.Router = router

	app.Server = createHTTPServer(app.Config, app.Router)
	return nil
}

// startWithGracefulShutdown starts the server and handles graceful shutdown
func (app *Application) startWithGracefulShutdown() {
	m := graceful.NewManager()

	// Add jobs
	addServerRunningJob(m, app.Server)
	addServerShutdownJob(m, app.Config, app.Server)
	addAuditServiceShutdownJob(m, app.Config, app.AuditService)
	addAuditLogCleanupJob(m, app.Config, app.AuditService)
	addMetricsGaugeUpdateJob(m, app.Config, app.DB, app.MetricsRecorder, app.MetricsCache)
	addCacheCleanupJob(m, "metrics", app.MetricsCacheCloser)
	addCacheCleanupJob(m, "user", app.UserCacheCloser)

	// Wait for graceful shutdown
	<-m.Done()
}
