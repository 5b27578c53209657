package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "github.com/aussiebroadwan/leadcapture/internal/frontend/http"
	"github.com/aussiebroadwan/leadcapture/internal/frontend/metrics"
	"github.com/aussiebroadwan/leadcapture/internal/frontend/service"
	"github.com/aussiebroadwan/leadcapture/internal/frontend/state"
	"github.com/aussiebroadwan/leadcapture/internal/frontend/store"
	"github.com/aussiebroadwan/leadcapture/internal/frontend/store/drivers/sqlite"
	"github.com/aussiebroadwan/leadcapture/pkg/cryptox"
	"github.com/aussiebroadwan/leadcapture/pkg/leadsdk"
	"github.com/aussiebroadwan/leadcapture/pkg/slogx"
)

// BuildVersion is overridden at build time via -ldflags "-X".
var BuildVersion = "v0.1.0"

// Application encapsulates the web front-end with all its dependencies
type Application struct {
	cfg    Config
	logger *slog.Logger

	// Core dependencies
	db       store.Store
	sealer   *cryptox.Sealer
	client   *leadsdk.Client
	metrics  *metrics.Collector
	registry *state.Registry

	// Services
	sessionService      *service.SessionService
	authService         *service.AuthService
	leadsService        *service.LeadsService
	housekeepingService *service.HousekeepingService

	// HTTP server
	server *http.Server
	router *httpapi.Router
}

// New creates a new Application instance with all dependencies initialized
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg:    cfg,
		logger: newLogger("leadfront", cfg.Env, cfg.LogLevel, cfg.LogFormat, nil),
	}

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	sealer, err := InitSealer(app.cfg, app.logger)
	if err != nil {
		_ = app.db.Close()
		return nil, err
	}
	app.sealer = sealer

	app.initServices()
	app.initHTTP()

	return app, nil
}

func newLogger(svc, env, level, format string, out io.Writer) *slog.Logger {
	return slogx.New(slogx.Config{
		Service: svc,
		Version: BuildVersion,
		Env:     env,
		Level:   level,
		Format:  format,
		Output:  out,
	})
}

// Handler exposes the router, mainly for tests.
func (app *Application) Handler() http.Handler { return app.router }

// Run starts the application and blocks until ctx is done, a shutdown signal
// arrives or the server fails.
func (app *Application) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", app.server.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}
	return app.Serve(ctx, ln)
}

// Serve is Run on an existing listener.
func (app *Application) Serve(ctx context.Context, ln net.Listener) error {
	// Start housekeeping service
	app.housekeepingService.Start()

	app.logger.Info("leadfront starting",
		"addr", ln.Addr().String(),
		"api", app.cfg.APIBaseURL,
		"version", BuildVersion,
	)

	// Start server in a goroutine
	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.Serve(ln)
	}()

	// Setup signal handling for graceful shutdown
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(shutdown)

	// Block until we receive a shutdown signal or server error
	select {
	case err := <-serverErrors:
		app.housekeepingService.Stop()
		_ = app.db.Close()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)
		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	case <-ctx.Done():
		app.logger.Info("context cancelled, shutting down")
		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown gracefully shuts down the application
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down leadfront...")

	// Give outstanding requests a deadline for completion
	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	// Shutdown the HTTP server
	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	// Stop the housekeeping service
	app.housekeepingService.Stop()

	// Pending debounce timers
	app.registry.Evict(func(string) bool { return false })

	// Close database connection
	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("leadfront stopped")
	return nil
}

// initDatabase initializes the database and applies migrations
func (app *Application) initDatabase() error {
	db, err := openStore(app.cfg.DatabaseFile)
	if err != nil {
		return err
	}
	app.db = db

	app.logger.Info("database migrations applied successfully")
	return nil
}

func openStore(file string) (store.Store, error) {
	dsn := file
	if file != ":memory:" {
		dsn = fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", file)
	}

	db, err := sqlite.NewStore(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to apply database migrations: %w", err)
	}
	return db, nil
}

func newClient(cfg Config) *leadsdk.Client {
	client := leadsdk.NewClient(cfg.APIBaseURL, nil)
	client.HTTPClient.Timeout = cfg.APITimeout
	return client
}

// initServices initializes all business logic services
func (app *Application) initServices() {
	app.client = newClient(app.cfg)
	app.metrics = metrics.New()
	app.registry = state.NewRegistry(app.cfg.SearchDebounce)

	app.sessionService = service.NewSessionService(app.db, app.cfg.SessionTTL)
	app.authService = &service.AuthService{Client: app.client, Metrics: app.metrics}
	app.leadsService = &service.LeadsService{Client: app.client, Metrics: app.metrics}

	app.housekeepingService = service.NewHousekeepingService(
		app.db,
		app.registry,
		app.metrics,
		app.logger,
		app.cfg.HousekeepingInterval,
	)
}

// initHTTP initializes the HTTP router and server
func (app *Application) initHTTP() {
	router := httpapi.NewRouter(
		app.db,
		app.sealer,
		app.registry,
		app.metrics,
		app.logger,
		httpapi.Options{
			BuildVersion:   BuildVersion,
			SearchDebounce: app.cfg.SearchDebounce,
			SecureCookies:  app.cfg.SecureCookies,
		},
	)

	// Wire services to router
	router.SessionService = app.sessionService
	router.AuthService = app.authService
	router.LeadsService = app.leadsService
	router.APICheck = httpapi.APIReachable(app.client.HTTPClient, app.cfg.APIBaseURL)
	router.ApplyRoutes()

	app.router = router

	// Initialize HTTP server
	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
