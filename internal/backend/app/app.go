package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "github.com/smetchik/backend/internal/backend/http"
	"github.com/smetchik/backend/internal/backend/service"
	"github.com/smetchik/backend/internal/backend/store"
	"github.com/smetchik/backend/internal/backend/store/drivers/memory"
	"github.com/smetchik/backend/internal/backend/store/drivers/sqlite"
	"github.com/smetchik/backend/pkg/cryptox"
	"github.com/smetchik/backend/pkg/slogx"
)

// BuildVersion is overridden at build time via -ldflags.
var BuildVersion = "v0.1.0"

// Application owns the store, the services and one HTTP server per
// listener.
type Application struct {
	cfg    Config
	logger *slog.Logger

	db store.Store

	tokenService        *service.TokenService
	userService         *service.UserService
	mfaService          *service.MFAService
	resetService        *service.ResetService
	supportService      *service.SupportService
	scanService         *service.ScanService
	housekeepingService *service.HousekeepingService

	servers []*http.Server
	running bool
}

// listener is one server of the deployment and the domains it serves.
type listener struct {
	name    string
	port    int
	domains []httpapi.Domain
}

func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "smetchik-backend",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	if cfg.PasswordPepper == "" {
		app.logger.Warn("PASSWORD_PEPPER not set, using a random per-process pepper")
	}
	cryptox.SetPepper(cfg.PasswordPepper)
	cryptox.SetMasterKey(cfg.SecretKey)

	listeners, err := app.listeners()
	if err != nil {
		return nil, err
	}

	if err := app.initStore(); err != nil {
		return nil, err
	}

	if err := app.initServices(); err != nil {
		_ = app.db.Close()
		return nil, err
	}

	app.initHTTP(listeners)

	return app, nil
}

func (app *Application) listeners() ([]listener, error) {
	switch app.cfg.ServerMode {
	case ModeSingle, "":
		return []listener{
			{name: "backend", port: app.cfg.Port, domains: httpapi.AllDomains()},
		}, nil
	case ModeSplit:
		return []listener{
			{name: "auth", port: app.cfg.AuthPort, domains: []httpapi.Domain{httpapi.DomainAuth}},
			{name: "support", port: app.cfg.SupportPort, domains: []httpapi.Domain{httpapi.DomainSupport}},
			{name: "scan", port: app.cfg.ScanPort, domains: []httpapi.Domain{httpapi.DomainScan}},
		}, nil
	default:
		return nil, fmt.Errorf("unknown SERVER_MODE %q", app.cfg.ServerMode)
	}
}

// initStore opens the configured driver. Both drivers live in memory only.
func (app *Application) initStore() error {
	switch app.cfg.StoreDriver {
	case DriverMemory, "":
		app.db = memory.NewStore()
	case DriverSQLite:
		db, err := sqlite.NewStore(sqlite.MemoryDSN)
		if err != nil {
			return fmt.Errorf("failed to initialize database: %w", err)
		}
		if err := db.ApplyMigrations(); err != nil {
			_ = db.Close()
			return fmt.Errorf("failed to apply database migrations: %w", err)
		}
		app.db = db
		app.logger.Info("database migrations applied successfully")
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", app.cfg.StoreDriver)
	}

	app.logger.Info("store ready", "driver", app.cfg.StoreDriver)
	return nil
}

func (app *Application) initServices() error {
	signingKey := []byte(app.cfg.ResetSigningKey)
	if len(signingKey) == 0 {
		key, err := cryptox.GenerateToken(32)
		if err != nil {
			return fmt.Errorf("failed to generate reset signing key: %w", err)
		}
		signingKey = []byte(key)
		app.logger.Warn("RESET_SIGNING_KEY not set, reset tokens will not survive a restart")
	}

	app.tokenService = &service.TokenService{
		Store:             app.db,
		AccessTTL:         app.cfg.AccessTokenTTL,
		RefreshTTL:        app.cfg.RefreshTokenTTL,
		FallbackFirstUser: app.cfg.FallbackFirstUser,
	}
	if app.cfg.FallbackFirstUser {
		app.logger.Warn("first-user fallback enabled, unauthenticated account calls act as the first user")
	}

	app.userService = &service.UserService{Store: app.db, Tokens: app.tokenService}
	app.mfaService = &service.MFAService{Store: app.db, Issuer: app.cfg.TOTPIssuer}
	app.resetService = &service.ResetService{
		Store:      app.db,
		SigningKey: signingKey,
		TTL:        app.cfg.ResetTokenTTL,
	}
	app.supportService = &service.SupportService{Store: app.db}
	app.scanService = &service.ScanService{Store: app.db, Estimator: service.StubEstimator{}}

	app.housekeepingService = service.NewHousekeepingService(
		app.db,
		app.logger,
		app.cfg.HousekeepingInterval,
		app.cfg.ScanRetention,
	)
	return nil
}

func (app *Application) newRouter(domains []httpapi.Domain) *httpapi.Router {
	router := httpapi.NewRouter(BuildVersion, app.db, app.logger, httpapi.Limits{
		JSONBodyBytes: app.cfg.MaxJSONBodyBytes,
		UploadBytes:   app.cfg.MaxUploadBytes,
		RateLimits:    app.cfg.RateLimits,
	})

	router.TokenService = app.tokenService
	router.UserService = app.userService
	router.MFAService = app.mfaService
	router.ResetService = app.resetService
	router.SupportService = app.supportService
	router.ScanService = app.scanService
	router.ApplyRoutes(domains...)

	return router
}

func (app *Application) initHTTP(listeners []listener) {
	for _, l := range listeners {
		app.servers = append(app.servers, &http.Server{
			Addr:              fmt.Sprintf(":%d", l.port),
			Handler:           app.newRouter(l.domains),
			ReadHeaderTimeout: 3 * time.Second,
			ReadTimeout:       app.cfg.ReadTimeout,
			ErrorLog:          slog.NewLogLogger(app.logger.Handler(), slog.LevelError),
		})
		app.logger.Info("listener configured", "name", l.name, "port", l.port, "domains", l.domains)
	}
}

// Run starts every listener and blocks until a signal arrives or one of
// them fails.
func (app *Application) Run() error {
	app.housekeepingService.Start()
	app.running = true

	app.logger.Info("backend starting", "mode", app.cfg.ServerMode, "version", BuildVersion)

	serverErrors := make(chan error, len(app.servers))
	for _, srv := range app.servers {
		go func() {
			serverErrors <- srv.ListenAndServe()
		}()
	}

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(shutdown)

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			_ = app.Shutdown()
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)

		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown drains the listeners within the grace period, then stops
// housekeeping and closes the store.
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down backend...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	for _, srv := range app.servers {
		if err := srv.Shutdown(ctx); err != nil {
			app.logger.Error("graceful server shutdown failed", "addr", srv.Addr, "error", err)
			if err := srv.Close(); err != nil {
				app.logger.Error("error closing server", "addr", srv.Addr, "error", err)
			}
		}
	}

	if app.running {
		app.housekeepingService.Stop()
		app.running = false
	}

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing store", "error", err)
		return err
	}

	app.logger.Info("backend stopped")
	return nil
}
