// Package server wires storage, services and the REST API together and runs
// them until the process is asked to stop.
package server

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/lacs/lacsapi/internal/logging"
	"github.com/lacs/lacsapi/internal/server/auth"
	"github.com/lacs/lacsapi/internal/server/config"
	"github.com/lacs/lacsapi/internal/server/httpapi"
	"github.com/lacs/lacsapi/internal/server/metrics"
	"github.com/lacs/lacsapi/internal/server/repositories/repomanager"
	"github.com/lacs/lacsapi/internal/server/sepomex"
	"github.com/lacs/lacsapi/internal/server/services"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Services groups the application services built over one repository
// manager. The admin CLI uses it without the HTTP layer.
type Services struct {
	Keeper       *auth.SecretKeeper
	Issuer       *auth.Issuer
	Users        *services.UserService
	Admins       *services.AdminService
	Trabajadores *services.TrabajadorService
	Locations    *services.LocationService
}

// NewServices builds the services. mc may be nil.
func NewServices(c *config.Config, m repomanager.RepositoryManager, mc *metrics.Collector, logger logging.Logger) *Services {
	keeper := auth.NewSecretKeeper(m.Secrets(), logger)
	issuer := auth.NewIssuer(keeper, c.TokenTTL)

	us := services.NewUserService(m, issuer, mc, logger)
	return &Services{
		Keeper:       keeper,
		Issuer:       issuer,
		Users:        us,
		Admins:       services.NewAdminService(m, us, issuer, mc, logger),
		Trabajadores: services.NewTrabajadorService(m, logger),
		Locations:    services.NewLocationService(m.Locations(), sepomex.NewLocator(c), c.LocationsBatchSize, mc, logger),
	}
}

type App struct {
	config   *config.Config
	logger   logging.Logger
	manager  repomanager.RepositoryManager
	services *Services
	limiter  *httpapi.RateLimiter
	server   *httpapi.Server
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.New(os.Stdout, c.LogLevel)

	m, err := repomanager.NewMongoRepositoryManager(ctx, c.MongoURI, c.DatabaseName)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	mc := metrics.NewCollector(reg)

	svc := NewServices(c, m, mc, logger)
	limiter := httpapi.NewRateLimiter(c.LoginRatePerMinute, httpapi.DefaultCleanupInterval, logger)

	router := httpapi.NewRouter(&httpapi.RouterDeps{
		Handler:           httpapi.NewHandler(svc.Users, svc.Admins, svc.Trabajadores, svc.Locations, logger),
		Verifier:          svc.Issuer,
		LoginLimiter:      limiter,
		CORSAllowedOrigin: c.CORSAllowedOrigin,
		Metrics:           mc,
		Gatherer:          reg,
		Logger:            logger,
	})

	return &App{
		config:   c,
		logger:   logger,
		manager:  m,
		services: svc,
		limiter:  limiter,
		server:   httpapi.NewServer(c.EndpointAddrHTTP, router, c.ShutdownTimeout, logger),
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// prepare creates indexes and makes sure the signing secret exists before
// the first request can ask for it.
func (app *App) prepare(ctx context.Context) error {
	if err := app.manager.EnsureIndexes(ctx); err != nil {
		return err
	}
	return app.services.Keeper.Ensure(ctx)
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) error {
	if err := app.server.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}

// Run serves until ctx is cancelled or a termination signal arrives, then
// waits for a running location load and releases the database. A server
// that cannot listen or serve makes Run return its error.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...", "address", app.config.EndpointAddrHTTP)

	app.initSignalHandler(cancelFunc)
	defer app.close(ctx)

	if err := app.prepare(ctx); err != nil {
		return fmt.Errorf("startup: %w", err)
	}

	var (
		wg       sync.WaitGroup
		serveErr error
	)

	wg.Add(1)
	go func() {
		defer wg.Done()
		serveErr = app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()
	return serveErr
}

func (app *App) close(ctx context.Context) {
	app.services.Locations.Wait()
	app.limiter.Stop()

	cctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), app.config.ShutdownTimeout)
	defer cancel()
	if err := app.manager.Close(cctx); err != nil {
		app.logger.Error(cctx, "closing database", "error", err)
	}
	app.logger.Info(cctx, "App stopped")
}
