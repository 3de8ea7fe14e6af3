// Package bootstrap wires all dependencies and starts the application.
package bootstrap

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/x402dash/x402dash/adapters/clock"
	"github.com/x402dash/x402dash/adapters/hasher"
	"github.com/x402dash/x402dash/adapters/bus"
	apihttp "github.com/x402dash/x402dash/adapters/http"
	"github.com/x402dash/x402dash/adapters/http/dashboard"
	"github.com/x402dash/x402dash/adapters/idgen"
	"github.com/x402dash/x402dash/adapters/memory"
	"github.com/x402dash/x402dash/adapters/metrics"
	natsadapter "github.com/x402dash/x402dash/adapters/nats"
	"github.com/x402dash/x402dash/adapters/sqlite"
	"github.com/x402dash/x402dash/app"
	"github.com/x402dash/x402dash/config"
	"github.com/x402dash/x402dash/domain/spending"
	"github.com/x402dash/x402dash/domain/usage"
	"github.com/x402dash/x402dash/ports"
)

// App represents the running application.
// Config is the startup configuration; CurrentConfig reflects hot reloads.
type App struct {
	Config     *config.Config
	Logger     zerolog.Logger
	DB         *sqlite.DB // nil with the memory driver
	HTTPServer *http.Server
	Metrics    *metrics.Collector

	Usage             *app.UsageLogger
	Spending          *app.SpendingLogger
	UsageAnalytics    *app.UsageAnalytics
	SpendingAnalytics *app.SpendingAnalytics
	Demo              *app.DemoGenerator
	AutoLog           *apihttp.AutoLogger

	// Bus receives every stored event; subscribe to react in process.
	Bus *bus.Bus

	mu      sync.RWMutex
	current *config.Config

	clock     ports.Clock
	holder    *config.Holder
	publisher *natsadapter.Publisher
	transport *apihttp.SpendingTransport
	outbound  *apihttp.UsageTransport
}

// Options provides optional overrides for application initialization.
type Options struct {
	Version string

	// Registry receives the Prometheus collectors. Defaults to the global registerer.
	Registry prometheus.Registerer

	// Clock defaults to the wall clock.
	Clock ports.Clock

	// Fallback serves requests outside the dashboards, typically the
	// application whose traffic is auto-logged.
	Fallback http.Handler

	// LogOutput defaults to stdout.
	LogOutput io.Writer
}

// New creates and initializes the application from cfg.
func New(cfg *config.Config, opts Options) (*App, error) {
	logger := setupLogger(cfg.Logging, opts.LogOutput)
	logger.Info().Msg("initializing x402dash")

	a := &App{
		Config:  cfg,
		Logger:  logger,
		current: cfg,
		clock:   opts.Clock,
		Bus:     bus.New(logger),
	}
	if a.clock == nil {
		a.clock = clock.Real{}
	}

	if cfg.Metrics.Enabled {
		if opts.Registry != nil {
			a.Metrics = metrics.NewWithRegistry(opts.Registry)
		} else {
			a.Metrics = metrics.New()
		}
		logger.Info().Msg("prometheus metrics enabled")
	}

	usageStore, spendingStore, err := a.initStores()
	if err != nil {
		return nil, fmt.Errorf("init stores: %w", err)
	}

	if err := a.initEvents(); err != nil {
		a.closeStores()
		return nil, fmt.Errorf("init events: %w", err)
	}

	if err := a.initServices(usageStore, spendingStore); err != nil {
		a.closeAll()
		return nil, err
	}

	if err := a.initHTTPServer(opts); err != nil {
		a.closeAll()
		return nil, fmt.Errorf("init http server: %w", err)
	}

	if cfg.Demo.LoadOnStart {
		a.seedDemo(context.Background())
	}

	return a, nil
}

// NewWithHotReload creates the application from a config file and applies
// reloadable changes when the file changes or SIGHUP is received.
func NewWithHotReload(path string, opts Options) (*App, error) {
	holder, err := config.NewHolder(path, setupLogger(config.LoggingConfig{Level: "info"}, opts.LogOutput))
	if err != nil {
		return nil, err
	}

	a, err := New(holder.Get(), opts)
	if err != nil {
		holder.Stop()
		return nil, err
	}
	a.holder = holder

	holder.OnChange(a.applyConfig)
	if err := holder.WatchFile(); err != nil {
		a.Logger.Warn().Err(err).Msg("config file watch unavailable, SIGHUP reload only")
	}
	holder.WatchSignals()

	a.Logger.Info().Str("path", path).Msg("config hot reload enabled")
	return a, nil
}

func (a *App) initStores() (ports.UsageStore, ports.SpendingStore, error) {
	switch a.Config.Database.Driver {
	case "memory":
		a.Logger.Info().Msg("using in-memory event store")
		return memory.NewUsageStore(idgen.UUID{}), memory.NewSpendingStore(idgen.UUID{}), nil
	default:
		db, err := sqlite.Open(a.Config.Database.DSN)
		if err != nil {
			return nil, nil, err
		}
		if err := db.Migrate(); err != nil {
			db.Close()
			return nil, nil, fmt.Errorf("migrate: %w", err)
		}
		a.DB = db
		a.Logger.Info().Str("dsn", a.Config.Database.DSN).Msg("database initialized")
		return sqlite.NewUsageStore(db, idgen.UUID{}), sqlite.NewSpendingStore(db, idgen.UUID{}), nil
	}
}

func (a *App) initEvents() error {
	a.Bus.Subscribe("*", a.traceLedgerEvent)

	ev := a.Config.Events
	if !ev.Enabled {
		return nil
	}

	nc := natsadapter.DefaultConfig()
	nc.URL = ev.URL
	if ev.Name != "" {
		nc.Name = ev.Name
	}
	if ev.ConnectTimeout > 0 {
		nc.Timeout = ev.ConnectTimeout
	}

	pub, err := natsadapter.Connect(nc, a.Logger)
	if err != nil {
		return err
	}
	a.publisher = pub
	return nil
}

func (a *App) initServices(usageStore ports.UsageStore, spendingStore ports.SpendingStore) error {
	cfg := a.Config

	loc, err := cfg.Reporting.Location()
	if err != nil {
		return fmt.Errorf("reporting timezone: %w", err)
	}

	deps := app.LoggerDeps{
		Clock:     a.clock,
		Metrics:   a.Metrics,
		Publisher: a.Bus,
		Logger:    a.Logger,
	}
	if a.publisher != nil {
		deps.Publisher = bus.Fanout{a.Bus, a.publisher}
	}

	a.Usage = app.NewUsageLogger(usageStore, deps, usageLoggerConfig(cfg))
	a.Spending = app.NewSpendingLogger(spendingStore, deps, spendingLoggerConfig(cfg))

	analyticsDeps := app.AnalyticsDeps{Clock: a.clock, Metrics: a.Metrics, Logger: a.Logger}
	a.UsageAnalytics = app.NewAnalytics[usage.Event](app.SideSeller, usageStore, analyticsDeps, loc)
	a.SpendingAnalytics = app.NewAnalytics[spending.Event](app.SideBuyer, spendingStore, analyticsDeps, loc)

	if cfg.Demo.Enabled || cfg.Demo.LoadOnStart {
		seed := cfg.Demo.Seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		a.Demo = app.NewDemoGenerator(app.DemoDeps{
			Usage:    a.Usage,
			Spending: a.Spending,
			Clock:    a.clock,
			Logger:   a.Logger,
		}, seed)
	}

	mapping, err := apihttp.ParseServiceMapping(cfg.Buyer.ServiceIDMapping)
	if err != nil {
		return fmt.Errorf("buyer service mapping: %w", err)
	}
	a.transport = apihttp.NewSpendingTransport(nil, a.Spending, a.clock, mapping, a.Logger)
	a.outbound = apihttp.NewUsageTransport(nil, a.Usage, a.clock, a.Logger)

	return nil
}

func (a *App) initHTTPServer(opts Options) error {
	cfg := a.Config

	sellerAuth, err := a.basicAuth(cfg.Seller.Security)
	if err != nil {
		return fmt.Errorf("seller security: %w", err)
	}

	var demo *app.DemoGenerator
	if cfg.Demo.Enabled {
		demo = a.Demo
	}

	routerCfg := apihttp.RouterConfig{
		Version:        opts.Version,
		Metrics:        a.Metrics,
		EnableMetrics:  cfg.Metrics.Enabled,
		EnableOpenAPI:  cfg.OpenAPI.Enabled,
		SellerPath:     cfg.Seller.APIPath,
		Fallback:       opts.Fallback,
		RequestTimeout: cfg.Server.RequestTimeout,
	}

	routerCfg.SellerHandler = dashboard.NewSellerHandler(dashboard.SellerDeps{
		Analytics: a.UsageAnalytics,
		Logger:    a.Usage,
		Demo:      demo,
		Auth:      sellerAuth,
		Config:    dashboardConfig(cfg.Seller.Dashboard),
		Log:       a.Logger,
	}).Router()
	a.Logger.Info().Str("path", cfg.Seller.APIPath).Msg("seller dashboard enabled")

	if cfg.Buyer.Enabled {
		buyerAuth, err := a.basicAuth(cfg.Buyer.Security)
		if err != nil {
			return fmt.Errorf("buyer security: %w", err)
		}
		routerCfg.BuyerPath = cfg.Buyer.APIPath
		routerCfg.BuyerHandler = dashboard.NewBuyerHandler(dashboard.BuyerDeps{
			Analytics: a.SpendingAnalytics,
			Logger:    a.Spending,
			Demo:      demo,
			Auth:      buyerAuth,
			Config:    dashboardConfig(cfg.Buyer.Dashboard),
			Log:       a.Logger,
		}).Router()
		a.Logger.Info().Str("path", cfg.Buyer.APIPath).Msg("buyer dashboard enabled")
	}

	a.AutoLog = apihttp.NewAutoLogger(a.Usage, a.clock, autoLogSkip(cfg), a.Logger)
	a.AutoLog.SetEnabled(cfg.Seller.AutoLogging)
	routerCfg.AutoLog = a.AutoLog.Middleware

	var pinger apihttp.Pinger
	if a.DB != nil {
		pinger = a.DB
	}
	router := apihttp.NewRouter(apihttp.NewHealthHandler(pinger), a.Logger, routerCfg)

	a.HTTPServer = &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	a.Logger.Info().Str("addr", a.HTTPServer.Addr).Msg("http server configured")
	return nil
}

// basicAuth builds the dashboard auth middleware, or nil when sec is disabled.
func (a *App) basicAuth(sec config.SecurityConfig) (*dashboard.BasicAuth, error) {
	if !sec.Enabled {
		return nil, nil
	}
	cred, err := hasher.NewCredential(hasher.NewBcrypt(0), sec.Password)
	if err != nil {
		return nil, err
	}
	return dashboard.NewBasicAuth(sec.Username, cred, sec.Realm, a.Metrics, a.Logger), nil
}

// seedDemo fills each empty ledger with demo data.
func (a *App) seedDemo(ctx context.Context) {
	if a.Demo == nil {
		return
	}
	count, days := a.Config.Demo.Count, a.Config.Demo.Days

	if t, err := a.UsageAnalytics.Totals(ctx, allTime()); err != nil {
		a.Logger.Warn().Err(err).Msg("demo seed: usage totals failed")
	} else if t.Count == 0 {
		if s, err := a.Demo.GenerateUsage(ctx, count, days); err != nil {
			a.Logger.Warn().Err(err).Msg("demo seed: usage generation failed")
		} else {
			a.Logger.Info().Int("generated", s.Generated).Msg("seeded usage ledger with demo data")
		}
	}

	if !a.Config.Buyer.Enabled {
		return
	}
	if t, err := a.SpendingAnalytics.Totals(ctx, allTime()); err != nil {
		a.Logger.Warn().Err(err).Msg("demo seed: spending totals failed")
	} else if t.Count == 0 {
		if s, err := a.Demo.GenerateSpending(ctx, count, days); err != nil {
			a.Logger.Warn().Err(err).Msg("demo seed: spending generation failed")
		} else {
			a.Logger.Info().Int("generated", s.Generated).Msg("seeded spending ledger with demo data")
		}
	}
}

// HTTPClient returns a client that records buyer spending for every call
// when buyer auto-logging is on, and a plain client otherwise.
func (a *App) HTTPClient() *http.Client {
	cfg := a.CurrentConfig()
	if cfg.Buyer.Enabled && cfg.Buyer.AutoLogging {
		return &http.Client{Transport: a.transport}
	}
	return &http.Client{}
}

// SellerHTTPClient returns a client that records every outgoing call as a
// seller usage event when seller auto-logging is on, and a plain client otherwise.
func (a *App) SellerHTTPClient() *http.Client {
	if a.CurrentConfig().Seller.AutoLogging {
		return &http.Client{Transport: a.outbound}
	}
	return &http.Client{}
}

// CurrentConfig returns the configuration in effect, including reloaded fields.
func (a *App) CurrentConfig() *config.Config {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.current
}

// applyConfig applies the reloadable subset of cfg to the running services.
func (a *App) applyConfig(cfg *config.Config) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if level, err := zerolog.ParseLevel(cfg.Logging.Level); err == nil {
		zerolog.SetGlobalLevel(level)
	}

	if loc, err := cfg.Reporting.Location(); err == nil {
		a.UsageAnalytics.SetLocation(loc)
		a.SpendingAnalytics.SetLocation(loc)
	} else {
		a.Logger.Warn().Err(err).Msg("reload: keeping previous reporting timezone")
	}

	a.Usage.UpdateConfig(usageLoggerConfig(cfg))
	a.Spending.UpdateConfig(spendingLoggerConfig(cfg))

	a.AutoLog.SetEnabled(cfg.Seller.AutoLogging)
	a.AutoLog.SetSkipPrefixes(autoLogSkip(cfg))

	if mapping, err := apihttp.ParseServiceMapping(cfg.Buyer.ServiceIDMapping); err == nil {
		a.transport.SetServiceMapping(mapping)
	} else {
		a.Logger.Warn().Err(err).Msg("reload: keeping previous service mapping")
	}

	// Non-reloadable fields stay as they were at startup.
	next := *a.current
	next.Logging.Level = cfg.Logging.Level
	next.Reporting = cfg.Reporting
	next.Seller.DefaultTenantID = cfg.Seller.DefaultTenantID
	next.Seller.AutoLogging = cfg.Seller.AutoLogging
	next.Seller.AutoLogSkip = cfg.Seller.AutoLogSkip
	next.Buyer.DefaultBuyerID = cfg.Buyer.DefaultBuyerID
	next.Buyer.DefaultBuyerName = cfg.Buyer.DefaultBuyerName
	next.Buyer.ServiceIDMapping = cfg.Buyer.ServiceIDMapping
	a.current = &next

	a.Metrics.ObserveReload(nil, a.clock.Now())
	a.Logger.Info().Msg("configuration applied")
}

// Run starts the HTTP server and blocks until shutdown.
func (a *App) Run() error {
	errCh := make(chan error, 1)
	go func() {
		a.Logger.Info().
			Str("addr", a.HTTPServer.Addr).
			Msg("starting http server")
		if err := a.HTTPServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-errCh:
		a.closeAll()
		return fmt.Errorf("server error: %w", err)
	case sig := <-quit:
		a.Logger.Info().Str("signal", sig.String()).Msg("shutting down")
	}

	return a.Shutdown()
}

// Shutdown gracefully stops the application.
func (a *App) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if a.HTTPServer != nil {
		if err := a.HTTPServer.Shutdown(ctx); err != nil {
			a.Logger.Error().Err(err).Msg("http server shutdown error")
		}
	}

	a.closeAll()
	a.Logger.Info().Msg("shutdown complete")
	return nil
}

func (a *App) closeAll() {
	if a.holder != nil {
		a.holder.Stop()
	}
	if a.publisher != nil {
		if err := a.publisher.Close(); err != nil {
			a.Logger.Error().Err(err).Msg("nats close error")
		}
		a.publisher = nil
	}
	a.closeStores()
}

func (a *App) closeStores() {
	if a.DB != nil {
		if err := a.DB.Close(); err != nil {
			a.Logger.Error().Err(err).Msg("database close error")
		}
		a.DB = nil
	}
}

func setupLogger(cfg config.LoggingConfig, out io.Writer) zerolog.Logger {
	if out == nil {
		out = os.Stdout
	}

	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || cfg.Level == "" {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if cfg.Format == "console" {
		output := zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
		return zerolog.New(output).With().Timestamp().Logger()
	}

	return zerolog.New(out).With().Timestamp().Logger()
}
