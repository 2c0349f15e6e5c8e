// Package main is the entry point for the atelier service.
//
// @title Atelier Service API
// @version 1.0
// @description Quotes, drafts and dashboards for a children's formalwear atelier.
// @BasePath /
// @securityDefinitions.apikey SessionToken
// @in header
// @name Authorization
package main

//go:generate swag init -g cmd/service/main.go -o docs -d ../../

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	_ "github.com/atelier-studio/atelier-service/docs"
	"github.com/atelier-studio/atelier-service/internal/adapters/clients"
	"github.com/atelier-studio/atelier-service/internal/adapters/clients/acl"
	"github.com/atelier-studio/atelier-service/internal/adapters/flags"
	"github.com/atelier-studio/atelier-service/internal/adapters/http"
	"github.com/atelier-studio/atelier-service/internal/adapters/http/handlers"
	"github.com/atelier-studio/atelier-service/internal/adapters/postgres"
	"github.com/atelier-studio/atelier-service/internal/adapters/redis"
	"github.com/atelier-studio/atelier-service/internal/app"
	"github.com/atelier-studio/atelier-service/internal/domain"
	"github.com/atelier-studio/atelier-service/internal/platform/config"
	"github.com/atelier-studio/atelier-service/internal/platform/logging"
	"github.com/atelier-studio/atelier-service/internal/platform/metrics"
	"github.com/atelier-studio/atelier-service/internal/platform/telemetry"
	"github.com/atelier-studio/atelier-service/internal/ports"
)

// Build-time variables, injected via ldflags.
// Example: go build -ldflags "-X main.Version=1.0.0 -X main.Commit=$(git rev-parse HEAD) -X main.BuildTime=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
var (
	// Version is the semantic version of the service.
	Version = "dev"

	// Commit is the git commit SHA.
	Commit = "unknown"

	// BuildTime is the timestamp when the binary was built.
	BuildTime = "unknown"
)

const (
	dashboardCachePrefix = "atelier:"
	draftSweepInterval   = time.Minute
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	// 1. Environment and configuration (fail fast)
	if err := config.LoadDotEnv(".env"); err != nil {
		return err
	}

	profile := os.Getenv("APP_ENVIRONMENT")
	if profile == "" {
		profile = "local"
	}

	cfg, err := config.Load(profile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	location, err := time.LoadLocation(cfg.App.Timezone)
	if err != nil {
		return fmt.Errorf("loading timezone: %w", err)
	}

	// 2. Logging
	logger, logCloser := logging.New(&logging.Config{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		Service: cfg.App.Name,
		Version: cfg.App.Version,
		File: logging.FileConfig{
			Enabled:    cfg.Log.File.Enabled,
			Path:       cfg.Log.File.Path,
			MaxSizeMB:  cfg.Log.File.MaxSizeMB,
			MaxBackups: cfg.Log.File.MaxBackups,
			MaxAgeDays: cfg.Log.File.MaxAgeDays,
			Compress:   cfg.Log.File.Compress,
		},
	})
	defer closeQuietly(logCloser)

	slog.SetDefault(logger)
	logging.SetDefault(logger)

	logger.Info("starting service",
		slog.String("version", Version),
		slog.String("commit", Commit),
		slog.String("environment", cfg.App.Environment),
	)

	// 3. Telemetry (noop if disabled)
	telProvider, err := telemetry.New(ctx, &telemetry.Config{
		Enabled:      cfg.Telemetry.Enabled,
		Endpoint:     cfg.Telemetry.Endpoint,
		ServiceName:  cfg.Telemetry.ServiceName,
		Version:      cfg.App.Version,
		Environment:  cfg.App.Environment,
		SamplingRate: cfg.Telemetry.SamplingRate,
	})
	if err != nil {
		return fmt.Errorf("initializing telemetry: %w", err)
	}

	defer func() {
		if shutdownErr := telProvider.Shutdown(context.Background()); shutdownErr != nil {
			logger.Error("telemetry shutdown error", slog.Any("error", shutdownErr))
		}
	}()

	businessMetrics := metrics.New()
	healthRegistry := ports.NewHealthRegistry()

	// 4. Stores
	db, err := postgres.Open(ctx, cfg.Database, logger)
	if err != nil {
		return err
	}
	defer closeQuietly(db)

	if cfg.Database.MigrateOnStart {
		if err := postgres.Migrate(ctx, db, logger); err != nil {
			return err
		}
	}

	redisClient, err := redis.Connect(ctx, cfg.Redis, cfg.Database.ConnectMaxElapsed, logger)
	if err != nil {
		return err
	}
	defer closeQuietly(redisClient)

	for _, check := range []ports.HealthChecker{postgres.NewHealthCheck(db), redis.NewHealthCheck(redisClient)} {
		if err := healthRegistry.Register(check); err != nil {
			return fmt.Errorf("registering %s health check: %w", check.Name(), err)
		}
	}

	// 5. Baserow table store, when configured
	tables, err := newTableStore(cfg, logger, healthRegistry)
	if err != nil {
		return err
	}

	// 6. Application services
	featureFlags := flags.NewStatic(cfg.Features)
	catalog := domain.DefaultCatalog()

	dashboardService := app.NewDashboardService(app.DashboardServiceConfig{
		Repo:     postgres.NewDashboardRepository(db),
		Cache:    redis.NewCache(redisClient, dashboardCachePrefix),
		CacheTTL: cfg.Redis.DashboardTTL,
		Flags:    featureFlags,
		Location: location,
		Logger:   logger,
	})

	quoteService := app.NewQuoteService(app.QuoteServiceConfig{
		Quotes:        postgres.NewQuoteRepository(db),
		Catalog:       catalog,
		Tables:        tables,
		MirrorTableID: cfg.Baserow.QuotesTableID,
		Flags:         featureFlags,
		Dashboard:     dashboardService,
		Metrics:       businessMetrics,
		Executor:      app.NewExecutor(logger),
		Logger:        logger,
	})

	authService := app.NewAuthService(app.AuthServiceConfig{
		Users:             postgres.NewUserRepository(db),
		Sessions:          redis.NewSessionStore(redisClient),
		SessionTTL:        cfg.Auth.SessionTTL,
		AttemptsPerMinute: cfg.Auth.LoginRatePerMinute,
		Burst:             cfg.Auth.LoginBurst,
		Logger:            logger,
	})

	drafts := app.NewDraftStore(cfg.Quote.DraftTTL, cfg.Quote.MaxDraftsPerUser,
		app.WithSizeObserver(businessMetrics.SetDraftsActive))
	go drafts.Run(ctx, draftSweepInterval)

	draftService := app.NewQuoteDraftService(drafts, catalog, quoteService, logger)

	tableService := app.NewTableService(tables, cfg.Baserow.AllowedTables, logger)

	// 7. HTTP server
	server := http.New(&cfg.Server, logger)

	http.SetupRouter(server.Engine(), http.RouterConfig{
		ServiceName: cfg.Telemetry.ServiceName,
		Timeout:     cfg.Server.RequestTimeout,
		MaxBodySize: cfg.Server.MaxRequestSize,
		Sessions:    authService,
		CookieName:  cfg.Auth.CookieName,
		Swagger:     cfg.App.Environment != "prod",

		HealthHandler: handlers.NewHealthHandler(healthRegistry,
			handlers.NewBuildInfo(Version, Commit, BuildTime), businessMetrics.Handler()),
		AuthHandler: handlers.NewAuthHandler(authService, handlers.SessionCookie{
			Name:   cfg.Auth.CookieName,
			Secure: cfg.Auth.CookieSecure,
		}),
		CatalogHandler:   handlers.NewCatalogHandler(catalog),
		QuoteHandler:     handlers.NewQuoteHandler(quoteService),
		DraftHandler:     handlers.NewDraftHandler(draftService),
		DashboardHandler: handlers.NewDashboardHandler(dashboardService),
		TableHandler:     handlers.NewTableHandler(tableService),
	})

	serverErr, err := server.Start()
	if err != nil {
		return err
	}

	return waitForShutdown(ctx, logger, server, serverErr, cfg.Server.ShutdownTimeout)
}

// newTableStore returns nil when Baserow is not configured.
func newTableStore(cfg *config.Config, logger *slog.Logger, registry *ports.DefaultHealthRegistry) (ports.TableStore, error) {
	if !cfg.Baserow.Enabled() {
		logger.Info("baserow integration disabled")

		return nil, nil //nolint:nilnil // a nil store reports the integration as unavailable
	}

	httpClient, err := clients.New(&clients.Config{
		BaseURL:     cfg.Baserow.BaseURL,
		ServiceName: acl.BaserowServiceName,
		Timeout:     cfg.Client.Timeout,
		Retry:       cfg.Client.Retry,
		Circuit:     cfg.Client.CircuitBreaker,
		Transport:   cfg.Client.Transport,
		AuthFunc:    acl.TokenAuth(cfg.Baserow.Token),
		Logger:      logger,
	})
	if err != nil {
		return nil, fmt.Errorf("creating baserow HTTP client: %w", err)
	}

	client := acl.NewBaserowClient(acl.BaserowClientConfig{Client: httpClient, Logger: logger})

	if err := registry.Register(client); err != nil {
		return nil, fmt.Errorf("registering baserow health check: %w", err)
	}

	return client, nil
}

// waitForShutdown blocks until a shutdown signal is received or server error occurs.
// It then performs graceful shutdown of the HTTP server.
func waitForShutdown(
	ctx context.Context,
	logger *slog.Logger,
	server *http.Server,
	serverErr <-chan error,
	shutdownTimeout time.Duration,
) error {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		return fmt.Errorf("server error: %w", err)

	case sig := <-quit:
		logger.Info("received shutdown signal", slog.String("signal", sig.String()))
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()

	logger.Info("initiating graceful shutdown",
		slog.Duration("timeout", shutdownTimeout),
	)

	// Stop accepting new requests, drain in-flight
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	logger.Info("shutdown complete")

	return nil
}

func closeQuietly(c io.Closer) {
	if err := c.Close(); err != nil {
		slog.Warn("close failed", slog.Any("error", err))
	}
}
