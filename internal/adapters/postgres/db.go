package postgres

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v4"
	_ "github.com/lib/pq" // registers the "postgres" driver
	"github.com/pressly/goose/v3"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/atelier-studio/atelier-service/internal/platform/config"
)

const instrumentationName = "github.com/atelier-studio/atelier-service/internal/adapters/postgres"

//go:embed migrations/*.sql
var embedded embed.FS

// Migrations returns the schema migrations.
func Migrations() fs.FS {
	sub, err := fs.Sub(embedded, "migrations")
	if err != nil {
		panic(err)
	}

	return sub
}

// Open connects to PostgreSQL, retrying with exponential backoff until
// cfg.ConnectMaxElapsed has passed.
func Open(ctx context.Context, cfg config.DatabaseConfig, logger *slog.Logger) (*sql.DB, error) {
	policy := backoff.NewExponentialBackOff()
	policy.MaxElapsedTime = cfg.ConnectMaxElapsed
	policy.MaxInterval = 5 * time.Second

	var db *sql.DB

	connect := func() error {
		conn, err := sql.Open("postgres", cfg.DSN)
		if err != nil {
			return backoff.Permanent(fmt.Errorf("open: %w", err))
		}

		if err := conn.PingContext(ctx); err != nil {
			_ = conn.Close()

			return fmt.Errorf("ping: %w", err)
		}

		db = conn

		return nil
	}

	notify := func(err error, wait time.Duration) {
		logger.WarnContext(ctx, "postgres connection failed, retrying",
			slog.Any("error", err),
			slog.Duration("next_attempt_in", wait))
	}

	if err := backoff.RetryNotify(connect, backoff.WithContext(policy, ctx), notify); err != nil {
		return nil, fmt.Errorf("connecting to postgres: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	logger.InfoContext(ctx, "connected to postgres")

	return db, nil
}

// Migrate applies pending migrations.
func Migrate(ctx context.Context, db *sql.DB, logger *slog.Logger) error {
	provider, err := goose.NewProvider(goose.DialectPostgres, db, Migrations())
	if err != nil {
		return fmt.Errorf("creating migration provider: %w", err)
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}

	for _, r := range results {
		logger.InfoContext(ctx, "migration applied",
			slog.Int64("version", r.Source.Version),
			slog.Duration("duration", r.Duration))
	}

	return nil
}

// HealthCheck reports whether the database answers pings.
type HealthCheck struct {
	db *sql.DB
}

// NewHealthCheck creates a readiness check for db.
func NewHealthCheck(db *sql.DB) *HealthCheck {
	return &HealthCheck{db: db}
}

// Name implements ports.HealthChecker.
func (h *HealthCheck) Name() string { return "postgres" }

// Check implements ports.HealthChecker.
func (h *HealthCheck) Check(ctx context.Context) error {
	return h.db.PingContext(ctx)
}

var tracer = otel.Tracer(instrumentationName)

func startSpan(ctx context.Context, op string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return tracer.Start(ctx, "postgres."+op,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(append(attrs, attribute.String("db.system", "postgresql"))...),
	)
}
