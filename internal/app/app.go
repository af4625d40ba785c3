// Package app assembles the application from a Config: it opens the
// configured gateway, applies migrations, and builds the repositories and
// services shared by the HTTP server and tripctl.
package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib" // registers "pgx" driver for database/sql
	"github.com/pressly/goose/v3"

	"github.com/pkordes/tripvote/internal/config"
	"github.com/pkordes/tripvote/internal/gateway"
	"github.com/pkordes/tripvote/internal/metrics"
	"github.com/pkordes/tripvote/internal/recommend"
	"github.com/pkordes/tripvote/internal/repo"
	"github.com/pkordes/tripvote/internal/service"
	"github.com/pkordes/tripvote/migrations"
)

// App holds every long-lived dependency. Close releases them.
type App struct {
	Gateway  gateway.Gateway
	Metrics  *metrics.Collector
	Catalog  *recommend.Catalog
	Identity repo.IdentityRepo

	Trips           *service.TripService
	Proposals       *service.ProposalService
	Schedules       *service.ScheduleService
	Comments        *service.CommentService
	Maps            *service.MapService
	Recommendations *service.RecommendationService

	closers []func() error
}

// New opens the store selected by cfg.StoreDriver and wires the services on
// top of it. Background work (Badger GC) stops when ctx is cancelled.
func New(ctx context.Context, cfg config.Config, logger *slog.Logger) (*App, error) {
	if logger == nil {
		logger = slog.Default()
	}

	a := &App{Metrics: metrics.New()}
	gw, err := a.openGateway(ctx, cfg, logger)
	if err != nil {
		_ = a.Close()
		return nil, err
	}
	a.Gateway = gw

	catalog, err := recommend.Default()
	if err != nil {
		_ = a.Close()
		return nil, fmt.Errorf("app.New: load catalog: %w", err)
	}
	a.Catalog = catalog

	a.wire(logger)
	logger.Info("store ready", "driver", cfg.StoreDriver)
	return a, nil
}

// NewWithGateway wires the services over an already-open gateway. Used by
// tests and callers that manage the store themselves.
func NewWithGateway(gw gateway.Gateway, logger *slog.Logger) (*App, error) {
	if logger == nil {
		logger = slog.Default()
	}
	catalog, err := recommend.Default()
	if err != nil {
		return nil, fmt.Errorf("app.NewWithGateway: load catalog: %w", err)
	}
	a := &App{Gateway: gw, Metrics: metrics.New(), Catalog: catalog}
	a.wire(logger)
	return a, nil
}

func (a *App) wire(logger *slog.Logger) {
	trips := repo.NewTripRepo(a.Gateway, repo.SeedTrips())
	comments := repo.NewCommentRepo(a.Gateway)
	pins := repo.NewPinRepo(a.Gateway)
	a.Identity = repo.NewIdentityRepo(a.Gateway)

	opts := []service.Option{service.WithLogger(logger), service.WithMetrics(a.Metrics)}
	a.Trips = service.NewTripService(trips, opts...)
	a.Proposals = service.NewProposalService(trips, comments, opts...)
	a.Schedules = service.NewScheduleService(trips, opts...)
	a.Comments = service.NewCommentService(trips, comments, opts...)
	a.Maps = service.NewMapService(trips, pins, a.Catalog, opts...)
	a.Recommendations = service.NewRecommendationService(a.Catalog, nil, opts...)
}

func (a *App) openGateway(ctx context.Context, cfg config.Config, logger *slog.Logger) (gateway.Gateway, error) {
	switch cfg.StoreDriver {
	case config.DriverMemory, "":
		return gateway.NewMemory(), nil

	case config.DriverBadger:
		bcfg := gateway.DefaultBadgerConfig(cfg.DataPath)
		bcfg.Logger = logger
		b, err := gateway.OpenBadger(bcfg)
		if err != nil {
			return nil, fmt.Errorf("app.openGateway: %w", err)
		}
		a.closers = append(a.closers, b.Close)
		// Closers run in reverse, so GC is stopped and joined before b.Close.
		gcCtx, stopGC := context.WithCancel(ctx)
		gcDone := make(chan struct{})
		go func() {
			defer close(gcDone)
			b.RunGC(gcCtx)
		}()
		a.closers = append(a.closers, func() error {
			stopGC()
			<-gcDone
			return nil
		})
		return b, nil

	case config.DriverSQLite:
		db, err := gateway.OpenSQLiteDB(cfg.DataPath)
		if err != nil {
			return nil, fmt.Errorf("app.openGateway: %w", err)
		}
		a.closers = append(a.closers, db.Close)
		if err := migrate(ctx, db, goose.DialectSQLite3, logger); err != nil {
			return nil, err
		}
		return gateway.NewSQLite(db), nil

	case config.DriverPostgres:
		if err := MigratePostgres(ctx, cfg.DatabaseURL, logger); err != nil {
			return nil, err
		}
		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("app.openGateway: create pool: %w", err)
		}
		a.closers = append(a.closers, func() error { pool.Close(); return nil })
		// Verify the DB is reachable before accepting traffic.
		if err := pool.Ping(ctx); err != nil {
			return nil, fmt.Errorf("app.openGateway: ping: %w", err)
		}
		return gateway.NewPostgres(pool), nil
	}
	return nil, fmt.Errorf("app.openGateway: unsupported store driver %q", cfg.StoreDriver)
}

// Migrate applies pending migrations for SQL-backed drivers. It is a no-op
// for memory and badger.
func Migrate(ctx context.Context, cfg config.Config, logger *slog.Logger) error {
	switch cfg.StoreDriver {
	case config.DriverPostgres:
		return MigratePostgres(ctx, cfg.DatabaseURL, logger)
	case config.DriverSQLite:
		db, err := gateway.OpenSQLiteDB(cfg.DataPath)
		if err != nil {
			return fmt.Errorf("app.Migrate: %w", err)
		}
		defer db.Close()
		return migrate(ctx, db, goose.DialectSQLite3, logger)
	}
	return nil
}

// MigratePostgres opens a database/sql handle through the pgx stdlib driver
// (goose needs *sql.DB) and applies the Postgres migrations.
func MigratePostgres(ctx context.Context, dsn string, logger *slog.Logger) error {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return fmt.Errorf("app.MigratePostgres: open: %w", err)
	}
	defer db.Close()
	return migrate(ctx, db, goose.DialectPostgres, logger)
}

func migrate(ctx context.Context, db *sql.DB, dialect goose.Dialect, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}
	n, err := migrations.Up(ctx, db, dialect)
	if err != nil {
		return fmt.Errorf("app.migrate: %w", err)
	}
	logger.Info("migrations applied", "dialect", string(dialect), "count", n)
	return nil
}

// Close releases the store. Safe to call more than once.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		errs = append(errs, a.closers[i]())
	}
	a.closers = nil
	return errors.Join(errs...)
}
