// Package bootstrap assembles the validation server from configuration and
// tears it down again.
package bootstrap

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/SlotGuard_Go/internal/auth"
	"github.com/osse101/SlotGuard_Go/internal/config"
	"github.com/osse101/SlotGuard_Go/internal/database"
	"github.com/osse101/SlotGuard_Go/internal/database/postgres"
	"github.com/osse101/SlotGuard_Go/internal/fraud"
	"github.com/osse101/SlotGuard_Go/internal/gate"
	"github.com/osse101/SlotGuard_Go/internal/logger"
	"github.com/osse101/SlotGuard_Go/internal/purchase"
	"github.com/osse101/SlotGuard_Go/internal/ratelimit"
	"github.com/osse101/SlotGuard_Go/internal/scheduler"
	"github.com/osse101/SlotGuard_Go/internal/server"
	"github.com/osse101/SlotGuard_Go/internal/signing"
	"github.com/osse101/SlotGuard_Go/internal/slots"
	"github.com/osse101/SlotGuard_Go/internal/spin"
	"github.com/osse101/SlotGuard_Go/internal/validation"
	"github.com/osse101/SlotGuard_Go/internal/worker"
)

// App is a fully wired server with its background maintenance
type App struct {
	Server    *server.Server
	Scheduler *scheduler.Scheduler
	Pool      *worker.Pool
	DB        *pgxpool.Pool
}

// Build connects to the database, applies migrations and wires every
// service. The caller owns the result and releases it with GracefulShutdown.
func Build(ctx context.Context, cfg *config.Config) (*App, error) {
	log := logger.FromContext(ctx)
	log.Debug(LogMsgConfigurationLoaded,
		LogFieldDBHost, cfg.DBHost,
		LogFieldDBPort, cfg.DBPort,
		LogFieldDBName, cfg.DBName,
		LogFieldPort, cfg.Port)

	db, err := database.NewPool(ctx, cfg.GetDBConnString(), database.PoolOptions{
		MaxConns:        cfg.DBMaxConns,
		MaxConnIdleTime: cfg.DBMaxConnIdleTime,
		MaxConnLifetime: cfg.DBMaxConnLifetime,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgConnectDatabase, err)
	}

	app, err := build(ctx, cfg, db)
	if err != nil {
		db.Close()
		return nil, err
	}
	return app, nil
}

func build(ctx context.Context, cfg *config.Config, db *pgxpool.Pool) (*App, error) {
	log := logger.FromContext(ctx)

	version, err := database.Migrate(ctx, db)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgMigrate, err)
	}
	log.Info(LogMsgMigrationsApplied, LogFieldSchema, version)

	catalog, err := slots.LoadCatalogFile(ctx, cfg.MachinesConfig, validation.NewSchemaValidator())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgLoadCatalog, err)
	}

	identity, err := auth.NewJWTProvider(cfg.AuthTokenSecret)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgIdentity, err)
	}

	var limiter ratelimit.Limiter
	if cfg.RateLimitBackend == ratelimit.BackendMemory {
		limiter = ratelimit.NewMemoryLimiter(nil)
	} else {
		limiter = ratelimit.NewPostgresLimiter(db)
	}

	g := gate.New(limiter, signing.NewVerifier(cfg.RequestSigningKey, cfg.RequestTTL))
	log.Info(LogMsgConfigurationLoaded,
		LogFieldSigning, g.Mode().String(),
		LogFieldLimiter, cfg.RateLimitBackend)
	if g.Mode() == signing.ModeDisabled {
		log.Warn(signing.LogMsgSigningDisabled)
	}

	fraudSvc := fraud.NewService(postgres.NewFraudRepository(db))
	spinSvc := spin.NewService(g, fraudSvc, spin.Config{
		RateLimit:           cfg.SpinRateLimit,
		RateWindow:          cfg.RateLimitWindow,
		MaxPayoutMultiplier: cfg.MaxPayoutMultiplier,
	})
	purchaseSvc := purchase.NewService(g, fraudSvc, purchase.Config{
		RateLimit:  cfg.PurchaseRateLimit,
		RateWindow: cfg.RateLimitWindow,
	})

	srv := server.NewServer(server.Config{
		Port:           cfg.Port,
		APIKey:         cfg.APIKey,
		TrustedProxies: cfg.TrustedProxies,
		SignatureMode:  g.Mode().String(),
	}, server.Services{
		Spin:     spinSvc,
		Purchase: purchaseSvc,
		Fraud:    fraudSvc,
		Catalog:  catalog,
		Identity: identity,
		DB:       db,
	})

	pool := worker.NewPool(MaintenanceWorkers, MaintenanceQueueSize, MaintenanceTimeout)
	pool.Start()

	sched := scheduler.New(pool)
	scheduleMaintenance(ctx, sched, cfg, fraudSvc, db)

	return &App{Server: srv, Scheduler: sched, Pool: pool, DB: db}, nil
}

// scheduleMaintenance registers the retention and purge jobs. Fraud cleanup
// also runs once at startup so a long-stopped server catches up.
func scheduleMaintenance(ctx context.Context, sched *scheduler.Scheduler, cfg *config.Config, fraudSvc fraud.Service, db *pgxpool.Pool) {
	log := logger.FromContext(ctx)

	cleanupEvery := cfg.FraudCleanupInterval
	if cleanupEvery <= 0 {
		cleanupEvery = config.DefaultFraudCleanupInterval
	}
	sched.Schedule(scheduler.Entry{
		Name:      JobFraudCleanup,
		Every:     cleanupEvery,
		Job:       fraud.NewCleanupJob(fraudSvc, cfg.FraudRetentionDays),
		Immediate: true,
	})
	log.Info(LogMsgMaintenanceStarted, LogFieldJob, JobFraudCleanup, LogFieldInterval, cleanupEvery)

	if cfg.RateLimitBackend == ratelimit.BackendPostgres {
		sched.Schedule(scheduler.Entry{
			Name:  JobRateLimitPurge,
			Every: RateLimitPurgeInterval,
			Job:   ratelimit.NewPurgeJob(db, RateLimitPurgeGrace),
		})
		log.Info(LogMsgMaintenanceStarted, LogFieldJob, JobRateLimitPurge, LogFieldInterval, RateLimitPurgeInterval)
	}
}
