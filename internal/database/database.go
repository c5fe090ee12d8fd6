// Package database opens the server's Postgres pool and migrates its schema.
package database

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/SlotGuard_Go/internal/logger"
)

// Pool is the part of a connection pool readiness checks need
type Pool interface {
	Ping(ctx context.Context) error
	Close()
}

// PoolOptions sizes a connection pool. Zero values take pgx defaults except
// MaxConns, which falls back to DefaultMaxConnections.
type PoolOptions struct {
	MaxConns        int
	MaxConnIdleTime time.Duration
	MaxConnLifetime time.Duration
}

// ConnString builds a connection URL from its parts
func ConnString(user, password, host, port, name string) string {
	return fmt.Sprintf(ConnStringFormat, user, password, host, port, name)
}

// NewPool connects to connString and pings it once. The pool is closed
// again if the ping fails.
func NewPool(ctx context.Context, connString string, opts PoolOptions) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToParseConnString, err)
	}

	maxConns := opts.MaxConns
	if maxConns <= 0 {
		maxConns = DefaultMaxConnections
	}
	cfg.MaxConns = int32(min(maxConns, math.MaxInt32))
	cfg.MinConns = min(DefaultMinConnections, cfg.MaxConns)
	if opts.MaxConnLifetime > 0 {
		cfg.MaxConnLifetime = opts.MaxConnLifetime
	}
	if opts.MaxConnIdleTime > 0 {
		cfg.MaxConnIdleTime = opts.MaxConnIdleTime
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToCreatePool, err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToPingDatabase, err)
	}

	logger.FromContext(ctx).Info(LogMsgSuccessfullyConnectedToDatabase,
		LogFieldHost, cfg.ConnConfig.Host,
		LogFieldMaxConns, cfg.MaxConns)
	return pool, nil
}
