package main

import (
	"context"
	"fmt"
	"time"

	"github.com/osse101/SlotGuard_Go/internal/database"
)

const (
	waitMaxRetries    = 30
	waitRetryInterval = 2 * time.Second
)

type WaitForDBCommand struct{}

func (c *WaitForDBCommand) Name() string {
	return "wait-for-db"
}

func (c *WaitForDBCommand) Description() string {
	return "Wait for the database to accept connections"
}

func (c *WaitForDBCommand) Run(ctx context.Context, con *Console, args []string) error {
	con.Header("Waiting for database")

	connStr := dbConnString()
	var err error
	for i := 0; i < waitMaxRetries; i++ {
		pool, perr := database.NewPool(ctx, connStr, database.PoolOptions{MaxConns: 1})
		if perr == nil {
			pool.Close()
			con.Success("Database is ready")
			return nil
		}
		err = perr
		con.Info("Database not ready (%d/%d): %v", i+1, waitMaxRetries, err)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(waitRetryInterval):
		}
	}

	return fmt.Errorf("database not ready after %d attempts: %w", waitMaxRetries, err)
}
