package postgres

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"

	"github.com/osse101/SlotGuard_Go/internal/database"
	"github.com/osse101/SlotGuard_Go/internal/testing/pgtest"
)

// migratedPool connects to a fresh container with the schema applied
func migratedPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	ctx := context.Background()

	pool, err := database.NewPool(ctx, pgtest.Start(t), database.PoolOptions{MaxConns: 20})
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	_, err = database.Migrate(ctx, pool)
	require.NoError(t, err)
	return pool
}
