// Package pgtest starts throwaway Postgres containers for integration tests.
// It hands out connection strings only, so any package may use it from its
// own tests.
package pgtest

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	image          = "postgres:15-alpine"
	credential     = "slotguard"
	readyLog       = "database system is ready to accept connections"
	startupTimeout = 30 * time.Second
)

// ErrDockerUnavailable is returned when the container runtime cannot be reached
var ErrDockerUnavailable = errors.New("docker unavailable")

// Container is a running Postgres instance
type Container struct {
	ConnString string
	pg         *postgres.PostgresContainer
}

// Run starts a container and waits until it accepts connections. The
// database, user and password are all "slotguard".
func Run(ctx context.Context) (c *Container, err error) {
	// testcontainers panics rather than erroring when no Docker socket exists
	defer func() {
		if r := recover(); r != nil {
			c, err = nil, fmt.Errorf("%w: %v", ErrDockerUnavailable, r)
		}
	}()

	pg, err := postgres.Run(ctx, image,
		postgres.WithDatabase(credential),
		postgres.WithUsername(credential),
		postgres.WithPassword(credential),
		testcontainers.WithWaitStrategy(
			wait.ForLog(readyLog).WithOccurrence(2).WithStartupTimeout(startupTimeout)),
	)
	if err != nil {
		return nil, err
	}

	connStr, err := pg.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		_ = pg.Terminate(ctx)
		return nil, err
	}
	return &Container{ConnString: connStr, pg: pg}, nil
}

// Terminate stops and removes the container
func (c *Container) Terminate(ctx context.Context) error {
	return c.pg.Terminate(ctx)
}

// Start runs a container for the lifetime of t and returns its connection
// string. The test is skipped under -short or when Docker is unavailable.
func Start(t testing.TB) string {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	c, err := Run(context.Background())
	if errors.Is(err, ErrDockerUnavailable) {
		t.Skipf("Skipping integration test: %v", err)
	}
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}
	t.Cleanup(func() {
		if err := c.Terminate(context.Background()); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})
	return c.ConnString
}
