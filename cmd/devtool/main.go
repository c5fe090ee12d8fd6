// Command devtool bundles operator chores: waiting for and migrating the
// database, checking the environment and probing a running server.
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/osse101/SlotGuard_Go/internal/config"
	"github.com/osse101/SlotGuard_Go/internal/database"
)

var (
	errNoCommand      = errors.New("no command given")
	errUnknownCommand = errors.New("unknown command")
)

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	con := NewConsole(os.Stdout)
	registry := NewRegistry(
		&WaitForDBCommand{},
		&MigrateCommand{},
		&CheckConfigCommand{},
		&HealthCheckCommand{},
	)

	if err := registry.Dispatch(ctx, con, os.Args[1:]); err != nil {
		if !errors.Is(err, errNoCommand) {
			con.Error("%v", err)
		}
		stop()
		os.Exit(1)
	}
}

// dbConnString builds the connection string from the same variables and
// defaults the server uses
func dbConnString() string {
	if url := os.Getenv("DB_URL"); url != "" {
		return url
	}
	return database.ConnString(
		getEnv("DB_USER", "postgres"),
		getEnv("DB_PASSWORD", "postgres"),
		getEnv("DB_HOST", "localhost"),
		getEnv("DB_PORT", "5432"),
		getEnv("DB_NAME", config.DefaultDBName),
	)
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}
