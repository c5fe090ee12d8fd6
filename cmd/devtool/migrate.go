package main

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/osse101/SlotGuard_Go/internal/database"
	"github.com/osse101/SlotGuard_Go/migrations"
)

const migrateTimeout = 5 * time.Minute

type MigrateCommand struct{}

func (c *MigrateCommand) Name() string {
	return "migrate"
}

func (c *MigrateCommand) Description() string {
	return "Manage database migrations (up, status, create <name>)"
}

func (c *MigrateCommand) Run(ctx context.Context, con *Console, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("subcommand required: up, status, create")
	}

	// create writes a new file into the source tree; no DB connection needed
	if args[0] == "create" {
		if len(args) < 2 {
			return fmt.Errorf("migration name required for create")
		}
		if err := goose.Create(nil, "migrations", args[1], "sql"); err != nil {
			return err
		}
		con.Success("Created migration %s", args[1])
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, migrateTimeout)
	defer cancel()

	switch args[0] {
	case "up":
		pool, err := database.NewPool(ctx, dbConnString(), database.PoolOptions{MaxConns: 2})
		if err != nil {
			return err
		}
		defer pool.Close()

		version, err := database.Migrate(ctx, pool)
		if err != nil {
			return err
		}
		con.Success("Schema at version %d", version)
		return nil

	case "status":
		db, err := sql.Open(database.MigrationDriver, dbConnString())
		if err != nil {
			return err
		}
		defer db.Close()

		goose.SetBaseFS(migrations.FS)
		if err := goose.SetDialect(database.MigrationDialect); err != nil {
			return err
		}
		return goose.StatusContext(ctx, db, ".")

	default:
		return fmt.Errorf("unknown subcommand %q: expected up, status or create", args[0])
	}
}
