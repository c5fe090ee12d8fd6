package main

import (
	"context"

	"github.com/osse101/SlotGuard_Go/internal/config"
	"github.com/osse101/SlotGuard_Go/internal/signing"
	"github.com/osse101/SlotGuard_Go/internal/slots"
	"github.com/osse101/SlotGuard_Go/internal/validation"
)

type CheckConfigCommand struct{}

func (c *CheckConfigCommand) Name() string {
	return "check-config"
}

func (c *CheckConfigCommand) Description() string {
	return "Validate the server environment and machine catalog"
}

func (c *CheckConfigCommand) Run(ctx context.Context, con *Console, args []string) error {
	con.Header("Checking configuration")

	warnings, err := config.ValidateEnvWithWarnings()
	if err != nil {
		return err
	}
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	con.Info("Port %d, environment %s", cfg.Port, cfg.Environment)
	con.Info("Signatures %s, rate limits in %s", signing.ModeForKey(cfg.RequestSigningKey), cfg.RateLimitBackend)
	if cfg.APIKey == "" {
		con.Info("Admin routes disabled (no API_KEY)")
	}

	catalog, err := slots.LoadCatalogFile(ctx, cfg.MachinesConfig, validation.NewSchemaValidator())
	if err != nil {
		return err
	}
	con.Info("Machine catalog: %d machines, %d bet levels", len(catalog.Machines), len(catalog.BetLevels))

	for _, w := range warnings {
		con.Warning("%s", w)
	}
	if len(warnings) == 0 {
		con.Success("Configuration looks good")
	}
	return nil
}
