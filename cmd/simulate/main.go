// Command simulate plays a batch of spins as a game client would, validating
// each one against the server (or locally when offline) and printing the
// resulting balance.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/osse101/SlotGuard_Go/internal/client"
	"github.com/osse101/SlotGuard_Go/internal/config"
	"github.com/osse101/SlotGuard_Go/internal/domain"
	"github.com/osse101/SlotGuard_Go/internal/guard"
	"github.com/osse101/SlotGuard_Go/internal/kvstore"
	"github.com/osse101/SlotGuard_Go/internal/logger"
	"github.com/osse101/SlotGuard_Go/internal/signing"
	"github.com/osse101/SlotGuard_Go/internal/slots"
)

func main() {
	spins := flag.Int("spins", 20, "number of spins to play")
	machine := flag.String("machine", slots.MachineClassic, "machine id")
	bet := flag.Int64("bet", 10, "bet amount")
	seed := flag.Uint64("seed", 0, "deterministic RNG seed (0 uses crypto/rand)")
	offline := flag.Bool("offline", false, "skip the server and trust local outcomes")
	verbose := flag.Bool("v", false, "debug logging")
	flag.Parse()

	level := "warn"
	if *verbose {
		level = "debug"
	}
	logger.InitLogger(logger.NewConfig(level, "text", "slotguard-client", "dev", "dev", false))

	ctx := context.Background()
	cfg := config.LoadClient()
	if *offline {
		cfg.BaseURL = ""
	}
	if err := client.LoadSecrets(ctx, cfg); err != nil {
		log.Fatalf("Failed to load secrets: %v", err)
	}

	store, err := kvstore.OpenSQLite(cfg.StatePath)
	if err != nil {
		log.Fatalf("Failed to open state store: %v", err)
	}
	defer store.Close()

	g, err := guard.New(ctx, store, cfg.EncryptionKey)
	if err != nil {
		log.Fatalf("Failed to create guard: %v", err)
	}

	catalog, err := slots.DefaultCatalog()
	if err != nil {
		log.Fatalf("Failed to load catalog: %v", err)
	}

	var rng slots.RandomSource
	if *seed != 0 {
		rng = slots.NewSeededSource(*seed)
	}

	notify := func(_ context.Context, msg string) { fmt.Fprintln(os.Stderr, msg) }
	backend := client.NewBackend(cfg, signing.NewSigner(cfg.SigningKey), notify)
	session := client.NewSession(ctx, slots.NewEngine(catalog, rng), g, backend)

	start := session.State()
	fmt.Printf("Starting balance: %d coins, jackpot pool %d\n", start.Coins, start.JackpotPool)

	var played, fallbacks, clamped int
	var won int64
	for i := 0; i < *spins; i++ {
		report, err := session.Spin(ctx, *machine, *bet)
		if err != nil {
			if errors.Is(err, domain.ErrInsufficientCoins) || client.IsTerminal(err) {
				fmt.Printf("Stopped after %d spins: %v\n", played, err)
			} else {
				fmt.Printf("Spin %d failed: %v\n", i+1, err)
			}
			break
		}
		played++
		won += report.Won
		if report.Outcome.Source == domain.SourceLocalFallback {
			fallbacks++
		}
		if !report.Outcome.Valid {
			clamped++
		}

		free := ""
		if report.FreeSpin {
			free = " (free)"
		}
		fmt.Printf("%3d  %-8s %-8s %-8s  won %6d%s\n", i+1,
			report.Result.Request.Reels[0], report.Result.Request.Reels[1], report.Result.Request.Reels[2],
			report.Won, free)
	}

	end := session.State()
	fmt.Printf("\nPlayed %d spins, won %d, balance %d -> %d, free spins left %d\n",
		played, won, start.Coins, end.Coins, end.FreeSpins)
	fmt.Printf("Local fallbacks: %d, server-clamped: %d, anomalies recorded: %d\n",
		fallbacks, clamped, len(g.Anomalies(ctx)))
}
