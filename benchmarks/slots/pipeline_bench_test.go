package slots_bench

import (
	"context"
	"encoding/json"
	"strconv"
	"testing"
	"time"

	"github.com/osse101/SlotGuard_Go/internal/domain"
	"github.com/osse101/SlotGuard_Go/internal/fraud"
	"github.com/osse101/SlotGuard_Go/internal/gate"
	"github.com/osse101/SlotGuard_Go/internal/ratelimit"
	"github.com/osse101/SlotGuard_Go/internal/signing"
	"github.com/osse101/SlotGuard_Go/internal/slots"
	"github.com/osse101/SlotGuard_Go/internal/spin"
)

const benchKey = "bench-signing-key"

// --- Stubs (zero-overhead fakes for benchmarking) ---

type stubFraud struct{}

func (stubFraud) Record(context.Context, domain.FraudEvent) error { return nil }
func (stubFraud) List(context.Context, fraud.Filter) ([]domain.FraudEvent, error) {
	return nil, nil
}
func (stubFraud) CleanupOldEvents(context.Context, int) (int64, error) { return 0, nil }

// allowAll keeps the limiter out of the measurement
type allowAll struct{}

func (allowAll) Allow(context.Context, string, string, int, time.Duration) error { return nil }

func BenchmarkEngineSpin(b *testing.B) {
	catalog, err := slots.DefaultCatalog()
	if err != nil {
		b.Fatal(err)
	}
	engine := slots.NewEngine(catalog, slots.NewSeededSource(42))
	bet, err := catalog.BetLevel(10)
	if err != nil {
		b.Fatal(err)
	}
	ctx := context.Background()

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := engine.Spin(ctx, slots.MachineClassic, bet, catalog.JackpotSeed); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkSignAndOpen(b *testing.B) {
	signer := signing.NewSigner(benchKey)
	verifier := signing.NewVerifier(benchKey, 0)
	req := domain.SpinRequest{MachineID: "classic", Reels: [3]domain.Symbol{"cherry", "cherry", "cherry"}, Payout: 100, BetAmount: 10}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		env, err := signer.Sign(req)
		if err != nil {
			b.Fatal(err)
		}
		body, _ := json.Marshal(env)
		if _, err := verifier.Open(body); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkValidateSpin(b *testing.B) {
	signer := signing.NewSigner(benchKey)
	g := gate.New(allowAll{}, signing.NewVerifier(benchKey, 0))
	svc := spin.NewService(g, stubFraud{}, spin.DefaultConfig())
	req := domain.SpinRequest{MachineID: "classic", Reels: [3]domain.Symbol{"cherry", "cherry", "cherry"}, Payout: 100, BetAmount: 10}

	// pre-sign outside the timer; every body carries its own nonce
	bodies := make([][]byte, b.N)
	for i := range bodies {
		env, err := signer.Sign(req)
		if err != nil {
			b.Fatal(err)
		}
		bodies[i], _ = json.Marshal(env)
	}
	ctx := context.Background()

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := svc.ValidateSpin(ctx, "bench-"+strconv.Itoa(i%64), bodies[i]); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkMemoryLimiter(b *testing.B) {
	limiter := ratelimit.NewMemoryLimiter(nil)
	ctx := context.Background()

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = limiter.Allow(ctx, "player-"+strconv.Itoa(i%1024), domain.ActionSpin, 1<<30, domain.DefaultRateLimitWindow)
	}
}
