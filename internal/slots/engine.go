package slots

import (
	"context"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/osse101/SlotGuard_Go/internal/domain"
	"github.com/osse101/SlotGuard_Go/internal/logger"
)

// SpinOutcome is what three reel symbols pay on a given machine
type SpinOutcome struct {
	Payout      int64  `json:"payout"`
	IsJackpot   bool   `json:"isJackpot"`
	IsFreeSpins bool   `json:"isFreeSpins"`
	Combo       string `json:"combo,omitempty"`
}

// SpinResult is a complete locally resolved spin
type SpinResult struct {
	Request   domain.SpinRequest
	Outcome   SpinOutcome
	FreeSpins int
}

// Engine resolves spins against a machine catalog
type Engine struct {
	catalog *Catalog
	rng     RandomSource // Injectable for testing
	now     func() time.Time
}

// NewEngine creates an engine drawing from rng
func NewEngine(catalog *Catalog, rng RandomSource) *Engine {
	if rng == nil {
		rng = NewCryptoSource()
	}
	return &Engine{
		catalog: catalog,
		rng:     rng,
		now:     time.Now,
	}
}

// Catalog returns the engine's machine catalog
func (e *Engine) Catalog() *Catalog {
	return e.catalog
}

// Spin draws three symbols and a multiplier for machineID and resolves them.
// jackpotPool is paid out in full when the jackpot combo lands.
func (e *Engine) Spin(ctx context.Context, machineID string, bet BetLevel, jackpotPool int64) (*SpinResult, error) {
	m, err := e.catalog.Machine(machineID)
	if err != nil {
		return nil, err
	}

	var reels [3]domain.Symbol
	for i := range reels {
		reels[i] = DrawSymbol(e.rng, m.Weights, m.fallback())
	}

	multiplier := DrawMultiplier(e.rng, m.MultiplierChance, m.MultiplierSet)
	outcome := ResolveSpin(reels, bet.Multiplier, multiplier, m)

	result := &SpinResult{
		Outcome: outcome,
		Request: domain.SpinRequest{
			MachineID:      m.ID,
			Reels:          reels,
			Payout:         outcome.Payout,
			BetAmount:      bet.Amount,
			BetMultiplier:  bet.Multiplier,
			SpinMultiplier: multiplier,
			IsJackpot:      outcome.IsJackpot,
			Timestamp:      e.now().UnixMilli(),
		},
	}
	if outcome.IsJackpot {
		result.Request.JackpotWin = jackpotPool
	}
	if outcome.IsFreeSpins {
		result.FreeSpins = m.FreeSpinsAmount
	}

	logger.FromContext(ctx).Debug(LogMsgSpinResolved,
		LogFieldMachineID, m.ID,
		LogFieldCombo, ComboKey(reels),
		LogFieldPayout, outcome.Payout)

	return result, nil
}

// ComboKey joins three symbols in reel order
func ComboKey(reels [3]domain.Symbol) string {
	parts := make([]string, len(reels))
	for i, s := range reels {
		parts[i] = string(s)
	}
	return strings.Join(parts, ComboSeparator)
}

// DrawSymbol picks one symbol with probability proportional to its weight.
// Symbols are walked in sorted order so a given roll always maps to the same
// symbol. A zero-weight symbol is never returned; when nothing is selected
// (empty table) the fallback symbol is returned.
func DrawSymbol(rng RandomSource, weights map[domain.Symbol]uint, fallback domain.Symbol) domain.Symbol {
	symbols := make([]domain.Symbol, 0, len(weights))
	var total uint
	for s, w := range weights {
		if w == 0 {
			continue
		}
		symbols = append(symbols, s)
		total += w
	}
	if total == 0 {
		return fallback
	}
	sort.Slice(symbols, func(i, j int) bool { return symbols[i] < symbols[j] })

	roll := rng.Float64() * float64(total)

	cumulative := 0.0
	for _, s := range symbols {
		cumulative += float64(weights[s])
		if roll < cumulative {
			return s
		}
	}

	return fallback
}

// ResolveSpin computes the payout for reels on machine cfg.
// An exact payout-table match wins. Otherwise wilds stand in for the other
// symbols when those all agree; three wilds pay the all-wild payout.
func ResolveSpin(reels [3]domain.Symbol, betMultiplier, activeMultiplier float64, cfg *MachineConfig) SpinOutcome {
	combo := ComboKey(reels)

	if base, ok := cfg.Payouts[combo]; ok {
		return SpinOutcome{
			Payout:      scale(base, betMultiplier, activeMultiplier),
			IsJackpot:   combo == cfg.JackpotCombo,
			IsFreeSpins: combo == cfg.FreeSpinCombo,
			Combo:       combo,
		}
	}

	wild := cfg.wild()
	var nonWild []domain.Symbol
	for _, s := range reels {
		if s != wild {
			nonWild = append(nonWild, s)
		}
	}
	if len(nonWild) == len(reels) {
		return SpinOutcome{}
	}

	if len(nonWild) == 0 {
		return SpinOutcome{
			Payout: scale(orDefault(cfg.AllWildPayout, DefaultAllWildPayout), betMultiplier, activeMultiplier),
			Combo:  combo,
		}
	}

	first := nonWild[0]
	for _, s := range nonWild[1:] {
		if s != first {
			return SpinOutcome{}
		}
	}

	// A zero table entry (the scatter combo) pays the default wild payout.
	wildCombo := ComboKey([3]domain.Symbol{first, first, first})
	base := orDefault(cfg.Payouts[wildCombo], orDefault(cfg.DefaultWildPayout, DefaultWildPayout))
	return SpinOutcome{
		Payout: scale(base, betMultiplier, activeMultiplier),
		Combo:  wildCombo,
	}
}

// DrawMultiplier returns a uniformly chosen member of set with probability
// chance, otherwise 1
func DrawMultiplier(rng RandomSource, chance float64, set []float64) float64 {
	if len(set) == 0 {
		return NoMultiplier
	}
	if rng.Float64() >= chance {
		return NoMultiplier
	}
	idx := int(rng.Float64() * float64(len(set)))
	if idx >= len(set) {
		idx = len(set) - 1
	}
	return set[idx]
}

// scale returns floor(base × bet × mult) computed exactly
func scale(base int64, bet, mult float64) int64 {
	if !finite(bet) || !finite(mult) {
		return 0
	}
	return decimal.NewFromInt(base).
		Mul(decimal.NewFromFloat(bet)).
		Mul(decimal.NewFromFloat(mult)).
		Floor().
		IntPart()
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

func orDefault(v, def int64) int64 {
	if v == 0 {
		return def
	}
	return v
}
