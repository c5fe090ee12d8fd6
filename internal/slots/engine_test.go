package slots

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/SlotGuard_Go/internal/domain"
)

// sequence replays vals in order and then repeats the last one
func sequence(vals ...float64) RandomSource {
	i := 0
	return RandomFunc(func() float64 {
		v := vals[i]
		if i < len(vals)-1 {
			i++
		}
		return v
	})
}

func classic(t *testing.T) *MachineConfig {
	t.Helper()
	catalog, err := DefaultCatalog()
	require.NoError(t, err)
	m, err := catalog.Machine(MachineClassic)
	require.NoError(t, err)
	return m
}

func TestDrawSymbol_ConvergesToWeights(t *testing.T) {
	weights := map[domain.Symbol]uint{
		SymbolCherry: 50,
		SymbolLemon:  30,
		SymbolSeven:  20,
		SymbolGrape:  0,
	}
	rng := NewSeededSource(42)

	const draws = 200000
	counts := make(map[domain.Symbol]int)
	for i := 0; i < draws; i++ {
		counts[DrawSymbol(rng, weights, SymbolCherry)]++
	}

	assert.Zero(t, counts[SymbolGrape], "zero-weight symbol must never be drawn")
	for sym, w := range weights {
		if w == 0 {
			continue
		}
		got := float64(counts[sym]) / draws
		want := float64(w) / 100
		assert.InDelta(t, want, got, 0.01, "frequency of %s", sym)
	}
}

func TestDrawSymbol_ZeroWeightNeverDrawnAtEdges(t *testing.T) {
	weights := map[domain.Symbol]uint{
		"aaa":        0,
		SymbolCherry: 1,
		"zzz":        0,
	}
	for _, roll := range []float64{0, 0.5, math.Nextafter(1, 0)} {
		assert.Equal(t, SymbolCherry, DrawSymbol(sequence(roll), weights, SymbolLemon))
	}
}

func TestDrawSymbol_Fallback(t *testing.T) {
	t.Run("empty table", func(t *testing.T) {
		assert.Equal(t, SymbolCherry, DrawSymbol(sequence(0.3), nil, SymbolCherry))
	})
	t.Run("all zero weights", func(t *testing.T) {
		weights := map[domain.Symbol]uint{SymbolSeven: 0, SymbolLemon: 0}
		assert.Equal(t, SymbolCherry, DrawSymbol(sequence(0.3), weights, SymbolCherry))
	})
	t.Run("roll past the table", func(t *testing.T) {
		weights := map[domain.Symbol]uint{SymbolSeven: 1}
		assert.Equal(t, SymbolCherry, DrawSymbol(sequence(1.0), weights, SymbolCherry))
	})
}

func TestDrawSymbol_Deterministic(t *testing.T) {
	weights := map[domain.Symbol]uint{SymbolCherry: 1, SymbolLemon: 1, SymbolSeven: 2}
	// sorted order: cherry [0,1) lemon [1,2) seven [2,4)
	assert.Equal(t, SymbolCherry, DrawSymbol(sequence(0.1), weights, SymbolGrape))
	assert.Equal(t, SymbolLemon, DrawSymbol(sequence(0.3), weights, SymbolGrape))
	assert.Equal(t, SymbolSeven, DrawSymbol(sequence(0.9), weights, SymbolGrape))
}

func TestResolveSpin(t *testing.T) {
	cfg := classic(t)

	tests := []struct {
		name        string
		reels       [3]domain.Symbol
		bet         float64
		mult        float64
		wantPayout  int64
		wantJackpot bool
		wantFree    bool
		wantCombo   string
	}{
		{
			name:        "seven jackpot",
			reels:       [3]domain.Symbol{SymbolSeven, SymbolSeven, SymbolSeven},
			bet:         1,
			mult:        1,
			wantPayout:  1000,
			wantJackpot: true,
			wantCombo:   "seven|seven|seven",
		},
		{
			name:       "wild substitutes for cherry",
			reels:      [3]domain.Symbol{SymbolCherry, SymbolCherry, SymbolWild},
			bet:        2,
			mult:       1,
			wantPayout: 200,
			wantCombo:  "cherry|cherry|cherry",
		},
		{
			name:       "wild in the middle",
			reels:      [3]domain.Symbol{SymbolLemon, SymbolWild, SymbolLemon},
			bet:        1,
			mult:       2,
			wantPayout: 160,
			wantCombo:  "lemon|lemon|lemon",
		},
		{
			name:       "no match",
			reels:      [3]domain.Symbol{SymbolCherry, SymbolLemon, SymbolOrange},
			bet:        1,
			mult:       1,
			wantPayout: 0,
		},
		{
			name:       "wild with disagreeing symbols",
			reels:      [3]domain.Symbol{SymbolCherry, SymbolWild, SymbolLemon},
			bet:        1,
			mult:       1,
			wantPayout: 0,
		},
		{
			name:       "all wild",
			reels:      [3]domain.Symbol{SymbolWild, SymbolWild, SymbolWild},
			bet:        1.5,
			mult:       1,
			wantPayout: 1500,
			wantCombo:  "wild|wild|wild",
		},
		{
			name:      "scatter free spins",
			reels:     [3]domain.Symbol{SymbolScatter, SymbolScatter, SymbolScatter},
			bet:       2,
			mult:      3,
			wantFree:  true,
			wantCombo: "scatter|scatter|scatter",
		},
		{
			name:       "wild with symbol lacking a table entry pays default",
			reels:      [3]domain.Symbol{SymbolWild, "bell", "bell"},
			bet:        1,
			mult:       1,
			wantPayout: 50,
			wantCombo:  "bell|bell|bell",
		},
		{
			name:       "wild with scatters pays default",
			reels:      [3]domain.Symbol{SymbolScatter, SymbolWild, SymbolScatter},
			bet:        1,
			mult:       1,
			wantPayout: 50,
			wantCombo:  "scatter|scatter|scatter",
		},
		{
			name:       "fractional bet multiplier floors exactly",
			reels:      [3]domain.Symbol{SymbolLemon, SymbolLemon, SymbolLemon},
			bet:        1.2,
			mult:       1,
			wantPayout: 96,
			wantCombo:  "lemon|lemon|lemon",
		},
		{
			name:       "partial payout is floored",
			reels:      [3]domain.Symbol{SymbolCherry, SymbolCherry, SymbolCherry},
			bet:        1.005,
			mult:       1,
			wantPayout: 100,
			wantCombo:  "cherry|cherry|cherry",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveSpin(tt.reels, tt.bet, tt.mult, cfg)
			assert.Equal(t, tt.wantPayout, got.Payout)
			assert.Equal(t, tt.wantJackpot, got.IsJackpot)
			assert.Equal(t, tt.wantFree, got.IsFreeSpins)
			assert.Equal(t, tt.wantCombo, got.Combo)
		})
	}
}

func TestResolveSpin_OtherMachines(t *testing.T) {
	catalog, err := DefaultCatalog()
	require.NoError(t, err)

	space, err := catalog.Machine(MachineSpace)
	require.NoError(t, err)

	got := ResolveSpin([3]domain.Symbol{"planet", "planet", "planet"}, 1, 1, space)
	assert.True(t, got.IsJackpot)
	assert.Equal(t, int64(2500), got.Payout)

	// seven is not a space symbol
	got = ResolveSpin([3]domain.Symbol{SymbolSeven, SymbolSeven, SymbolSeven}, 1, 1, space)
	assert.False(t, got.IsJackpot)
	assert.Zero(t, got.Payout)
}

func TestDrawMultiplier(t *testing.T) {
	set := []float64{2, 3, 5}

	assert.Equal(t, 1.0, DrawMultiplier(sequence(0.5), 0.15, set), "roll above chance")
	assert.Equal(t, 2.0, DrawMultiplier(sequence(0.1, 0.0), 0.15, set))
	assert.Equal(t, 3.0, DrawMultiplier(sequence(0.1, 0.5), 0.15, set))
	assert.Equal(t, 5.0, DrawMultiplier(sequence(0.1, math.Nextafter(1, 0)), 0.15, set))
	assert.Equal(t, 1.0, DrawMultiplier(sequence(0.0), 0.15, nil), "empty set")
	assert.Equal(t, 1.0, DrawMultiplier(sequence(0.0), 0, set), "zero chance")
}

func TestDrawMultiplier_Distribution(t *testing.T) {
	rng := NewSeededSource(7)
	set := []float64{2, 3, 5}

	const draws = 100000
	boosted := 0
	for i := 0; i < draws; i++ {
		if DrawMultiplier(rng, 0.15, set) != NoMultiplier {
			boosted++
		}
	}
	assert.InDelta(t, 0.15, float64(boosted)/draws, 0.01)
}

func TestEngine_Spin(t *testing.T) {
	catalog, err := DefaultCatalog()
	require.NoError(t, err)

	// classic sorted symbols: cherry 25, diamond 5, grape 20, lemon 20,
	// orange 20, scatter 1, seven 8, wild 1 (total 100)
	// seven occupies [91, 99) of the wheel
	engine := NewEngine(catalog, sequence(0.95, 0.95, 0.95, 0.9))
	engine.now = func() time.Time { return time.UnixMilli(1700000000000) }

	bet, err := catalog.BetLevel(50)
	require.NoError(t, err)

	result, err := engine.Spin(context.Background(), MachineClassic, bet, 7500)
	require.NoError(t, err)

	assert.Equal(t, [3]domain.Symbol{SymbolSeven, SymbolSeven, SymbolSeven}, result.Request.Reels)
	assert.True(t, result.Outcome.IsJackpot)
	assert.Equal(t, int64(1500), result.Request.Payout)
	assert.Equal(t, int64(7500), result.Request.JackpotWin)
	assert.Equal(t, int64(50), result.Request.BetAmount)
	assert.Equal(t, 1.5, result.Request.BetMultiplier)
	assert.Equal(t, 1.0, result.Request.SpinMultiplier)
	assert.Equal(t, int64(1700000000000), result.Request.Timestamp)
	assert.Zero(t, result.FreeSpins)
}

func TestEngine_SpinFreeSpins(t *testing.T) {
	catalog, err := DefaultCatalog()
	require.NoError(t, err)

	// scatter occupies [90, 91)
	engine := NewEngine(catalog, sequence(0.905, 0.905, 0.905, 0.99))
	bet, err := catalog.BetLevel(10)
	require.NoError(t, err)

	result, err := engine.Spin(context.Background(), MachineClassic, bet, 5000)
	require.NoError(t, err)

	assert.True(t, result.Outcome.IsFreeSpins)
	assert.Equal(t, 10, result.FreeSpins)
	assert.Zero(t, result.Request.Payout)
	assert.Zero(t, result.Request.JackpotWin)
}

func TestEngine_SpinUnknownMachine(t *testing.T) {
	catalog, err := DefaultCatalog()
	require.NoError(t, err)

	_, err = NewEngine(catalog, nil).Spin(context.Background(), "pinball", BetLevel{Amount: 10, Multiplier: 1}, 0)
	assert.True(t, errors.Is(err, domain.ErrUnknownMachine))
}
