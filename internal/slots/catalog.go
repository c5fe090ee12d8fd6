package slots

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/osse101/SlotGuard_Go/configs"
	"github.com/osse101/SlotGuard_Go/internal/domain"
	"github.com/osse101/SlotGuard_Go/internal/logger"
	"github.com/osse101/SlotGuard_Go/internal/validation"
)

// MachineConfig parameterises the engine for one machine variant
type MachineConfig struct {
	ID                string                 `json:"id"`
	Name              string                 `json:"name"`
	UnlockLevel       int                    `json:"unlockLevel"`
	Weights           map[domain.Symbol]uint `json:"weights"`
	Payouts           map[string]int64       `json:"payouts"`
	JackpotCombo      string                 `json:"jackpotCombo"`
	FreeSpinCombo     string                 `json:"freeSpinCombo"`
	WildSymbol        domain.Symbol          `json:"wildSymbol"`
	FallbackSymbol    domain.Symbol          `json:"fallbackSymbol"`
	MultiplierChance  float64                `json:"multiplierChance"`
	MultiplierSet     []float64              `json:"multiplierSet"`
	FreeSpinsAmount   int                    `json:"freeSpinsAmount"`
	AllWildPayout     int64                  `json:"allWildPayout"`
	DefaultWildPayout int64                  `json:"defaultWildPayout"`
}

// BetLevel is a selectable stake and the payout multiplier it carries
type BetLevel struct {
	Amount     int64   `json:"amount"`
	Multiplier float64 `json:"multiplier"`
	Label      string  `json:"label"`
}

// Catalog is the set of machines and bet levels clients may play
type Catalog struct {
	JackpotContribution float64         `json:"jackpotContribution"`
	JackpotSeed         int64           `json:"jackpotSeed"`
	BetLevels           []BetLevel      `json:"betLevels"`
	Machines            []MachineConfig `json:"machines"`

	byID map[string]*MachineConfig
}

// DefaultCatalog loads the catalog embedded in the binary
func DefaultCatalog() (*Catalog, error) {
	return LoadCatalog(configs.Machines, validation.NewSchemaValidator())
}

// LoadCatalogFile reads a catalog from disk, falling back to the embedded
// catalog when path is empty
func LoadCatalogFile(ctx context.Context, path string, v validation.SchemaValidator) (*Catalog, error) {
	source := path
	data := configs.Machines
	if path == "" {
		source = "embedded"
	} else {
		var err error
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgParseCatalog, err)
		}
	}

	catalog, err := LoadCatalog(data, v)
	if err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info(LogMsgCatalogLoaded,
		LogFieldSource, source,
		LogFieldMachines, len(catalog.Machines))
	return catalog, nil
}

// LoadCatalog validates raw catalog JSON against the catalog schema and
// checks the cross-field rules a schema cannot express
func LoadCatalog(data []byte, v validation.SchemaValidator) (*Catalog, error) {
	if err := validation.ValidateMachineCatalog(v, data); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgValidateCatalog, err)
	}

	var catalog Catalog
	if err := json.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgParseCatalog, err)
	}

	if err := catalog.index(); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgValidateCatalog, err)
	}
	return &catalog, nil
}

func (c *Catalog) index() error {
	if len(c.Machines) == 0 {
		return fmt.Errorf("%s", ErrMsgNoMachines)
	}

	c.byID = make(map[string]*MachineConfig, len(c.Machines))
	for i := range c.Machines {
		m := &c.Machines[i]
		if _, dup := c.byID[m.ID]; dup {
			return fmt.Errorf("%s: %s", ErrMsgDuplicateMachine, m.ID)
		}
		if err := m.check(); err != nil {
			return fmt.Errorf("machine %s: %w", m.ID, err)
		}
		c.byID[m.ID] = m
	}
	return nil
}

func (m *MachineConfig) check() error {
	var total uint
	for _, w := range m.Weights {
		total += w
	}
	if total == 0 {
		return fmt.Errorf("%s", ErrMsgEmptyWeights)
	}
	if _, ok := m.Weights[m.fallback()]; !ok {
		return fmt.Errorf("%s: %s", ErrMsgFallbackNotWeight, m.fallback())
	}
	for _, combo := range []string{m.JackpotCombo, m.FreeSpinCombo} {
		if _, ok := m.Payouts[combo]; !ok {
			return fmt.Errorf("%s: %s", ErrMsgComboNotInTable, combo)
		}
	}
	return nil
}

// Machine returns the machine with the given id
func (c *Catalog) Machine(id string) (*MachineConfig, error) {
	m, ok := c.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownMachine, id)
	}
	return m, nil
}

// BetLevel returns the bet level staking amount
func (c *Catalog) BetLevel(amount int64) (BetLevel, error) {
	for _, level := range c.BetLevels {
		if level.Amount == amount {
			return level, nil
		}
	}
	return BetLevel{}, fmt.Errorf("%w: %s %d", domain.ErrInvalidInput, ErrMsgUnknownBetLevel, amount)
}

// UnlockedMachines returns the machines available at playerLevel, in catalog order
func (c *Catalog) UnlockedMachines(playerLevel int) []MachineConfig {
	var unlocked []MachineConfig
	for _, m := range c.Machines {
		if m.UnlockLevel <= playerLevel {
			unlocked = append(unlocked, m)
		}
	}
	return unlocked
}

// JackpotShare is the part of a bet that feeds the progressive jackpot
func (c *Catalog) JackpotShare(bet int64) int64 {
	return scale(bet, c.JackpotContribution, NoMultiplier)
}

// Symbols returns the machine's symbols in a stable order
func (m *MachineConfig) Symbols() []domain.Symbol {
	symbols := make([]domain.Symbol, 0, len(m.Weights))
	for s := range m.Weights {
		symbols = append(symbols, s)
	}
	sort.Slice(symbols, func(i, j int) bool { return symbols[i] < symbols[j] })
	return symbols
}

func (m *MachineConfig) wild() domain.Symbol {
	if m.WildSymbol == "" {
		return DefaultWildSymbol
	}
	return m.WildSymbol
}

func (m *MachineConfig) fallback() domain.Symbol {
	if m.FallbackSymbol == "" {
		return DefaultFallbackSymbol
	}
	return m.FallbackSymbol
}
