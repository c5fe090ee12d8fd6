package slots

import "github.com/osse101/SlotGuard_Go/internal/domain"

// Classic machine symbols
const (
	SymbolCherry  domain.Symbol = "cherry"
	SymbolLemon   domain.Symbol = "lemon"
	SymbolOrange  domain.Symbol = "orange"
	SymbolGrape   domain.Symbol = "grape"
	SymbolSeven   domain.Symbol = "seven"
	SymbolDiamond domain.Symbol = "diamond"
	SymbolWild    domain.Symbol = "wild"
	SymbolScatter domain.Symbol = "scatter"
)

// Machine ids
const (
	MachineClassic  = "classic"
	MachineEgyptian = "egyptian"
	MachineOcean    = "ocean"
	MachineSpace    = "space"
)

// Engine defaults, used when a machine config leaves them unset
const (
	ComboSeparator        = "|"
	DefaultFallbackSymbol = SymbolCherry
	DefaultWildSymbol     = SymbolWild
	DefaultAllWildPayout  = 1000
	DefaultWildPayout     = 50
	NoMultiplier          = 1.0
)

// Error messages
const (
	ErrMsgNoMachines        = "catalog has no machines"
	ErrMsgDuplicateMachine  = "duplicate machine id"
	ErrMsgEmptyWeights      = "machine weights sum to zero"
	ErrMsgComboNotInTable   = "combo missing from payout table"
	ErrMsgFallbackNotWeight = "fallback symbol has no weight entry"
	ErrMsgUnknownBetLevel   = "unknown bet level"
	ErrMsgParseCatalog      = "failed to parse machine catalog"
	ErrMsgValidateCatalog   = "machine catalog failed validation"
)

// Log messages
const (
	LogMsgCatalogLoaded = "Machine catalog loaded"
	LogMsgSpinResolved  = "Spin resolved"
)

// Log field keys
const (
	LogFieldMachineID = "machine_id"
	LogFieldMachines  = "machines"
	LogFieldSource    = "source"
	LogFieldCombo     = "combo"
	LogFieldPayout    = "payout"
)
