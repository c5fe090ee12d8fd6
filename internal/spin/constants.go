package spin

// Tracing
const (
	TracerName       = "github.com/osse101/SlotGuard_Go/internal/spin"
	SpanValidateSpin = "spin.ValidateSpin"
)

// Span attribute keys
const (
	AttrMachineID  = "slotguard.machine_id"
	AttrValid      = "slotguard.valid"
	AttrSuspicious = "slotguard.suspicious"
)

// Error messages
const (
	ErrMsgMalformedSpin = "spin payload is malformed"
)

// Suspicion reasons, logged and used as fraud-check labels
const (
	ReasonPayoutOverMax     = "payout_over_max"
	ReasonJackpotOverMax    = "jackpot_over_max"
	ReasonJackpotWithoutWin = "jackpot_without_win"
	ReasonMachineIDTooLong  = "machine_id_too_long"
)

// Log messages
const (
	LogMsgSpinValidated  = "Spin validated"
	LogMsgSpinSuspicious = "Suspicious spin submission"
	LogMsgSpinRejected   = "Spin request rejected"
)

// Log field keys
const (
	LogFieldMachineID  = "machine_id"
	LogFieldPayout     = "payout"
	LogFieldClamped    = "clamped_payout"
	LogFieldJackpotWin = "jackpot_win"
	LogFieldBetAmount  = "bet_amount"
	LogFieldReasons    = "reasons"
	LogFieldError      = "error"
)
