// Package spin is the server's authority over submitted spin results. It
// clamps payouts to what a bet can plausibly win and logs submissions that
// could not have come from an honest client.
package spin

import (
	"context"
	"encoding/json"
	"math"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/osse101/SlotGuard_Go/internal/domain"
	"github.com/osse101/SlotGuard_Go/internal/fraud"
	"github.com/osse101/SlotGuard_Go/internal/gate"
	"github.com/osse101/SlotGuard_Go/internal/logger"
	"github.com/osse101/SlotGuard_Go/internal/metrics"
	"github.com/osse101/SlotGuard_Go/internal/validation"
)

// Config bounds spin validation
type Config struct {
	RateLimit           int
	RateWindow          time.Duration
	MaxPayoutMultiplier float64
}

// DefaultConfig returns the production limits
func DefaultConfig() Config {
	return Config{
		RateLimit:           domain.DefaultSpinRateLimit,
		RateWindow:          domain.DefaultRateLimitWindow,
		MaxPayoutMultiplier: domain.DefaultMaxPayoutMultiplier,
	}
}

// Service validates spin submissions
type Service interface {
	// ValidateSpin authenticates body for uid and returns the authoritative
	// payout. A suspicious submission is not an error: it yields Valid false,
	// a clamped payout and no jackpot.
	ValidateSpin(ctx context.Context, uid string, body []byte) (*domain.ValidateSpinResult, error)
}

type service struct {
	gate  *gate.Gate
	fraud fraud.Service
	cfg   Config
}

// NewService creates a spin validation service. Zero fields in cfg take
// their DefaultConfig values.
func NewService(g *gate.Gate, fraudSvc fraud.Service, cfg Config) Service {
	def := DefaultConfig()
	if cfg.RateLimit <= 0 {
		cfg.RateLimit = def.RateLimit
	}
	if cfg.RateWindow <= 0 {
		cfg.RateWindow = def.RateWindow
	}
	if cfg.MaxPayoutMultiplier <= 0 {
		cfg.MaxPayoutMultiplier = def.MaxPayoutMultiplier
	}
	return &service{gate: g, fraud: fraudSvc, cfg: cfg}
}

// submission is the payload as sent. Pointers distinguish a missing field
// from a zero one.
type submission struct {
	MachineID  *string  `json:"machineId"`
	Reels      []string `json:"reels" validate:"required,len=3"`
	Payout     *float64 `json:"payout" validate:"required,finite,gte=0"`
	JackpotWin *float64 `json:"jackpotWin" validate:"omitempty,finite,gte=0"`
	BetAmount  *float64 `json:"betAmount" validate:"required,finite,gt=0"`
	IsJackpot  *bool    `json:"isJackpot" validate:"required"`
}

func (s *service) ValidateSpin(ctx context.Context, uid string, body []byte) (*domain.ValidateSpinResult, error) {
	ctx, span := otel.Tracer(TracerName).Start(ctx, SpanValidateSpin)
	defer span.End()

	ctx = logger.WithUserID(ctx, uid)
	log := logger.FromContext(ctx)

	payload, err := s.gate.Admit(ctx, uid, gate.Policy{
		Action: domain.ActionSpin,
		Limit:  s.cfg.RateLimit,
		Window: s.cfg.RateWindow,
	}, body)
	if err != nil {
		metrics.SpinsValidated.WithLabelValues(metrics.ResultRejected).Inc()
		span.RecordError(err)
		return nil, err
	}

	sub, err := parseSubmission(payload)
	if err != nil {
		metrics.SpinsValidated.WithLabelValues(metrics.ResultRejected).Inc()
		log.Info(LogMsgSpinRejected, LogFieldError, err)
		span.RecordError(err)
		return nil, err
	}

	bet := *sub.BetAmount
	payout := *sub.Payout
	jackpotWin := derefFloat(sub.JackpotWin)
	machineID := derefString(sub.MachineID)
	span.SetAttributes(attribute.String(AttrMachineID, truncate(machineID, domain.MaxMachineIDLength)))

	maxPayout := bet * s.cfg.MaxPayoutMultiplier
	clamped := math.Min(payout, maxPayout)
	if maxPayout > 0 {
		metrics.ClampedPayoutRatio.Observe(payout / maxPayout)
	}

	reasons := suspicionReasons(payout, jackpotWin, maxPayout, *sub.IsJackpot, machineID)
	span.SetAttributes(attribute.Bool(AttrSuspicious, len(reasons) > 0))

	if len(reasons) > 0 {
		log.Warn(LogMsgSpinSuspicious,
			LogFieldMachineID, truncate(machineID, domain.MaxMachineIDLength),
			LogFieldPayout, payout,
			LogFieldClamped, clamped,
			LogFieldJackpotWin, jackpotWin,
			LogFieldBetAmount, bet,
			LogFieldReasons, reasons)

		evt := domain.FraudEvent{
			UserID:     uid,
			Type:       domain.FraudSpinAnomaly,
			MachineID:  machineID,
			Payout:     payout,
			JackpotWin: jackpotWin,
			BetAmount:  bet,
			Reels:      sub.Reels,
		}
		if err := s.fraud.Record(ctx, evt); err != nil {
			metrics.SpinsValidated.WithLabelValues(metrics.ResultRejected).Inc()
			span.RecordError(err)
			return nil, err
		}

		metrics.SpinsValidated.WithLabelValues(metrics.ResultSuspicious).Inc()
		span.SetAttributes(attribute.Bool(AttrValid, false))
		return &domain.ValidateSpinResult{
			Valid:      false,
			Payout:     toCoins(clamped),
			JackpotWin: 0,
		}, nil
	}

	metrics.SpinsValidated.WithLabelValues(metrics.ResultValid).Inc()
	span.SetAttributes(attribute.Bool(AttrValid, true))
	log.Debug(LogMsgSpinValidated, LogFieldMachineID, machineID, LogFieldPayout, payout)

	return &domain.ValidateSpinResult{
		Valid:      true,
		Payout:     toCoins(clamped),
		JackpotWin: toCoins(jackpotWin),
	}, nil
}

// parseSubmission decodes and checks payload. Type mismatches (a numeric
// machineId, a string payout) are invalid input like missing fields.
func parseSubmission(payload json.RawMessage) (*submission, error) {
	var sub submission
	if err := json.Unmarshal(payload, &sub); err != nil {
		return nil, domain.InvalidInputf("%s: %v", ErrMsgMalformedSpin, err)
	}
	if err := validation.Structs().ValidateStruct(&sub); err != nil {
		return nil, domain.InvalidInputf("%s: %s", ErrMsgMalformedSpin, validation.Summary(err))
	}
	return &sub, nil
}

// suspicionReasons lists every rule the submission breaks; empty means honest
func suspicionReasons(payout, jackpotWin, maxPayout float64, isJackpot bool, machineID string) []string {
	var reasons []string
	if payout > maxPayout {
		reasons = append(reasons, ReasonPayoutOverMax)
	}
	if jackpotWin > maxPayout*domain.JackpotBoundFactor {
		reasons = append(reasons, ReasonJackpotOverMax)
	}
	if isJackpot && jackpotWin <= 0 {
		reasons = append(reasons, ReasonJackpotWithoutWin)
	}
	if len(machineID) > domain.MaxMachineIDLength {
		reasons = append(reasons, ReasonMachineIDTooLong)
	}
	return reasons
}

// toCoins floors a non-negative amount into whole coins
func toCoins(v float64) int64 {
	if v <= 0 {
		return 0
	}
	if v >= math.MaxInt64 {
		return math.MaxInt64
	}
	return int64(math.Floor(v))
}

func derefFloat(p *float64) float64 {
	if p == nil {
		return 0
	}
	return *p
}

func derefString(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
