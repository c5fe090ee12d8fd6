package client

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/osse101/SlotGuard_Go/internal/domain"
	"github.com/osse101/SlotGuard_Go/internal/guard"
	"github.com/osse101/SlotGuard_Go/internal/logger"
	"github.com/osse101/SlotGuard_Go/internal/slots"
)

// SpinValidator confirms a locally resolved spin
type SpinValidator interface {
	ValidateSpin(ctx context.Context, req domain.SpinRequest) (*domain.ValidationOutcome, error)
}

// State is the player's persisted economy
type State struct {
	Coins       int64 `json:"coins"`
	JackpotPool int64 `json:"jackpotPool"`
	FreeSpins   int   `json:"freeSpins"`
	TotalSpins  int   `json:"totalSpins"`
}

// SpinReport is what one settled spin did to the player's state
type SpinReport struct {
	Result   *slots.SpinResult
	Outcome  *domain.ValidationOutcome
	Won      int64
	State    State
	FreeSpin bool
	// Rejected is set when the guard refused the coin update
	Rejected bool
}

// Session plays spins for one player. Only one spin may be in flight.
type Session struct {
	engine    *slots.Engine
	guard     *guard.Guard
	validator SpinValidator

	busy  atomic.Bool
	mu    sync.Mutex
	state State
}

// NewSession restores the player's state from the guard's secure storage,
// starting fresh when nothing valid is stored
func NewSession(ctx context.Context, engine *slots.Engine, g *guard.Guard, validator SpinValidator) *Session {
	fresh := State{
		Coins:       StartingCoins,
		JackpotPool: engine.Catalog().JackpotSeed,
	}
	return &Session{
		engine:    engine,
		guard:     g,
		validator: validator,
		state:     guard.LoadSecure(ctx, g, KeyGameState, fresh),
	}
}

// State returns a copy of the current state
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Spin plays one round on machineID at betAmount. The bet is taken from a
// pending free spin when one is available. The server's answer decides the
// payout; a refusal leaves the state untouched.
func (s *Session) Spin(ctx context.Context, machineID string, betAmount int64) (*SpinReport, error) {
	if !s.busy.CompareAndSwap(false, true) {
		return nil, domain.ErrSpinInFlight
	}
	defer s.busy.Store(false)

	log := logger.FromContext(ctx)

	if !s.guard.CheckRateLimit(ctx, domain.ActionSpin, ClientSpinLimit, ClientSpinWindow) {
		log.Info(LogMsgLocalRateLimited)
		return nil, domain.ErrRateLimited
	}

	catalog := s.engine.Catalog()
	bet, err := catalog.BetLevel(betAmount)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	next := s.state
	s.mu.Unlock()

	freeSpin := next.FreeSpins > 0
	if freeSpin {
		next.FreeSpins--
	} else {
		if next.Coins < bet.Amount {
			return nil, domain.ErrInsufficientCoins
		}
		debited, rejected := s.guard.ApplyCoinDelta(ctx, next.Coins, next.Coins-bet.Amount, bet.Amount)
		if rejected {
			return nil, fmt.Errorf("%s: %w", ErrMsgDebitFailed, domain.ErrInvalidInput)
		}
		next.Coins = debited
		next.JackpotPool += catalog.JackpotShare(bet.Amount)
	}

	result, err := s.engine.Spin(ctx, machineID, bet, next.JackpotPool)
	if err != nil {
		return nil, err
	}

	outcome, err := s.validator.ValidateSpin(ctx, result.Request)
	if err != nil {
		return nil, err
	}

	won := outcome.Payout + outcome.JackpotWin
	maxGain := bet.Amount*domain.DefaultMaxPayoutMultiplier + next.JackpotPool*domain.JackpotBoundFactor
	coins, rejected := s.guard.ApplyCoinDelta(ctx, next.Coins, next.Coins+won, maxGain)
	if rejected {
		log.Warn(LogMsgCoinsRejected, LogFieldCoins, next.Coins+won)
		won = 0
	}
	next.Coins = coins

	if outcome.Valid && result.Outcome.IsJackpot && outcome.JackpotWin > 0 && !rejected {
		next.JackpotPool = catalog.JackpotSeed
	}
	if outcome.Valid && result.FreeSpins > 0 {
		next.FreeSpins += result.FreeSpins
	}
	next.TotalSpins++

	if err := s.guard.SaveSecure(ctx, KeyGameState, next); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgSaveState, err)
	}

	s.mu.Lock()
	s.state = next
	s.mu.Unlock()

	log.Debug(LogMsgSpinSettled,
		LogFieldSource, outcome.Source,
		LogFieldValid, outcome.Valid,
		LogFieldCoins, next.Coins)

	return &SpinReport{
		Result:   result,
		Outcome:  outcome,
		Won:      won,
		State:    next,
		FreeSpin: freeSpin,
		Rejected: rejected,
	}, nil
}
