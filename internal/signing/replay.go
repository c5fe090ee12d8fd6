package signing

import (
	"fmt"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/osse101/SlotGuard_Go/internal/domain"
)

// ReplayGuard remembers nonces it has seen so each envelope is accepted once.
// Entries expire after the window in which the envelope could still verify.
type ReplayGuard struct {
	mu  sync.Mutex
	lru *expirable.LRU[string, struct{}]
}

// NewReplayGuard creates a guard holding up to size nonces for ttl
func NewReplayGuard(size int, ttl time.Duration) *ReplayGuard {
	return &ReplayGuard{
		lru: expirable.NewLRU[string, struct{}](size, nil, ttl),
	}
}

// Consume records nonce, failing if it was already recorded
func (g *ReplayGuard) Consume(nonce string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, seen := g.lru.Peek(nonce); seen {
		return &RejectError{
			Reason: ReasonReplay,
			err:    fmt.Errorf("%w: %s", domain.ErrSignatureInvalid, ErrMsgNonceReused),
		}
	}
	g.lru.Add(nonce, struct{}{})
	return nil
}
