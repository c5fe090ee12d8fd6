// Package gate runs the checks every validation endpoint shares before it
// looks at the payload: identity, the per-user rate limit and the request
// signature, in that order.
package gate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/osse101/SlotGuard_Go/internal/domain"
	"github.com/osse101/SlotGuard_Go/internal/logger"
	"github.com/osse101/SlotGuard_Go/internal/metrics"
	"github.com/osse101/SlotGuard_Go/internal/ratelimit"
	"github.com/osse101/SlotGuard_Go/internal/signing"
)

// Policy is the rate limit applied to one action
type Policy struct {
	Action string
	Limit  int
	Window time.Duration
}

// Gate admits authenticated, rate-limited, correctly signed requests
type Gate struct {
	limiter  ratelimit.Limiter
	verifier *signing.Verifier
}

// New creates a gate
func New(limiter ratelimit.Limiter, verifier *signing.Verifier) *Gate {
	return &Gate{limiter: limiter, verifier: verifier}
}

// Admit returns the authenticated payload of body for uid under policy.
// The rate limit is charged before the signature is checked, so a flood of
// forged requests still exhausts the caller's allowance.
func (g *Gate) Admit(ctx context.Context, uid string, policy Policy, body []byte) (json.RawMessage, error) {
	log := logger.FromContext(ctx)

	if uid == "" {
		return nil, domain.ErrUnauthenticated
	}

	if err := g.limiter.Allow(ctx, uid, policy.Action, policy.Limit, policy.Window); err != nil {
		if errors.Is(err, domain.ErrRateLimited) {
			metrics.RateLimited.WithLabelValues(policy.Action).Inc()
			log.Info(LogMsgRateLimited, LogFieldAction, policy.Action)
			return nil, err
		}
		log.Error(LogMsgLimiterFailed, LogFieldAction, policy.Action, LogFieldError, err)
		return nil, fmt.Errorf("%s: %w", ErrMsgLimiterFailed, err)
	}

	payload, err := g.verifier.Open(body)
	if err != nil {
		reason := signing.Reason(err)
		metrics.SignatureRejections.WithLabelValues(reason).Inc()
		log.Warn(LogMsgSignatureRejected, LogFieldAction, policy.Action, LogFieldReason, reason)
		return nil, err
	}
	return payload, nil
}

// Mode reports whether signatures are enforced
func (g *Gate) Mode() signing.Mode {
	return g.verifier.Mode()
}
