package signing

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/osse101/SlotGuard_Go/internal/domain"
)

// Verifier opens signed requests on the server side
type Verifier struct {
	key    []byte
	mode   Mode
	maxAge time.Duration
	replay *ReplayGuard
	now    func() time.Time
}

// NewVerifier creates a verifier for key. An empty key yields ModeDisabled,
// in which payloads are trusted as-is.
func NewVerifier(key string, maxAge time.Duration) *Verifier {
	if maxAge <= 0 {
		maxAge = DefaultMaxAge
	}
	return &Verifier{
		key:    []byte(key),
		mode:   ModeForKey(key),
		maxAge: maxAge,
		replay: NewReplayGuard(DefaultReplayCacheSize, maxAge*ReplayTTLFactor),
		now:    time.Now,
	}
}

// Mode reports whether signatures are enforced
func (v *Verifier) Mode() Mode {
	return v.mode
}

// Open authenticates a raw request body and returns the payload bytes.
//
// In ModeEnforced the body must be a signed envelope whose signature verifies
// and whose nonce has not been seen. In ModeDisabled the "payload" member is
// returned when present, otherwise the whole body.
func (v *Verifier) Open(body []byte) (json.RawMessage, error) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 || body[0] != '{' {
		return nil, &RejectError{Reason: ReasonMalformed, err: domain.InvalidInputf(ErrMsgMalformedPayload)}
	}

	if v.mode == ModeDisabled {
		var wrapped struct {
			Payload json.RawMessage `json:"payload"`
		}
		if err := json.Unmarshal(body, &wrapped); err != nil {
			return nil, &RejectError{Reason: ReasonMalformed, err: domain.InvalidInputf(ErrMsgMalformedPayload)}
		}
		if len(wrapped.Payload) > 0 && !bytes.Equal(wrapped.Payload, []byte("null")) {
			return wrapped.Payload, nil
		}
		return body, nil
	}

	var env domain.SignedEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, &RejectError{Reason: ReasonMalformed, err: domain.InvalidInputf(ErrMsgMalformedPayload)}
	}
	if err := Verify(&env, v.key, v.now(), v.maxAge); err != nil {
		return nil, err
	}
	if err := v.replay.Consume(env.Nonce); err != nil {
		return nil, err
	}
	return env.Payload, nil
}
