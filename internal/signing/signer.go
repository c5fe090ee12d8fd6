package signing

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/osse101/SlotGuard_Go/internal/domain"
)

// Signer produces and checks signed envelopes with a shared HMAC key
type Signer struct {
	key    []byte
	mode   Mode
	maxAge time.Duration
	now    func() time.Time
	nonce  func() string
}

// NewSigner creates a signer for key. An empty key selects DevSigningKey and
// ModeDisabled.
func NewSigner(key string) *Signer {
	mode := ModeForKey(key)
	if mode == ModeDisabled {
		key = DevSigningKey
	}
	return &Signer{
		key:    []byte(key),
		mode:   mode,
		maxAge: DefaultMaxAge,
		now:    time.Now,
		nonce:  newNonce,
	}
}

// Mode reports whether the signer was given a real key
func (s *Signer) Mode() Mode {
	return s.mode
}

// Sign marshals payload and wraps it in a signed envelope
func (s *Signer) Sign(payload interface{}) (*domain.SignedEnvelope, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgMarshalPayload, err)
	}
	return s.SignRaw(data)
}

// SignRaw signs already-encoded payload bytes. The bytes are compacted first
// so the digest matches what a verifier computes.
func (s *Signer) SignRaw(payload []byte) (*domain.SignedEnvelope, error) {
	var buf bytes.Buffer
	if err := json.Compact(&buf, payload); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgMarshalPayload, err)
	}

	ts := s.now().UnixMilli()
	nonce := s.nonce()
	return &domain.SignedEnvelope{
		Payload:   buf.Bytes(),
		Signature: Compute(s.key, ts, nonce, buf.Bytes()),
		Nonce:     nonce,
		Timestamp: ts,
	}, nil
}

// Verify reports whether env carries a valid, fresh signature for this key
func (s *Signer) Verify(env *domain.SignedEnvelope) bool {
	return Verify(env, s.key, s.now(), s.maxAge) == nil
}

// PayloadHash is the hex SHA-256 of the canonical payload bytes
func PayloadHash(payload []byte) string {
	sum := sha256.Sum256(payload)
	return hex.EncodeToString(sum[:])
}

// Compute returns hex(HMAC-SHA256(key, "<ts>.<nonce>.<payloadHash>"))
func Compute(key []byte, timestamp int64, nonce string, payload []byte) string {
	mac := hmac.New(sha256.New, key)
	mac.Write([]byte(strconv.FormatInt(timestamp, 10)))
	mac.Write([]byte("."))
	mac.Write([]byte(nonce))
	mac.Write([]byte("."))
	mac.Write([]byte(PayloadHash(payload)))
	return hex.EncodeToString(mac.Sum(nil))
}

// Verify checks env against key at time now. Missing fields, a malformed
// payload and a stale timestamp wrap domain.ErrInvalidInput; a wrong
// signature wraps domain.ErrSignatureInvalid. It has no side effects.
func Verify(env *domain.SignedEnvelope, key []byte, now time.Time, maxAge time.Duration) error {
	if env == nil || env.Signature == "" || env.Nonce == "" || env.Timestamp == 0 {
		return &RejectError{Reason: ReasonMissingFields, err: domain.InvalidInputf(ErrMsgMissingFields)}
	}
	if len(env.Payload) == 0 {
		return &RejectError{Reason: ReasonMissingFields, err: domain.InvalidInputf(ErrMsgMissingPayload)}
	}

	age := now.UnixMilli() - env.Timestamp
	if age < 0 {
		age = -age
	}
	if age > maxAge.Milliseconds() {
		return &RejectError{Reason: ReasonExpired, err: domain.InvalidInputf(ErrMsgExpired)}
	}

	var canonical bytes.Buffer
	if err := json.Compact(&canonical, env.Payload); err != nil {
		return &RejectError{Reason: ReasonMalformed, err: domain.InvalidInputf(ErrMsgMalformedPayload)}
	}

	expected := Compute(key, env.Timestamp, env.Nonce, canonical.Bytes())
	if !hmac.Equal([]byte(expected), []byte(env.Signature)) {
		return &RejectError{
			Reason: ReasonMismatch,
			err:    fmt.Errorf("%w: %s", domain.ErrSignatureInvalid, ErrMsgSignatureMismatch),
		}
	}
	return nil
}

// RejectError is a verification failure tagged with a metrics reason
type RejectError struct {
	Reason string
	err    error
}

func (e *RejectError) Error() string { return e.err.Error() }

func (e *RejectError) Unwrap() error { return e.err }

// Reason extracts the rejection reason from err, or "" if err is not a rejection
func Reason(err error) string {
	var rej *RejectError
	if errors.As(err, &rej) {
		return rej.Reason
	}
	return ""
}

func newNonce() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}
