package signing

import "time"

// DevSigningKey is used when no signing key is configured. Envelopes signed
// with it authenticate nothing.
const DevSigningKey = "dev-signing-key"

// Replay cache sizing
const (
	DefaultReplayCacheSize = 100_000
	ReplayTTLFactor        = 2
)

// DefaultMaxAge is how far an envelope timestamp may drift from the verifier's clock
const DefaultMaxAge = 2 * time.Minute

// Error messages
const (
	ErrMsgMissingFields     = "signature, nonce and timestamp are required"
	ErrMsgMissingPayload    = "payload is required"
	ErrMsgMalformedPayload  = "payload is not valid JSON"
	ErrMsgExpired           = "request timestamp outside the allowed window"
	ErrMsgSignatureMismatch = "signature mismatch"
	ErrMsgNonceReused       = "nonce already used"
	ErrMsgMarshalPayload    = "failed to marshal payload"
)

// Log messages
const (
	LogMsgSigningDisabled = "Request signing key not configured, signatures are not enforced"
)

// Rejection reasons, used as metric labels
const (
	ReasonMissingFields = "missing_fields"
	ReasonExpired       = "expired"
	ReasonMismatch      = "mismatch"
	ReasonReplay        = "replay"
	ReasonMalformed     = "malformed"
)
