package domain

import "encoding/json"

// Symbol is a single reel symbol identifier, e.g. "cherry"
type Symbol string

// SpinRequest is the outcome of a locally resolved spin, submitted for validation.
// Field order is the canonical serialization order used for request signing.
type SpinRequest struct {
	MachineID      string    `json:"machineId"`
	Reels          [3]Symbol `json:"reels"`
	Payout         int64     `json:"payout"`
	JackpotWin     int64     `json:"jackpotWin"`
	BetAmount      int64     `json:"betAmount"`
	BetMultiplier  float64   `json:"betMultiplier"`
	SpinMultiplier float64   `json:"spinMultiplier"`
	IsJackpot      bool      `json:"isJackpot"`
	Timestamp      int64     `json:"timestamp"`
}

// SignedEnvelope wraps a payload with the fields needed to authenticate it.
// Payload holds the exact bytes that were hashed by the signer.
type SignedEnvelope struct {
	Payload   json.RawMessage `json:"payload"`
	Signature string          `json:"signature,omitempty"`
	Nonce     string          `json:"nonce,omitempty"`
	Timestamp int64           `json:"timestamp,omitempty"`
}

// ValidateSpinResult is the authoritative answer to a spin validation
type ValidateSpinResult struct {
	Valid      bool  `json:"valid"`
	Payout     int64 `json:"payout"`
	JackpotWin int64 `json:"jackpotWin"`
}

// ValidationOutcome is what the client acts on after asking the server.
// Source is SourceServer or SourceLocalFallback.
type ValidationOutcome struct {
	ValidateSpinResult
	Source string `json:"source"`
}

// PurchaseRequest is the payload of a purchase verification
type PurchaseRequest struct {
	ProductID string `json:"productId"`
	Type      string `json:"type,omitempty"`
	Platform  string `json:"platform,omitempty"`
}

// VerifyPurchaseResult is the answer to a purchase verification
type VerifyPurchaseResult struct {
	Verified bool `json:"verified"`
}

// PurchaseOutcome is the client's view of a purchase verification
type PurchaseOutcome struct {
	VerifyPurchaseResult
	Source string `json:"source"`
}

// AnomalyRecord is a client-local diagnostic entry
type AnomalyRecord struct {
	Type      string                 `json:"type"`
	Details   map[string]interface{} `json:"details,omitempty"`
	Timestamp int64                  `json:"timestamp"`
}
