package client

import "time"

// API paths
const (
	PathValidateSpin   = "/api/v1/spin/validate"
	PathVerifyPurchase = "/api/v1/purchase/verify"
)

// HTTP headers
const (
	HeaderContentType   = "Content-Type"
	HeaderAuthorization = "Authorization"
	ContentTypeJSON     = "application/json"
	BearerPrefix        = "Bearer "
)

// Session defaults
const (
	StartingCoins    = 1000
	KeyGameState     = "gameState"
	ClientSpinLimit  = 60
	ClientSpinWindow = 60 * time.Second
)

// Secret names in the OS keyring
const (
	SecretToken         = "token"
	SecretSigningKey    = "signing-key"
	SecretEncryptionKey = "encryption-key"
)

// NotifyPurchaseFailed is shown to the player when a purchase could not be
// confirmed with the server
const NotifyPurchaseFailed = "We couldn't confirm your purchase with the server. It has been applied locally and will be checked again later."

// Error messages
const (
	ErrMsgMarshalRequest   = "failed to marshal request"
	ErrMsgCreateRequest    = "failed to create request"
	ErrMsgDecodeResponse   = "failed to decode response"
	ErrMsgRetriesExhausted = "max retries exceeded"
	ErrMsgUnexpectedStatus = "server returned status"
	ErrMsgDebitFailed      = "failed to debit bet"
	ErrMsgSaveState        = "failed to save game state"
	ErrMsgKeyringGet       = "keyring get"
	ErrMsgKeyringSet       = "keyring set"
	ErrMsgKeyringUser      = "keyring user is required"
)

// Log messages
const (
	LogMsgRetrying         = "Retrying backend request"
	LogMsgRequestFailed    = "Backend request failed"
	LogMsgLocalFallback    = "Backend unreachable, trusting local outcome"
	LogMsgTerminalError    = "Backend rejected request"
	LogMsgCoinsRejected    = "Coin update rejected by guard"
	LogMsgSpinSettled      = "Spin settled"
	LogMsgKeyringFallback  = "Secret not in keyring, using environment"
	LogMsgLocalRateLimited = "Spin throttled locally"
)

// Log field keys
const (
	LogFieldAttempt = "attempt"
	LogFieldPath    = "path"
	LogFieldDelay   = "delay"
	LogFieldStatus  = "status"
	LogFieldError   = "error"
	LogFieldSource  = "source"
	LogFieldValid   = "valid"
	LogFieldCoins   = "coins"
	LogFieldSecret  = "secret"
)
