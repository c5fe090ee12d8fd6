package guard

// Storage keys
const (
	KeyRateLimits    = "rateLimits"
	KeyDataIntegrity = "dataIntegrity"
	KeyAnomalies     = "anomalies"
)

// DevEncryptionKey is used when no encryption key is configured
const DevEncryptionKey = "dev-encryption-key"

// NegativeDeltaFactor bounds how far a value may fall in one transition,
// as a multiple of the allowed gain
const NegativeDeltaFactor = 10

// Anomaly types
const (
	AnomalyRateLimited        = "rate_limited"
	AnomalyCheatDetected      = "cheat_detected"
	AnomalyIntegrityViolation = "integrity_violation"
	AnomalyDecryptFailed      = "decrypt_failed"
)

// Anomaly detail keys
const (
	DetailKey      = "key"
	DetailAction   = "action"
	DetailPrevious = "previous"
	DetailNext     = "next"
	DetailMaxGain  = "maxGain"
	DetailError    = "error"
)

// Error messages
const (
	ErrMsgCipherInit      = "failed to initialise cipher"
	ErrMsgEncryptFailed   = "failed to encrypt value"
	ErrMsgCiphertextShort = "ciphertext too short"
	ErrMsgDigestMissing   = "integrity digest missing"
	ErrMsgDigestMismatch  = "integrity digest mismatch"
)

// Log messages
const (
	LogMsgDevEncryptionKey   = "Encryption key not configured, using development key"
	LogMsgAnomalyRecorded    = "Anomaly recorded"
	LogMsgAnomalyStoreFailed = "Failed to persist anomaly"
	LogMsgRateLimitStore     = "Failed to persist rate limit counters"
	LogMsgSecureLoadRejected = "Secure value rejected, using default"
)
