package gate

// Error messages
const (
	ErrMsgLimiterFailed = "rate limiter unavailable"
)

// Log messages
const (
	LogMsgRateLimited       = "Request rate limited"
	LogMsgLimiterFailed     = "Rate limiter failed"
	LogMsgSignatureRejected = "Request signature rejected"
)

// Log field keys
const (
	LogFieldAction = "action"
	LogFieldReason = "reason"
	LogFieldError  = "error"
)
