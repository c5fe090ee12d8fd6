package auth

import "time"

// Token settings
const (
	BearerPrefix    = "Bearer "
	DefaultTokenTTL = 24 * time.Hour
	DefaultIssuer   = "slotguard"
)

// HTTP header names
const (
	HeaderAuthorization = "Authorization"
)

// Error messages
const (
	ErrMsgEmptySecret       = "token secret must not be empty"
	ErrMsgEmptySubject      = "token subject must not be empty"
	ErrMsgUnexpectedSigning = "unexpected signing method"
	ErrMsgMissingSubject    = "token has no subject"
	ErrMsgSignTokenFailed   = "failed to sign token"
)

// Log messages
const (
	LogMsgTokenRejected = "Bearer token rejected"
)

// Log field keys
const (
	LogFieldError = "error"
	LogFieldPath  = "path"
)
