package handler

import "time"

// Headers
const (
	HeaderContentType = "Content-Type"
	HeaderRetryAfter  = "Retry-After"
	ContentTypeJSON   = "application/json"
)

// Health
const (
	StatusOK          = "ok"
	StatusUnavailable = "unavailable"
	ReadyzTimeout     = 2 * time.Second
	CheckDatabase     = "database"
	MsgChecksFailed   = "readiness checks failed"
)

// Fraud event listing
const (
	QueryParamUserID  = "user_id"
	QueryParamType    = "type"
	QueryParamSince   = "since"
	QueryParamUntil   = "until"
	QueryParamLimit   = "limit"
	QueryParamLevel   = "level"
	DefaultFraudLimit = 100
	MaxFraudLimit     = 1000
)

// Log messages
const (
	LogMsgEncodeFailed    = "Failed to encode JSON response"
	LogMsgWriteFailed     = "Failed to write response buffer"
	LogMsgServiceError    = "Request failed"
	LogMsgReadBodyFailed  = "Failed to read request body"
	LogMsgReadinessFailed = "Readiness check failed"
	LogMsgListFraudFailed = "Failed to list fraud events"
)

// Log field keys
const (
	LogFieldError = "error"
	LogFieldCheck = "check"
	LogFieldPath  = "path"
)
