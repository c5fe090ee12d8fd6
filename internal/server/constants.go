package server

import "time"

// HTTP error messages for middleware responses
const (
	ErrMsgUnauthorized    = "Unauthorized"
	ErrMsgTooManyRequests = "Too Many Requests"
)

// Security alert message templates
const (
	SecurityAlertFailedAuth = "security: repeated API key failures"
	SecurityAlertHighRate   = "security: request flood blocked"
)

// Log messages for server lifecycle and request handling
const (
	LogMsgServerStarting   = "Server starting"
	LogMsgRequestStarted   = "Request started"
	LogMsgRequestCompleted = "Request completed"
	LogMsgRequestHeaders   = "Request headers"
	LogMsgAuthFailed       = "Authentication failed"
	LogMsgAdminDisabled    = "API_KEY not set, admin routes are disabled"
)

// Log field keys
const (
	LogFieldAddr          = "addr"
	LogFieldMethod        = "method"
	LogFieldPath          = "path"
	LogFieldRemoteAddr    = "remote_addr"
	LogFieldContentLength = "content_length"
	LogFieldUserAgent     = "user_agent"
	LogFieldHeaders       = "headers"
	LogFieldStatus        = "status"
	LogFieldDurationMS    = "duration_ms"
	LogFieldIP            = "ip"
	LogFieldHasKey        = "has_key"
	LogFieldCount         = "count"
)

// HTTP header names
const (
	HeaderAPIKey             = "X-API-Key"
	HeaderForwardedFor       = "X-Forwarded-For"
	HeaderContentTypeOptions = "X-Content-Type-Options"
	HeaderFrameOptions       = "X-Frame-Options"
	HeaderXSSProtection      = "X-XSS-Protection"
	HeaderReferrerPolicy     = "Referrer-Policy"
	HeaderCacheControl       = "Cache-Control"
)

// Security header values
const (
	HeaderValueNoSniff              = "nosniff"
	HeaderValueSameOrigin           = "SAMEORIGIN"
	HeaderValueXSSBlock             = "1; mode=block"
	HeaderValueReferrerStrictOrigin = "strict-origin-when-cross-origin"
	HeaderValueNoStore              = "no-store"
)

// Per-IP abuse detection
const (
	DetectorWindow          = 5 * time.Minute
	DetectorMaxRequests     = 1000
	DetectorFailedAuthAlert = 5
	DetectorLogEvery        = 100
)

// Server limits
const (
	DefaultMaxBodyBytes = 1 << 20
	ReadHeaderTimeout   = 5 * time.Second
)

// Paths excluded from request logging
var QuietPaths = []string{
	"/healthz",
	"/readyz",
	"/metrics",
}
