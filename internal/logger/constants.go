package logger

// Levels and formats accepted in LOG_LEVEL and LOG_FORMAT
const (
	LogLevelDebug   = "debug"
	LogLevelInfo    = "info"
	LogLevelWarn    = "warn"
	LogLevelWarning = "warning"
	LogLevelError   = "error"

	LogFormatJSON = "json"
	LogFormatText = "text"
)

// Deployment environments
const (
	EnvironmentDev        = "dev"
	EnvironmentProduction = "prod"
)

const (
	DefaultServiceName = "slotguard"
	DefaultVersion     = "dev"
)

// Attribute keys present on every record, or on every record logged
// through FromContext once the request is identified
const (
	AttrKeyService     = "service"
	AttrKeyVersion     = "version"
	AttrKeyEnvironment = "environment"
	AttrKeyRequestID   = "request_id"
	AttrKeyUserID      = "user_id"
)

// RedactedValue replaces credentials in logged headers
const RedactedValue = "[REDACTED]"
