package tracing

// Error messages
const (
	ErrMsgExporterFailed = "failed to create OTLP trace exporter"
	ErrMsgResourceFailed = "failed to build trace resource"
)

// Log messages
const (
	LogMsgTracingDisabled = "Tracing disabled, no OTLP endpoint configured"
	LogMsgTracingEnabled  = "Tracing enabled"
)

// Log field keys
const (
	LogFieldEndpoint = "endpoint"
)
