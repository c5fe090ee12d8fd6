package fraud

// DefaultRetentionDays is how long fraud events are kept
const DefaultRetentionDays = 90

// recordAttempts is one write plus one retry
const recordAttempts = 2

// Error messages
const (
	ErrMsgRecordFailed  = "failed to record fraud event"
	ErrMsgCleanupFailed = "failed to expire fraud events"
)

// Log messages - service
const (
	LogMsgFraudRecorded = "Fraud event recorded"
	LogMsgRecordRetry   = "Fraud event write failed, retrying"
	LogMsgRecordFailed  = "Failed to record fraud event"
)

// LogMsgEventsExpired is logged when a cleanup pass deleted events
const LogMsgEventsExpired = "Expired fraud events deleted"

// Log field keys
const (
	LogFieldType          = "type"
	LogFieldUserID        = "user_id"
	LogFieldEventID       = "event_id"
	LogFieldMachineID     = "machine_id"
	LogFieldProductID     = "product_id"
	LogFieldError         = "error"
	LogFieldRetentionDays = "retention_days"
	LogFieldExpiredCount  = "expired"
)
