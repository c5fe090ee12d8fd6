package worker

import "time"

// DefaultJobTimeout bounds a single job run
const DefaultJobTimeout = 5 * time.Minute

// Log messages
const (
	LogMsgJobFailed = "Maintenance job failed"
	LogMsgJobDone   = "Maintenance job finished"
)

// Log field keys
const (
	LogFieldJob      = "job"
	LogFieldError    = "error"
	LogFieldDuration = "duration"
)
