package bootstrap

import "time"

// File system permissions
const (
	DirPermission     = 0755
	LogFilePermission = 0666
)

// Logger configuration
const (
	// LogFileTimestampFormat is the timestamp format for log filenames (YYYY-MM-DD_HH-MM-SS)
	LogFileTimestampFormat = "2006-01-02_15-04-05"
	LogFileNamePattern     = "session_%s.log"
	LogFileExtension       = ".log"

	// LogFileRetentionCount is the number of older log files kept beside the new one
	LogFileRetentionCount = 9
)

// Worker configuration for background maintenance
const (
	MaintenanceWorkers   = 1
	MaintenanceQueueSize = 4
	MaintenanceTimeout   = 10 * time.Minute

	// RateLimitPurgeInterval is how often expired limiter counters are deleted
	RateLimitPurgeInterval = 10 * time.Minute
	// RateLimitPurgeGrace keeps counters briefly past their window
	RateLimitPurgeGrace = time.Hour
)

// ShutdownTimeout bounds GracefulShutdown
const ShutdownTimeout = 15 * time.Second

// Job names
const (
	JobFraudCleanup   = "fraud_cleanup"
	JobRateLimitPurge = "ratelimit_purge"
)

// Log messages
const (
	LogMsgStarting            = "Starting SlotGuard"
	LogMsgConfigurationLoaded = "Configuration loaded"
	LogMsgMigrationsApplied   = "Database migrations applied"
	LogMsgMaintenanceStarted  = "Maintenance jobs scheduled"

	LogMsgShuttingDownServer   = "Shutting down server..."
	LogMsgServerStopped        = "Server stopped"
	LogMsgServerForcedShutdown = "Server forced to shutdown"
	LogMsgTracingShutdown      = "Tracing shutdown failed"
)

// Error messages
const (
	ErrMsgCreateLogsDir   = "failed to create logs directory"
	ErrMsgOpenLogFile     = "failed to open log file"
	ErrMsgConnectDatabase = "failed to connect to database"
	ErrMsgMigrate         = "failed to apply migrations"
	ErrMsgLoadCatalog     = "failed to load machine catalog"
	ErrMsgIdentity        = "failed to create identity provider"
)

// Log field keys
const (
	LogFieldError       = "error"
	LogFieldEnvironment = "environment"
	LogFieldLogLevel    = "log_level"
	LogFieldLogFormat   = "log_format"
	LogFieldVersion     = "version"
	LogFieldLogFile     = "log_file"
	LogFieldDBHost      = "db_host"
	LogFieldDBPort      = "db_port"
	LogFieldDBName      = "db_name"
	LogFieldPort        = "port"
	LogFieldSchema      = "schema_version"
	LogFieldSigning     = "signature_mode"
	LogFieldLimiter     = "rate_limit_backend"
	LogFieldJob         = "job"
	LogFieldInterval    = "interval"
)
