package database

// Database Connection Pool Constants
const (
	// DefaultMinConnections is the minimum number of connections to maintain in the pool
	DefaultMinConnections int32 = 2

	// DefaultMaxConnections is used when DB_MAX_CONNS is unset
	DefaultMaxConnections = 20
)

// Migration settings
const (
	MigrationDialect = "postgres"
	MigrationDriver  = "pgx"
)

// ConnStringFormat builds a Postgres URL from user, password, host, port and database
const ConnStringFormat = "postgres://%s:%s@%s:%s/%s?sslmode=disable"

// Error Messages - Database Operations
const (
	ErrMsgFailedToParseConnString  = "failed to parse connection string"
	ErrMsgFailedToCreatePool       = "failed to create connection pool"
	ErrMsgFailedToPingDatabase     = "failed to ping database"
	ErrMsgFailedToSetDialect       = "failed to set migration dialect"
	ErrMsgFailedToApplyMigrations  = "failed to apply migrations"
	ErrMsgFailedToReadMigrationVer = "failed to read migration version"
	ErrMsgFailedToOpenMigrationDB  = "failed to open migration connection"
)

// Log Messages
const (
	LogMsgSuccessfullyConnectedToDatabase = "Successfully connected to the database"
	LogMsgMigrationsApplied               = "Database migrations applied"
)

// Log field keys
const (
	LogFieldVersion  = "version"
	LogFieldHost     = "host"
	LogFieldMaxConns = "max_conns"
)
