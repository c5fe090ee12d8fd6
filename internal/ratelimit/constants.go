package ratelimit

// Backend names accepted in configuration
const (
	BackendPostgres = "postgres"
	BackendMemory   = "memory"
)

const (
	// HashSeparator joins subject and action when deriving advisory lock keys
	HashSeparator = ":"

	// HashMaskPositiveInt64 keeps advisory lock keys positive
	HashMaskPositiveInt64 = 0x7FFFFFFFFFFFFFFF

	memoryEvictThreshold = 4096
)

// Error message formats
const (
	ErrFmtLimitExceeded           = "rate limit exceeded for '%s': retry in %ds"
	ErrMsgBeginTransactionFailed  = "failed to begin transaction: %w"
	ErrMsgAcquireLockFailed       = "failed to acquire advisory lock: %w"
	ErrMsgReadCounterFailed       = "failed to read rate limit counter: %w"
	ErrMsgWriteCounterFailed      = "failed to write rate limit counter: %w"
	ErrMsgCommitTransactionFailed = "failed to commit transaction: %w"
	ErrMsgPurgeFailed             = "failed to purge expired rate limit counters: %w"
	ErrMsgInvalidLimit            = "rate limit must be positive"
)

// Log messages
const (
	LogMsgLimitExceeded = "Rate limit exceeded"
	LogMsgPurged        = "Expired rate limit counters purged"
)

// Log field keys
const (
	LogFieldSubject = "subject"
	LogFieldAction  = "action"
	LogFieldCount   = "count"
)

// SQL
const (
	// SQLAdvisoryLock serialises updates to one (subject, action) counter for the transaction
	SQLAdvisoryLock = "SELECT pg_advisory_xact_lock($1)"

	SQLSelectCounter = `
		SELECT count, reset_at
		FROM rate_limits
		WHERE subject = $1 AND action = $2
	`

	SQLUpsertCounter = `
		INSERT INTO rate_limits (subject, action, count, reset_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (subject, action) DO UPDATE
		SET count = EXCLUDED.count, reset_at = EXCLUDED.reset_at
	`

	SQLDeleteExpired = `DELETE FROM rate_limits WHERE reset_at < $1`
)
