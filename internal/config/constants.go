package config

import "time"

// Server defaults
const (
	DefaultPort        = "8080"
	DefaultLogLevel    = "info"
	DefaultLogFormat   = "text"
	DefaultServiceName = "slotguard"
	DefaultVersion     = "dev"
	DefaultEnvironment = "dev"
	DefaultDBName      = "slotguard"

	DefaultDBMaxConnIdleTime    = 5 * time.Minute
	DefaultDBMaxConnLifetime    = 30 * time.Minute
	DefaultFraudRetentionDays   = 90
	DefaultFraudCleanupInterval = 24 * time.Hour
)

// Client defaults
const (
	DefaultClientBaseURL    = "http://localhost:8080"
	DefaultClientRetries    = 1
	DefaultClientRetryDelay = 250 * time.Millisecond
	DefaultClientTimeout    = 10 * time.Second
	DefaultClientStatePath  = "slotguard-client.db"
	DefaultKeyringService   = "slotguard"
)

// Example values shipped in .env.example that must not reach production
const (
	ExampleDBPassword      = "change_this_secure_password"
	ExampleAuthTokenSecret = "generate_with_openssl_rand_hex_32"
	ExampleSigningKey      = "generate_with_openssl_rand_hex_32"
)

// MinSecretLength is the shortest HMAC secret accepted without a warning
const MinSecretLength = 32
