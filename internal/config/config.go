package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/osse101/SlotGuard_Go/internal/database"
	"github.com/osse101/SlotGuard_Go/internal/domain"
	"github.com/osse101/SlotGuard_Go/internal/ratelimit"
)

// Config holds the server configuration
type Config struct {
	Port        int
	LogLevel    string
	LogFormat   string
	LogDir      string // empty logs to stdout only
	ServiceName string
	Version     string
	Environment string

	DBURL             string // overrides the DB_* parts when set
	DBUser            string
	DBPassword        string
	DBHost            string
	DBPort            string
	DBName            string
	DBMaxConns        int
	DBMaxConnIdleTime time.Duration
	DBMaxConnLifetime time.Duration

	APIKey            string // optional service-to-service key
	AuthTokenSecret   string // HS256 secret for bearer tokens
	RequestSigningKey string // empty disables signature enforcement
	TrustedProxies    []string

	SpinRateLimit       int
	PurchaseRateLimit   int
	RateLimitWindow     time.Duration
	RateLimitBackend    string
	RequestTTL          time.Duration
	MaxPayoutMultiplier float64

	FraudRetentionDays   int
	FraudCleanupInterval time.Duration

	MachinesConfig string
	OTLPEndpoint   string
	OTLPInsecure   bool
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{
		LogLevel:    getEnv("LOG_LEVEL", DefaultLogLevel),
		LogFormat:   getEnv("LOG_FORMAT", DefaultLogFormat),
		LogDir:      getEnv("LOG_DIR", ""),
		ServiceName: getEnv("SERVICE_NAME", DefaultServiceName),
		Version:     getEnv("VERSION", DefaultVersion),
		Environment: getEnv("ENVIRONMENT", DefaultEnvironment),

		DBURL:             getEnv("DB_URL", ""),
		DBUser:            getEnv("DB_USER", "postgres"),
		DBPassword:        getEnv("DB_PASSWORD", "postgres"),
		DBHost:            getEnv("DB_HOST", "localhost"),
		DBPort:            getEnv("DB_PORT", "5432"),
		DBName:            getEnv("DB_NAME", DefaultDBName),
		DBMaxConns:        getEnvAsInt("DB_MAX_CONNS", database.DefaultMaxConnections),
		DBMaxConnIdleTime: getEnvAsDuration("DB_MAX_CONN_IDLE_TIME", DefaultDBMaxConnIdleTime),
		DBMaxConnLifetime: getEnvAsDuration("DB_MAX_CONN_LIFETIME", DefaultDBMaxConnLifetime),

		APIKey:            getEnv("API_KEY", ""),
		AuthTokenSecret:   getEnv("AUTH_TOKEN_SECRET", ""),
		RequestSigningKey: getEnv("REQUEST_SIGNING_KEY", ""),
		TrustedProxies:    getEnvAsList("TRUSTED_PROXIES"),

		SpinRateLimit:       getEnvAsInt("SPIN_RATE_LIMIT", domain.DefaultSpinRateLimit),
		PurchaseRateLimit:   getEnvAsInt("PURCHASE_RATE_LIMIT", domain.DefaultPurchaseRateLimit),
		RateLimitWindow:     getEnvAsDuration("RATE_LIMIT_WINDOW", domain.DefaultRateLimitWindow),
		RateLimitBackend:    getEnv("RATE_LIMIT_BACKEND", ratelimit.BackendPostgres),
		RequestTTL:          getEnvAsDuration("REQUEST_TTL", domain.DefaultRequestTTL),
		MaxPayoutMultiplier: getEnvAsFloat("MAX_PAYOUT_MULTIPLIER", domain.DefaultMaxPayoutMultiplier),

		FraudRetentionDays:   getEnvAsInt("FRAUD_RETENTION_DAYS", DefaultFraudRetentionDays),
		FraudCleanupInterval: getEnvAsDuration("FRAUD_CLEANUP_INTERVAL", DefaultFraudCleanupInterval),

		MachinesConfig: getEnv("MACHINES_CONFIG", ""),
		OTLPEndpoint:   getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
		OTLPInsecure:   getEnvAsBool("OTEL_EXPORTER_OTLP_INSECURE", true),
	}

	port, err := strconv.Atoi(getEnv("PORT", DefaultPort))
	if err != nil {
		return nil, fmt.Errorf("invalid PORT value: %w", err)
	}
	cfg.Port = port

	if cfg.AuthTokenSecret == "" {
		return nil, fmt.Errorf("AUTH_TOKEN_SECRET environment variable must be set for security")
	}

	switch cfg.RateLimitBackend {
	case ratelimit.BackendPostgres, ratelimit.BackendMemory:
	default:
		return nil, fmt.Errorf("invalid RATE_LIMIT_BACKEND %q: expected %s or %s",
			cfg.RateLimitBackend, ratelimit.BackendPostgres, ratelimit.BackendMemory)
	}

	return cfg, nil
}

// GetDBConnString returns the PostgreSQL connection string
func (c *Config) GetDBConnString() string {
	if c.DBURL != "" {
		return c.DBURL
	}
	return database.ConnString(c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName)
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return v
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	v, err := strconv.ParseFloat(os.Getenv(key), 64)
	if err != nil {
		return defaultValue
	}
	return v
}

func getEnvAsBool(key string, defaultValue bool) bool {
	v, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return v
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	v, err := time.ParseDuration(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return v
}

// getEnvAsList splits a comma-separated variable, dropping empty entries
func getEnvAsList(key string) []string {
	var out []string
	for _, part := range strings.Split(os.Getenv(key), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
